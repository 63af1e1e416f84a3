package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"propertypulse/cmd/app"
	"propertypulse/internal/config"
	handlers "propertypulse/internal/handler"
	"propertypulse/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	ctx := context.Background()

	db, _, services := app.App(ctx, cfg)
	defer db.Close(ctx)

	handler := handlers.NewHandlers(services, db, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	router.HandleFunc("/auth/google/login", handler.GoogleLogin).Methods(http.MethodGet)
	router.HandleFunc("/auth/google/callback", handler.GoogleCallback).Methods(http.MethodGet)
	router.HandleFunc("/auth/me", handler.Me).Methods(http.MethodGet)
	router.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	router.HandleFunc("/properties", handler.GetProperties).Methods(http.MethodGet)
	router.HandleFunc("/properties", handler.CreateProperty).Methods(http.MethodPost)
	// A bare /properties/user/ must answer 400, not fall through to the
	// {id} route.
	router.HandleFunc("/properties/user/", handler.GetUserProperties).Methods(http.MethodGet)
	router.HandleFunc("/properties/user/{userId}", handler.GetUserProperties).Methods(http.MethodGet)
	router.HandleFunc("/properties/{id}", handler.GetProperty).Methods(http.MethodGet)
	router.HandleFunc("/properties/{id}", handler.UpdateProperty).Methods(http.MethodPut)
	router.HandleFunc("/properties/{id}", handler.DeleteProperty).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.SessionMiddleware(services.Auth),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
