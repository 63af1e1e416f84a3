package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"propertypulse/internal/config"
	"propertypulse/internal/database"
	"propertypulse/internal/service"
)

type Handlers struct {
	PropertyService service.PropertyService
	AuthService     service.AuthService
	DB              *database.DB
	Cfg             *config.Config
	Validate        *validator.Validate
}

func NewHandlers(services *service.Service, db *database.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		PropertyService: services.Property,
		AuthService:     services.Auth,
		DB:              db,
		Cfg:             cfg,
		Validate:        validator.New(),
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(r.Context()); err != nil {
		writeError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, MessageResponse{Message: "ok"}, http.StatusOK)
}
