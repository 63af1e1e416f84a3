package app

import (
	"context"
	"log"

	"propertypulse/internal/cache"
	"propertypulse/internal/config"
	"propertypulse/internal/database"
	"propertypulse/internal/oauth"
	"propertypulse/internal/repository"
	"propertypulse/internal/service"
	"propertypulse/internal/storage"
)

func App(ctx context.Context, cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("failed to initialize MinIO: %v", err)
	}

	provider, err := oauth.NewGoogleProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize Google OAuth: %v", err)
	}

	listings := cache.NewListingCache(cfg)

	repo := repository.NewRepository(db)

	services := service.NewService(repo, cfg, minioClient, listings, provider)

	return db, repo, services
}
