package service

import (
	"errors"

	"propertypulse/internal/cache"
	"propertypulse/internal/config"
	"propertypulse/internal/oauth"
	"propertypulse/internal/repository"
	"propertypulse/internal/storage"
)

var (
	// ErrUnauthenticated is returned when an operation requires a session
	// identity and none was resolved.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidUserID is returned for a missing or malformed user identifier.
	ErrInvalidUserID = errors.New("user ID is required")
)

type Service struct {
	Property PropertyService
	Auth     AuthService
}

func NewService(repo *repository.Repository, cfg *config.Config, store storage.Storage, listings cache.ListingCache, provider oauth.Provider) *Service {
	return &Service{
		Property: NewPropertyService(repo.Property, store, listings),
		Auth:     NewAuthService(repo.User, provider, cfg),
	}
}
