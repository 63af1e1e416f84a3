package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"propertypulse/internal/database"
	"propertypulse/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the given identifier.
	ErrNotFound = errors.New("document not found")
	// ErrNotOwner is returned when a conditional mutation matched the id but
	// not the owner filter.
	ErrNotOwner = errors.New("not the document owner")
)

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	GetAll(ctx context.Context) ([]models.Property, error)
	GetByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Property, error)
	// UpdateOwned overwrites the listing fields of the document matching both
	// id and owner in a single conditional write.
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, update *models.Property) error
	// DeleteOwned removes the document matching both id and owner.
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Repository struct {
	Property PropertyRepository
	User     UserRepository
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{
		Property: NewPropertyRepository(db),
		User:     NewUserRepository(db),
	}
}
