package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"propertypulse/internal/database"
	"propertypulse/internal/models"
)

const propertiesCollection = "properties"

type PropertyRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPropertyRepository(db *database.DB) *PropertyRepositoryImpl {
	return &PropertyRepositoryImpl{collection: db.Collection(propertiesCollection)}
}

func (r *PropertyRepositoryImpl) Create(ctx context.Context, property *models.Property) error {
	now := time.Now().UTC()
	property.CreatedAt = now
	property.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, property)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		property.ID = oid
	}

	return nil
}

func (r *PropertyRepositoryImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var property models.Property
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}

	return &property, nil
}

// GetAll returns every listing, newest first.
func (r *PropertyRepositoryImpl) GetAll(ctx context.Context) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	return properties, nil
}

func (r *PropertyRepositoryImpl) GetByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch properties by owner: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	return properties, nil
}

// UpdateOwned overwrites the listing fields in a single conditional write
// filtered on both id and owner, so an ownership check cannot race a
// concurrent mutation. Stored images are left untouched.
func (r *PropertyRepositoryImpl) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, update *models.Property) error {
	filter := bson.M{"_id": id, "owner": owner}
	set := bson.M{
		"type":        update.Type,
		"name":        update.Name,
		"description": update.Description,
		"location":    update.Location,
		"beds":        update.Beds,
		"baths":       update.Baths,
		"square_feet": update.SquareFeet,
		"amenities":   update.Amenities,
		"rates":       update.Rates,
		"seller_info": update.SellerInfo,
		"updatedAt":   time.Now().UTC(),
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	if result.MatchedCount == 0 {
		return r.missReason(ctx, id)
	}

	return nil
}

func (r *PropertyRepositoryImpl) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	if result.DeletedCount == 0 {
		return r.missReason(ctx, id)
	}

	return nil
}

// missReason tells a vanished document apart from one held by another owner.
func (r *PropertyRepositoryImpl) missReason(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to check property existence: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrNotOwner
}
