package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"propertypulse/internal/cache"
	"propertypulse/internal/models"
	"propertypulse/internal/repository"
	"propertypulse/internal/storage"
)

// PropertyInput carries the flattened listing fields of a create or update
// submission. Images travel separately as uploads.
type PropertyInput struct {
	Type        string
	Name        string
	Description string
	Location    models.Location
	Beds        int
	Baths       float64
	SquareFeet  int
	Amenities   []string
	Rates       models.Rates
	SellerInfo  models.SellerInfo
}

// ImageUpload is one submitted image file, in submission order.
type ImageUpload struct {
	FileName string
	Content  io.Reader
	Size     int64
}

type PropertyService interface {
	List(ctx context.Context) ([]models.Property, error)
	Get(ctx context.Context, id string) (*models.Property, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Property, error)
	Create(ctx context.Context, sess *models.Session, input PropertyInput, images []ImageUpload) (*models.Property, error)
	Update(ctx context.Context, sess *models.Session, id string, input PropertyInput) error
	Delete(ctx context.Context, sess *models.Session, id string) error
}

type propertyService struct {
	propertyRepo repository.PropertyRepository
	storage      storage.Storage
	listings     cache.ListingCache
}

func NewPropertyService(propertyRepo repository.PropertyRepository, store storage.Storage, listings cache.ListingCache) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		storage:      store,
		listings:     listings,
	}
}

// List returns every listing, newest first, serving the cached view when warm.
func (s *propertyService) List(ctx context.Context) ([]models.Property, error) {
	if cached, ok := s.listings.Get(cache.AllListingsKey); ok {
		return cached, nil
	}

	properties, err := s.propertyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.listings.Set(cache.AllListingsKey, properties)

	return properties, nil
}

func (s *propertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed identifier cannot match any document.
		return nil, repository.ErrNotFound
	}

	return s.propertyRepo.GetByID(ctx, oid)
}

func (s *propertyService) ListByOwner(ctx context.Context, userID string) ([]models.Property, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	return s.propertyRepo.GetByOwner(ctx, owner)
}

// Create uploads every submitted image before anything is persisted: a single
// upload failure aborts the whole write. Already-uploaded objects are not
// rolled back.
func (s *propertyService) Create(ctx context.Context, sess *models.Session, input PropertyInput, images []ImageUpload) (*models.Property, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	owner, err := primitive.ObjectIDFromHex(sess.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	imageURLs := make([]string, 0, len(images))
	for _, image := range images {
		imageURL, err := s.storage.UploadImage(ctx, image.FileName, image.Content, image.Size)
		if err != nil {
			return nil, fmt.Errorf("image upload failed for %s: %w", image.FileName, err)
		}
		imageURLs = append(imageURLs, imageURL)
	}

	property := &models.Property{
		Owner:       owner,
		Type:        input.Type,
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		Beds:        input.Beds,
		Baths:       input.Baths,
		SquareFeet:  input.SquareFeet,
		Amenities:   input.Amenities,
		Rates:       input.Rates,
		SellerInfo:  input.SellerInfo,
		Images:      imageURLs,
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	s.listings.Invalidate(cache.AllListingsKey)

	return property, nil
}

// Update runs the owner guard and then overwrites the listing fields with a
// conditional write. Stored images are not touched by update.
func (s *propertyService) Update(ctx context.Context, sess *models.Session, id string, input PropertyInput) error {
	property, err := s.guard(ctx, sess, id)
	if err != nil {
		return err
	}

	update := &models.Property{
		Type:        input.Type,
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		Beds:        input.Beds,
		Baths:       input.Baths,
		SquareFeet:  input.SquareFeet,
		Amenities:   input.Amenities,
		Rates:       input.Rates,
		SellerInfo:  input.SellerInfo,
	}

	if err := s.propertyRepo.UpdateOwned(ctx, property.ID, property.Owner, update); err != nil {
		return err
	}

	s.listings.Invalidate(cache.AllListingsKey)

	return nil
}

// Delete runs the owner guard, best-effort-deletes every stored image from
// the media host, then removes the document. Image cleanup failures are
// logged and never block the removal.
func (s *propertyService) Delete(ctx context.Context, sess *models.Session, id string) error {
	property, err := s.guard(ctx, sess, id)
	if err != nil {
		return err
	}

	for _, imageURL := range property.Images {
		objectName := s.storage.ObjectKeyFromURL(imageURL)
		if objectName == "" {
			log.Printf("skipping image cleanup, cannot derive key: url=%s", imageURL)
			continue
		}
		if err := s.storage.DeleteImage(ctx, objectName); err != nil {
			log.Printf("image cleanup failed: key=%s err=%v", objectName, err)
		}
	}

	if err := s.propertyRepo.DeleteOwned(ctx, property.ID, property.Owner); err != nil {
		return err
	}

	s.listings.Invalidate(cache.AllListingsKey)

	return nil
}

// guard resolves the session, loads the target document and compares its
// stored owner to the session identity. Every failure is an early return:
// no session 401, unknown id 404, foreign owner 401.
func (s *propertyService) guard(ctx context.Context, sess *models.Session, id string) (*models.Property, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	property, err := s.propertyRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if property.Owner.Hex() != sess.UserID {
		return nil, repository.ErrNotOwner
	}

	return property, nil
}
