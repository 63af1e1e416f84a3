package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"propertypulse/internal/config"
)

// DB wraps the process-wide MongoDB client. The connection is established
// once on first acquire and reused for the lifetime of the process; it is
// never implicitly reset.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

var (
	once    sync.Once
	shared  *DB
	onceErr error
)

// Connect returns the shared database handle, dialing MongoDB on the first
// call. Subsequent calls return the same handle regardless of config.
func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	once.Do(func() {
		shared, onceErr = dial(ctx, cfg)
	})
	if onceErr != nil {
		return nil, onceErr
	}
	return shared, nil
}

func dial(ctx context.Context, cfg *config.Config) (*DB, error) {
	log.Printf("Connecting to MongoDB: database=%s", cfg.Mongo.Database)

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	log.Println("MongoDB connected")

	return &DB{
		client:   client,
		database: client.Database(cfg.Mongo.Database),
	}, nil
}

// Collection returns a handle to the named collection.
func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// HealthCheck pings the primary.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.client == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	return db.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client. Only meant for process shutdown.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
