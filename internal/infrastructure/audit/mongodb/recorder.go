// Package mongodb provides the MongoDB audit trail implementation.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/travelops/console-service/internal/domain/models"
)

// AuditCollection is the name of the audit trail collection.
const AuditCollection = "audit_trail"

// Recorder implements the audit.Recorder interface for MongoDB.
type Recorder struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Config holds MongoDB connection configuration.
type Config struct {
	URI          string
	DatabaseName string
}

// NewRecorder creates a new MongoDB audit recorder.
func NewRecorder(ctx context.Context, cfg *Config) (*Recorder, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}
	if cfg.DatabaseName == "" {
		return nil, fmt.Errorf("database name is required")
	}

	clientOpts := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Recorder{
		client:     client,
		collection: client.Database(cfg.DatabaseName).Collection(AuditCollection),
	}, nil
}

// EnsureIndexes creates the indexes the trail is queried by.
func (r *Recorder) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create audit index: %w", err)
	}
	return nil
}

// Record appends one entry to the trail.
func (r *Recorder) Record(ctx context.Context, entry *models.AuditEntry) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (r *Recorder) List(ctx context.Context, limit int64) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trail: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.AuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}
	return entries, nil
}

// Ping checks if the audit backend is reachable.
func (r *Recorder) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close releases the audit backend connection.
func (r *Recorder) Close(ctx context.Context) error {
	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}
