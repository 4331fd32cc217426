// Package audit defines the audit trail interface and factory types.
package audit

import (
	"context"

	"github.com/travelops/console-service/internal/domain/models"
)

// Type represents the type of audit trail backend.
type Type string

const (
	// TypeMongoDB represents a MongoDB-backed audit trail.
	TypeMongoDB Type = "mongodb"
)

// Recorder is the append-only audit trail. Recording is best-effort: callers
// log failures but never let them interrupt the operation being audited.
type Recorder interface {
	// Record appends one entry to the trail.
	Record(ctx context.Context, entry *models.AuditEntry) error

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int64) ([]models.AuditEntry, error)

	// Ping checks if the audit backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the audit backend connection.
	Close(ctx context.Context) error
}
