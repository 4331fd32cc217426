package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/travelops/console-service/internal/domain/models"
)

// MockRecorder is a mock implementation of audit.Recorder.
type MockRecorder struct {
	mock.Mock
}

// Record appends one entry to the trail.
func (m *MockRecorder) Record(ctx context.Context, entry *models.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// List returns the most recent entries.
func (m *MockRecorder) List(ctx context.Context, limit int64) ([]models.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditEntry), args.Error(1)
}

// Ping checks the audit backend.
func (m *MockRecorder) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close releases the backend connection.
func (m *MockRecorder) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
