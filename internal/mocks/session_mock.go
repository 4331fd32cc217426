package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/travelops/console-service/internal/domain/models"
)

// MockSessionService is a mock implementation of session.Service.
type MockSessionService struct {
	mock.Mock
}

// Get retrieves the persisted session.
func (m *MockSessionService) Get(ctx context.Context) (*models.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// Put stores the session.
func (m *MockSessionService) Put(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// Clear removes the persisted session.
func (m *MockSessionService) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
