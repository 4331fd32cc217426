// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/travelops/console-service/internal/core/gateway"
	"github.com/travelops/console-service/internal/domain/models"
)

// MockStore is a mock implementation of gateway.Store.
type MockStore struct {
	mock.Mock
}

// Select executes a read query.
func (m *MockStore) Select(ctx context.Context, q gateway.Query, dest interface{}) error {
	args := m.Called(ctx, q, dest)
	return args.Error(0)
}

// Insert writes a new row.
func (m *MockStore) Insert(ctx context.Context, table string, payload interface{}, dest interface{}) error {
	args := m.Called(ctx, table, payload, dest)
	return args.Error(0)
}

// Update writes changed fields to the row with the given id.
func (m *MockStore) Update(ctx context.Context, table, id string, payload interface{}, dest interface{}) error {
	args := m.Called(ctx, table, id, payload, dest)
	return args.Error(0)
}

// Count returns the number of matching rows.
func (m *MockStore) Count(ctx context.Context, table string, filters []gateway.Filter) (int64, error) {
	args := m.Called(ctx, table, filters)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuth is a mock implementation of gateway.Auth.
type MockAuth struct {
	mock.Mock
}

// SignUp creates a new account.
func (m *MockAuth) SignUp(ctx context.Context, params gateway.SignUpParams) (*models.Identity, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

// SignIn verifies credentials.
func (m *MockAuth) SignIn(ctx context.Context, creds gateway.Credentials) (*models.Session, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// SignOut revokes a session.
func (m *MockAuth) SignOut(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

// RefreshSession exchanges a refresh token.
func (m *MockAuth) RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// ResetPassword requests a reset email.
func (m *MockAuth) ResetPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// UpdatePassword sets a new password.
func (m *MockAuth) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	args := m.Called(ctx, accessToken, newPassword)
	return args.Error(0)
}

// MockRealtime is a mock implementation of gateway.Realtime. It captures the
// registered handlers so tests can push change events through them.
type MockRealtime struct {
	mock.Mock

	Handlers map[string]gateway.ChangeHandler
}

// Subscribe registers a change handler for a table.
func (m *MockRealtime) Subscribe(ctx context.Context, table, filter string, handler gateway.ChangeHandler) (gateway.Subscription, error) {
	if m.Handlers == nil {
		m.Handlers = make(map[string]gateway.ChangeHandler)
	}
	m.Handlers[table] = handler

	args := m.Called(ctx, table, filter, handler)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(gateway.Subscription), args.Error(1)
}

// Emit pushes a change event into the handler registered for a table.
func (m *MockRealtime) Emit(table string, ch gateway.Change) {
	if handler, ok := m.Handlers[table]; ok {
		handler(ch)
	}
}

// MockSubscription is a mock implementation of gateway.Subscription.
type MockSubscription struct {
	mock.Mock
}

// Close tears the subscription down.
func (m *MockSubscription) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTokenSink records the last access token it was handed.
type MockTokenSink struct {
	mock.Mock
}

// SetAccessToken stores the active token.
func (m *MockTokenSink) SetAccessToken(token string) {
	m.Called(token)
}
