package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/travelops/console-service/internal/core/gateway"
)

// MockGatewayClient is a mock implementation of gateway.Client.
type MockGatewayClient struct {
	mock.Mock
}

// Store returns the declarative query interface.
func (m *MockGatewayClient) Store() gateway.Store {
	args := m.Called()
	return args.Get(0).(gateway.Store)
}

// Auth returns the identity provider interface.
func (m *MockGatewayClient) Auth() gateway.Auth {
	args := m.Called()
	return args.Get(0).(gateway.Auth)
}

// Realtime returns the change-event subscription interface.
func (m *MockGatewayClient) Realtime() gateway.Realtime {
	args := m.Called()
	return args.Get(0).(gateway.Realtime)
}

// Ping checks if the gateway is reachable.
func (m *MockGatewayClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close releases the gateway connection.
func (m *MockGatewayClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCache is a mock implementation of cache.Cache.
type MockCache struct {
	mock.Mock
}

// Get retrieves a value by key.
func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Set stores a value with a TTL.
func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Delete removes a key.
func (m *MockCache) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// Ping checks if the cache connection is alive.
func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the cache connection.
func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
