// Package session persists the staff session token pair, encrypted, so a
// service restart can restore the signed-in session without a fresh sign-in.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/travelops/console-service/internal/core/cache"
	"github.com/travelops/console-service/internal/domain/models"
	"github.com/travelops/console-service/internal/pkg/encryption"
)

const (
	// DefaultSessionTTL is the default lifetime of a persisted session.
	DefaultSessionTTL = 7 * 24 * time.Hour

	// sessionKey is the cache key of the single staff session. The console
	// runs one signed-in staff session per process.
	sessionKey = "console:session"
)

// Service persists and restores the staff session.
type Service interface {
	// Get retrieves the persisted session, or nil if none exists. A session
	// that cannot be decrypted or decoded is discarded and treated as
	// absent, never as an error.
	Get(ctx context.Context) (*models.Session, error)

	// Put stores the session with the configured TTL.
	Put(ctx context.Context, session *models.Session) error

	// Clear removes the persisted session. Safe to call when none exists.
	Clear(ctx context.Context) error
}

// service implements the Service interface.
type service struct {
	cache     cache.Cache
	encryptor encryption.Encryptor
	ttl       time.Duration
}

// Config holds the configuration for the session service.
type Config struct {
	Cache     cache.Cache
	Encryptor encryption.Encryptor
	TTL       time.Duration
}

// NewService creates a new session service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if cfg.Encryptor == nil {
		return nil, fmt.Errorf("encryptor is required")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &service{
		cache:     cfg.Cache,
		encryptor: cfg.Encryptor,
		ttl:       ttl,
	}, nil
}

// Get retrieves the persisted session.
func (s *service) Get(ctx context.Context) (*models.Session, error) {
	encrypted, err := s.cache.Get(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session from cache: %w", err)
	}
	if encrypted == nil {
		return nil, nil // No persisted session
	}

	// If decryption fails (e.g. the key changed), drop the stale entry and
	// report no session rather than an error.
	decrypted, err := s.encryptor.Decrypt(string(encrypted))
	if err != nil {
		_, _ = s.cache.Delete(ctx, sessionKey)
		return nil, nil
	}

	var session models.Session
	if err := json.Unmarshal(decrypted, &session); err != nil {
		_, _ = s.cache.Delete(ctx, sessionKey)
		return nil, nil
	}

	return &session, nil
}

// Put stores the session with the configured TTL.
func (s *service) Put(ctx context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	encrypted, err := s.encryptor.Encrypt(data)
	if err != nil {
		return fmt.Errorf("failed to encrypt session: %w", err)
	}

	if err := s.cache.Set(ctx, sessionKey, []byte(encrypted), s.ttl); err != nil {
		return fmt.Errorf("failed to store session in cache: %w", err)
	}
	return nil
}

// Clear removes the persisted session.
func (s *service) Clear(ctx context.Context) error {
	if _, err := s.cache.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
