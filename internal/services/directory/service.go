// Package directory is the typed entity access layer over the remote data
// gateway. Each operation performs exactly one gateway round trip and
// normalizes any failure into a domain error; nothing propagates as an
// unhandled fault past this boundary.
package directory

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/travelops/console-service/internal/core/gateway"
)

// Gateway table names.
const (
	TableProfiles      = "profiles"
	TableTravelers     = "travelers"
	TableConversations = "ai_conversations"
	TableMessages      = "messages"
	TableFeedback      = "feedback"
)

// travelerJoin expands the referenced traveler summary into conversation and
// feedback rows.
const travelerJoin = "*,travelers(id,name,email,destination)"

// MetricsDefaults holds the configured presentation constants paired with the
// counted metrics. They are literal defaults, not derived values.
type MetricsDefaults struct {
	AvgResponseTime     float64
	SatisfactionScore   float64
	IssueResolutionRate float64
}

// Service provides the typed entity operations.
type Service struct {
	store    gateway.Store
	defaults MetricsDefaults
	log      zerolog.Logger
}

// Config holds the configuration for the directory service.
type Config struct {
	Store           gateway.Store
	MetricsDefaults MetricsDefaults
}

// NewService creates a new directory service.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("gateway store is required")
	}

	return &Service{
		store:    cfg.Store,
		defaults: cfg.MetricsDefaults,
		log:      log.With().Str("component", "directory").Logger(),
	}, nil
}
