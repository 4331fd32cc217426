// Package gateway defines the remote data gateway interfaces and factory types.
// The gateway is the hosted backend providing identity, relational storage and
// change notifications; it is consumed, never reimplemented, by this service.
package gateway

import "context"

// Type represents the type of gateway backend.
type Type string

const (
	// TypeSupabase represents a Supabase-style hosted backend.
	TypeSupabase Type = "supabase"
)

// Client bundles the three gateway facets behind one connection.
type Client interface {
	// Store returns the declarative query interface.
	Store() Store

	// Auth returns the identity provider interface.
	Auth() Auth

	// Realtime returns the change-event subscription interface.
	Realtime() Realtime

	// Ping checks if the gateway is reachable.
	Ping(ctx context.Context) error

	// Close releases the gateway connection and any open subscriptions.
	Close() error
}
