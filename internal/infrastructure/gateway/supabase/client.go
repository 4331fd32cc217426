// Package supabase provides the Supabase gateway client implementation.
package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/travelops/console-service/internal/core/gateway"
)

const defaultTimeout = 30 * time.Second

// Config holds the Supabase connection configuration.
type Config struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co.
	URL string
	// AnonKey is the project's public API key, sent with every request.
	AnonKey string
	// Timeout bounds each HTTP round trip.
	Timeout time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client implements the gateway.Client interface for Supabase.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client

	mu          sync.RWMutex
	accessToken string

	store    *restStore
	auth     *authClient
	realtime *realtimeClient
}

// NewClient creates a new Supabase gateway client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("gateway URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, fmt.Errorf("gateway anon key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		httpClient: httpClient,
	}
	c.store = &restStore{client: c}
	c.auth = &authClient{client: c}
	c.realtime = newRealtimeClient(c)

	return c, nil
}

// Store returns the declarative query interface.
func (c *Client) Store() gateway.Store {
	return c.store
}

// Auth returns the identity provider interface.
func (c *Client) Auth() gateway.Auth {
	return c.auth
}

// Realtime returns the change-event subscription interface.
func (c *Client) Realtime() gateway.Realtime {
	return c.realtime
}

// SetAccessToken sets the bearer token sent on subsequent requests. An empty
// token reverts to anonymous (anon key only) access.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// AccessToken returns the current bearer token, or the anon key when no
// session is active.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.accessToken != "" {
		return c.accessToken
	}
	return c.anonKey
}

// Ping checks if the gateway is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("gateway unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// Close releases the gateway connection and any open subscriptions.
func (c *Client) Close() error {
	return c.realtime.closeAll()
}

// setHeaders sets the required headers for REST and auth requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.AccessToken())
}
