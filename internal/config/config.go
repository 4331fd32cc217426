// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	Cache   CacheConfig
	Session SessionConfig
	Audit   AuditConfig
	Metrics MetricsConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host    string
	Port    int
	GinMode string
	// CORSOrigins are the dashboard origins admitted by the API.
	CORSOrigins []string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GatewayConfig holds the data gateway (Supabase) configuration.
type GatewayConfig struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// CacheConfig holds cache-related configuration.
type CacheConfig struct {
	Type     string
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// SessionConfig holds the persisted-session configuration. The encryption
// key protects tokens at rest in the cache.
type SessionConfig struct {
	EncryptionKey string
	TTL           time.Duration
}

// AuditConfig holds the audit trail store configuration.
type AuditConfig struct {
	Type     string
	URI      string
	Database string
}

// MetricsConfig holds the dashboard metric baselines that are not derived
// from gateway data.
type MetricsConfig struct {
	AvgResponseTime     float64
	SatisfactionScore   float64
	IssueResolutionRate float64
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			GinMode:     getEnv("GIN_MODE", "debug"),
			CORSOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS"),
		},
		Gateway: GatewayConfig{
			URL:     getEnv("SUPABASE_URL", ""),
			AnonKey: getEnv("SUPABASE_ANON_KEY", ""),
			Timeout: time.Duration(getEnvAsInt("GATEWAY_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Cache: CacheConfig{
			Type:     getEnv("CACHE_TYPE", "redis"),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 180)) * time.Second,
		},
		Session: SessionConfig{
			EncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", ""),
			TTL:           time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 168)) * time.Hour,
		},
		Audit: AuditConfig{
			Type:     getEnv("AUDIT_TYPE", "mongodb"),
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "travelops"),
		},
		Metrics: MetricsConfig{
			AvgResponseTime:     getEnvAsFloat("METRICS_AVG_RESPONSE_TIME", 2.3),
			SatisfactionScore:   getEnvAsFloat("METRICS_SATISFACTION_SCORE", 4.7),
			IssueResolutionRate: getEnvAsFloat("METRICS_RESOLUTION_RATE", 94.2),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Gateway.URL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.Gateway.AnonKey == "" {
		return nil, fmt.Errorf("SUPABASE_ANON_KEY is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsSlice gets a comma-separated environment variable as a slice.
// Returns nil when unset.
func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// getEnvAsFloat gets an environment variable as a float with a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
