// Package models contains domain models for the TravelOps Console Service.
package models

import "time"

// UserRole represents the role of a staff member.
type UserRole string

const (
	// RoleAdmin represents an administrator with full access.
	RoleAdmin UserRole = "admin"
	// RoleAgent represents a support agent.
	RoleAgent UserRole = "agent"
)

// Identity represents the signed-in staff identity issued by the identity provider.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Profile represents the staff profile row associated 1:1 with an identity.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
