package models

import "time"

// Session represents a staff session issued by the identity provider.
// The token pair is persisted (encrypted) so a service restart can restore
// the signed-in session without a fresh sign-in.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Expired reports whether the session's access token has expired.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// NewSession creates a session for the given identity and token pair.
func NewSession(userID, email, accessToken, refreshToken string, expiresIn time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		UserID:       userID,
		Email:        email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(expiresIn),
		CreatedAt:    now,
	}
}
