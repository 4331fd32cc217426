package gateway

import (
	"context"

	"github.com/travelops/console-service/internal/domain/models"
)

// SignUpParams holds the data for creating a new staff account.
type SignUpParams struct {
	Email    string
	Password string
	FullName string
	Role     models.UserRole
}

// Credentials holds a staff sign-in credential pair.
type Credentials struct {
	Email    string
	Password string
}

// Auth is the identity provider interface. Credential verification, session
// issuance and refresh all happen on the provider side.
type Auth interface {
	// SignUp creates a new account. The created account is not signed in.
	SignUp(ctx context.Context, params SignUpParams) (*models.Identity, error)

	// SignIn verifies credentials and returns the issued session.
	SignIn(ctx context.Context, creds Credentials) (*models.Session, error)

	// SignOut revokes the session holding the given access token.
	SignOut(ctx context.Context, accessToken string) error

	// RefreshSession exchanges a refresh token for a fresh session.
	RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error)

	// ResetPassword requests a password reset email for the account.
	ResetPassword(ctx context.Context, email string) error

	// UpdatePassword sets a new password for the signed-in account.
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
}
