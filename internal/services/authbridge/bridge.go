// Package authbridge translates identity-provider outcomes into reactive
// cache state: session restoration at startup, sign-in, sign-up, sign-out.
package authbridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/travelops/console-service/internal/core/audit"
	"github.com/travelops/console-service/internal/core/gateway"
	domainerrors "github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
	"github.com/travelops/console-service/internal/services/dashboard"
	"github.com/travelops/console-service/internal/services/directory"
	"github.com/travelops/console-service/internal/services/session"
	"github.com/travelops/console-service/internal/store"
)

// TokenSink receives the active access token for authorized gateway
// requests. An empty token reverts to anonymous access.
type TokenSink interface {
	SetAccessToken(token string)
}

// Bridge owns the identity lifecycle: Anonymous -> Authenticated ->
// Anonymous. A failed sign-in leaves the state anonymous with the error
// recorded; sign-up never authenticates.
type Bridge struct {
	store     *store.Store
	auth      gateway.Auth
	directory *directory.Service
	dashboard *dashboard.Service
	sessions  session.Service
	tokens    TokenSink
	audit     audit.Recorder
	log       zerolog.Logger

	mu      sync.Mutex
	current *models.Session
}

// Config holds the configuration for the auth bridge.
type Config struct {
	Store     *store.Store
	Auth      gateway.Auth
	Directory *directory.Service
	Dashboard *dashboard.Service
	Sessions  session.Service
	Tokens    TokenSink
	// Audit is optional; auth transitions are not audited when nil.
	Audit audit.Recorder
}

// NewBridge creates a new auth bridge.
func NewBridge(cfg *Config) (*Bridge, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Auth == nil {
		return nil, fmt.Errorf("auth gateway is required")
	}
	if cfg.Directory == nil {
		return nil, fmt.Errorf("directory service is required")
	}
	if cfg.Dashboard == nil {
		return nil, fmt.Errorf("dashboard service is required")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session service is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token sink is required")
	}

	return &Bridge{
		store:     cfg.Store,
		auth:      cfg.Auth,
		directory: cfg.Directory,
		dashboard: cfg.Dashboard,
		sessions:  cfg.Sessions,
		tokens:    cfg.Tokens,
		audit:     cfg.Audit,
		log:       log.With().Str("component", "authbridge").Logger(),
	}, nil
}

// Start restores a persisted session, if any, and loads the dashboard for
// it. Called exactly once by the application root after construction; there
// is no import-time side effect. A missing or unusable session leaves the
// state anonymous without error.
func (b *Bridge) Start(ctx context.Context) error {
	sess, err := b.sessions.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read persisted session: %w", err)
	}
	if sess == nil {
		b.log.Info().Msg("no persisted session, starting anonymous")
		return nil
	}

	if sess.Expired() {
		refreshed, err := b.auth.RefreshSession(ctx, sess.RefreshToken)
		if err != nil {
			b.log.Warn().Err(err).Msg("session refresh failed, starting anonymous")
			_ = b.sessions.Clear(ctx)
			return nil
		}
		sess = refreshed
		if err := b.sessions.Put(ctx, sess); err != nil {
			b.log.Warn().Err(err).Msg("failed to persist refreshed session")
		}
	}

	if err := b.establish(ctx, sess); err != nil {
		b.log.Warn().Err(err).Msg("session restoration failed, starting anonymous")
		_ = b.sessions.Clear(ctx)
		return nil
	}

	b.record(models.AuditSessionRestored, sess.UserID, "")
	b.log.Info().Str("user_id", sess.UserID).Msg("session restored")
	return nil
}

// Stop tears down the active change subscriptions without signing out; the
// persisted session survives for the next start.
func (b *Bridge) Stop() {
	b.store.CloseSubscriptions()
}

// SignIn verifies credentials, establishes the identity pair and loads the
// dashboard. On failure the state stays anonymous and the error is recorded
// in the cache's error slot.
func (b *Bridge) SignIn(ctx context.Context, email, password string) error {
	b.store.ClearError()

	sess, err := b.auth.SignIn(ctx, gateway.Credentials{Email: email, Password: password})
	if err != nil {
		b.store.SetError(err.Error())
		return domainerrors.NewIdentityError("sign in failed", err)
	}

	if err := b.establish(ctx, sess); err != nil {
		b.store.SetError(err.Error())
		return err
	}

	if err := b.sessions.Put(ctx, sess); err != nil {
		// The sign-in itself succeeded; only restart restoration is lost.
		b.log.Warn().Err(err).Msg("failed to persist session")
	}

	b.record(models.AuditSignIn, sess.UserID, "")
	b.log.Info().Str("user_id", sess.UserID).Msg("signed in")
	return nil
}

// SignUp creates a new staff account. The account is not signed in; the
// caller must prompt a sign-in afterwards.
func (b *Bridge) SignUp(ctx context.Context, params gateway.SignUpParams) (*models.Identity, error) {
	b.store.ClearError()

	identity, err := b.auth.SignUp(ctx, params)
	if err != nil {
		b.store.SetError(err.Error())
		return nil, domainerrors.NewIdentityError("sign up failed", err)
	}

	b.log.Info().Str("user_id", identity.UserID).Msg("account created")
	return identity, nil
}

// SignOut revokes the provider session and resets the cache. Local state is
// cleared even when the provider revocation fails.
func (b *Bridge) SignOut(ctx context.Context) error {
	b.mu.Lock()
	sess := b.current
	b.current = nil
	b.mu.Unlock()

	userID := ""
	if sess != nil {
		userID = sess.UserID
		if err := b.auth.SignOut(ctx, sess.AccessToken); err != nil {
			b.log.Warn().Err(err).Msg("provider sign-out failed")
		}
	}

	b.tokens.SetAccessToken("")
	if err := b.sessions.Clear(ctx); err != nil {
		b.log.Warn().Err(err).Msg("failed to clear persisted session")
	}

	// Resets every collection, advances the epoch and tears down the
	// subscriptions; late results from before this point are discarded.
	b.store.ClearAll()

	b.record(models.AuditSignOut, userID, "")
	b.log.Info().Msg("signed out")
	return nil
}

// ResetPassword requests a password reset email for the account.
func (b *Bridge) ResetPassword(ctx context.Context, email string) error {
	if err := b.auth.ResetPassword(ctx, email); err != nil {
		return domainerrors.NewIdentityError("password reset failed", err)
	}
	return nil
}

// UpdatePassword sets a new password for the signed-in account.
func (b *Bridge) UpdatePassword(ctx context.Context, newPassword string) error {
	b.mu.Lock()
	sess := b.current
	b.mu.Unlock()
	if sess == nil {
		return domainerrors.NewUnauthorizedError("no active session")
	}

	if err := b.auth.UpdatePassword(ctx, sess.AccessToken, newPassword); err != nil {
		return domainerrors.NewIdentityError("password update failed", err)
	}
	return nil
}

// establish fetches the profile for a session, installs the identity pair
// and loads the dashboard. The identity and profile are set together or not
// at all; a profile fetch failure leaves the state anonymous.
func (b *Bridge) establish(ctx context.Context, sess *models.Session) error {
	b.tokens.SetAccessToken(sess.AccessToken)

	profile, err := b.directory.GetProfile(ctx, sess.UserID)
	if err != nil {
		b.tokens.SetAccessToken("")
		return err
	}

	b.mu.Lock()
	b.current = sess
	b.mu.Unlock()

	b.store.SetIdentity(&models.Identity{UserID: sess.UserID, Email: sess.Email}, profile)
	b.dashboard.LoadAll(ctx)
	return nil
}

// record appends a best-effort audit entry.
func (b *Bridge) record(action models.AuditAction, userID, detail string) {
	if b.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := b.audit.Record(ctx, &models.AuditEntry{
			Action: action,
			UserID: userID,
			Detail: detail,
		})
		if err != nil {
			b.log.Warn().Err(err).Msg("audit record failed")
		}
	}()
}
