package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelops/console-service/internal/domain/models"
	rediscache "github.com/travelops/console-service/internal/infrastructure/cache/redis"
	"github.com/travelops/console-service/internal/pkg/encryption"
	"github.com/travelops/console-service/internal/services/session"
)

const testKey = "0123456789abcdef0123456789abcdef"

func setupService(t *testing.T) (*miniredis.Miniredis, session.Service) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	cacheClient, err := rediscache.NewCache(rediscache.Config{
		Host: mr.Host(),
		Port: mr.Port(),
	})
	require.NoError(t, err)

	encryptor, err := encryption.NewAESEncryptor(testKey)
	require.NoError(t, err)

	svc, err := session.NewService(&session.Config{
		Cache:     cacheClient,
		Encryptor: encryptor,
		TTL:       time.Hour,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		cacheClient.Close()
		mr.Close()
	})

	return mr, svc
}

func TestPutAndGet_RoundTrip(t *testing.T) {
	// Arrange
	_, svc := setupService(t)
	ctx := context.Background()
	sess := models.NewSession("u1", "ops@travelops.io", "access", "refresh", time.Hour)

	// Act
	require.NoError(t, svc.Put(ctx, sess))
	restored, err := svc.Get(ctx)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "u1", restored.UserID)
	assert.Equal(t, "access", restored.AccessToken)
	assert.Equal(t, "refresh", restored.RefreshToken)
	assert.False(t, restored.Expired())
}

func TestGet_NoSession(t *testing.T) {
	// Arrange
	_, svc := setupService(t)

	// Act
	restored, err := svc.Get(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestGet_TokensEncryptedAtRest(t *testing.T) {
	// Arrange
	mr, svc := setupService(t)
	ctx := context.Background()
	sess := models.NewSession("u1", "ops@travelops.io", "very-secret-access-token", "refresh", time.Hour)
	require.NoError(t, svc.Put(ctx, sess))

	// Act: read the raw cache entry
	raw, err := mr.Get("console:session")

	// Assert: the token never appears in the stored bytes
	require.NoError(t, err)
	assert.NotContains(t, raw, "very-secret-access-token")
}

func TestGet_UndecryptableEntryDiscarded(t *testing.T) {
	// Arrange: an entry written with a different key
	mr, svc := setupService(t)
	require.NoError(t, mr.Set("console:session", "garbage-not-ciphertext"))

	// Act
	restored, err := svc.Get(context.Background())

	// Assert: treated as absent and the stale entry removed
	require.NoError(t, err)
	assert.Nil(t, restored)
	assert.False(t, mr.Exists("console:session"))
}

func TestClear_RemovesSession(t *testing.T) {
	// Arrange
	_, svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.Put(ctx, models.NewSession("u1", "e", "a", "r", time.Hour)))

	// Act
	require.NoError(t, svc.Clear(ctx))

	// Assert
	restored, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestClear_SafeWhenEmpty(t *testing.T) {
	// Arrange
	_, svc := setupService(t)

	// Act / Assert
	assert.NoError(t, svc.Clear(context.Background()))
}

func TestPut_NilSession(t *testing.T) {
	// Arrange
	_, svc := setupService(t)

	// Act
	err := svc.Put(context.Background(), nil)

	// Assert
	assert.Error(t, err)
}

func TestPut_EntryExpiresWithTTL(t *testing.T) {
	// Arrange
	mr, svc := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.Put(ctx, models.NewSession("u1", "e", "a", "r", time.Hour)))

	// Act: advance past the TTL
	mr.FastForward(2 * time.Hour)

	// Assert
	restored, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, restored)
}
