package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rediscache "github.com/travelops/console-service/internal/infrastructure/cache/redis"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *rediscache.Cache) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	c, err := rediscache.NewCache(rediscache.Config{
		Host:       mr.Host(),
		Port:       mr.Port(),
		Password:   "",
		DB:         0,
		DefaultTTL: 1 * time.Minute,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		c.Close()
		mr.Close()
	})

	return mr, c
}

func TestNewCache_Success(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c, err := rediscache.NewCache(rediscache.Config{
		Host: mr.Host(),
		Port: mr.Port(),
	})

	assert.NoError(t, err)
	assert.NotNil(t, c)

	c.Close()
}

func TestNewCache_ConnectionFailure(t *testing.T) {
	c, err := rediscache.NewCache(rediscache.Config{
		Host: "127.0.0.1",
		Port: "1", // nothing listening here
	})

	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestCache_SetAndGet(t *testing.T) {
	_, c := setupMiniredis(t)
	ctx := context.Background()

	key := "console:session"
	value := []byte("opaque-session-blob")

	err := c.Set(ctx, key, value, 1*time.Minute)
	assert.NoError(t, err)

	result, err := c.Get(ctx, key)
	assert.NoError(t, err)
	assert.Equal(t, value, result)
}

func TestCache_GetNotFound(t *testing.T) {
	_, c := setupMiniredis(t)
	ctx := context.Background()

	result, err := c.Get(ctx, "non-existent-key")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestCache_SetZeroTTLUsesDefault(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	err := c.Set(ctx, "defaulted", []byte("v"), 0)
	require.NoError(t, err)

	// Entry survives short of the default TTL and expires past it.
	mr.FastForward(30 * time.Second)
	result, err := c.Get(ctx, "defaulted")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), result)

	mr.FastForward(1 * time.Minute)
	result, err = c.Get(ctx, "defaulted")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestCache_Delete(t *testing.T) {
	_, c := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "doomed", []byte("v"), time.Minute))

	deleted, err := c.Delete(ctx, "doomed")
	assert.NoError(t, err)
	assert.True(t, deleted)

	result, err := c.Get(ctx, "doomed")
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestCache_DeleteNotFound(t *testing.T) {
	_, c := setupMiniredis(t)
	ctx := context.Background()

	deleted, err := c.Delete(ctx, "never-existed")

	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestCache_Ping(t *testing.T) {
	mr, c := setupMiniredis(t)
	ctx := context.Background()

	assert.NoError(t, c.Ping(ctx))

	mr.Close()
	assert.Error(t, c.Ping(ctx))
}
