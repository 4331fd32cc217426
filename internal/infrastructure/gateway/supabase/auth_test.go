package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelops/console-service/internal/core/gateway"
	"github.com/travelops/console-service/internal/domain/models"
)

func TestSignIn_MapsTokenResponse(t *testing.T) {
	// Arrange
	var path, grantType string
	var body map[string]string
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		grantType = r.URL.Query().Get("grant_type")
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{
			"access_token": "at",
			"refresh_token": "rt",
			"expires_in": 3600,
			"user": {"id": "u1", "email": "ops@travelops.io"}
		}`))
	}))

	// Act
	session, err := client.Auth().SignIn(context.Background(), gateway.Credentials{
		Email:    "ops@travelops.io",
		Password: "secret",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/token", path)
	assert.Equal(t, "password", grantType)
	assert.Equal(t, "secret", body["password"])
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "at", session.AccessToken)
	assert.Equal(t, "rt", session.RefreshToken)
	assert.False(t, session.Expired())
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	// Arrange
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	}))

	// Act
	session, err := client.Auth().SignIn(context.Background(), gateway.Credentials{
		Email:    "ops@travelops.io",
		Password: "wrong",
	})

	// Assert
	require.Error(t, err)
	assert.Nil(t, session)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestSignUp_SendsProfileMetadata(t *testing.T) {
	// Arrange
	var payload map[string]interface{}
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"id":"u2","email":"new@travelops.io"}`))
	}))

	// Act
	identity, err := client.Auth().SignUp(context.Background(), gateway.SignUpParams{
		Email:    "new@travelops.io",
		Password: "secret",
		FullName: "New Agent",
		Role:     models.RoleAdmin,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "u2", identity.UserID)

	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "New Agent", data["full_name"])
	assert.Equal(t, "admin", data["role"])
}

func TestRefreshSession_UsesRefreshGrant(t *testing.T) {
	// Arrange
	var grantType string
	var body map[string]string
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		grantType = r.URL.Query().Get("grant_type")
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{
			"access_token": "at2",
			"refresh_token": "rt2",
			"expires_in": 3600,
			"user": {"id": "u1", "email": "ops@travelops.io"}
		}`))
	}))

	// Act
	session, err := client.Auth().RefreshSession(context.Background(), "rt1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "refresh_token", grantType)
	assert.Equal(t, "rt1", body["refresh_token"])
	assert.Equal(t, "at2", session.AccessToken)
}

func TestSignOut_SendsBearerToken(t *testing.T) {
	// Arrange
	var path, authorization string
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authorization = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))

	// Act
	err := client.Auth().SignOut(context.Background(), "user-token")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/logout", path)
	assert.Equal(t, "Bearer user-token", authorization)
}
