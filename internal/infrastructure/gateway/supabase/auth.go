package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/travelops/console-service/internal/core/gateway"
	"github.com/travelops/console-service/internal/domain/models"
)

// authClient implements gateway.Auth against the GoTrue auth endpoint.
type authClient struct {
	client *Client
}

// authUser is the user object embedded in auth responses.
type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// tokenResponse is the body returned by token-issuing endpoints.
type tokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         authUser `json:"user"`
}

// authError is the error body returned by the auth endpoint.
type authError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

// SignUp creates a new account. The created account is not signed in.
func (a *authClient) SignUp(ctx context.Context, params gateway.SignUpParams) (*models.Identity, error) {
	role := params.Role
	if role == "" {
		role = models.RoleAgent
	}

	payload := map[string]interface{}{
		"email":    params.Email,
		"password": params.Password,
		"data": map[string]string{
			"full_name": params.FullName,
			"role":      string(role),
		},
	}

	var user authUser
	if err := a.post(ctx, "/auth/v1/signup", "", payload, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("account creation failed")
	}

	return &models.Identity{UserID: user.ID, Email: user.Email}, nil
}

// SignIn verifies credentials and returns the issued session.
func (a *authClient) SignIn(ctx context.Context, creds gateway.Credentials) (*models.Session, error) {
	payload := map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	}

	var token tokenResponse
	if err := a.post(ctx, "/auth/v1/token?grant_type=password", "", payload, &token); err != nil {
		return nil, err
	}

	return a.session(token), nil
}

// SignOut revokes the session holding the given access token.
func (a *authClient) SignOut(ctx context.Context, accessToken string) error {
	return a.post(ctx, "/auth/v1/logout", accessToken, struct{}{}, nil)
}

// RefreshSession exchanges a refresh token for a fresh session.
func (a *authClient) RefreshSession(ctx context.Context, refreshToken string) (*models.Session, error) {
	payload := map[string]string{"refresh_token": refreshToken}

	var token tokenResponse
	if err := a.post(ctx, "/auth/v1/token?grant_type=refresh_token", "", payload, &token); err != nil {
		return nil, err
	}

	return a.session(token), nil
}

// ResetPassword requests a password reset email for the account.
func (a *authClient) ResetPassword(ctx context.Context, email string) error {
	return a.post(ctx, "/auth/v1/recover", "", map[string]string{"email": email}, nil)
}

// UpdatePassword sets a new password for the signed-in account.
func (a *authClient) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	payload := map[string]string{"password": newPassword}
	return a.request(ctx, http.MethodPut, "/auth/v1/user", accessToken, payload, nil)
}

// session converts a token response into a domain session.
func (a *authClient) session(token tokenResponse) *models.Session {
	return models.NewSession(
		token.User.ID,
		token.User.Email,
		token.AccessToken,
		token.RefreshToken,
		time.Duration(token.ExpiresIn)*time.Second,
	)
}

// post issues a POST request against the auth endpoint.
func (a *authClient) post(ctx context.Context, path, bearer string, payload, dest interface{}) error {
	return a.request(ctx, http.MethodPost, path, bearer, payload, dest)
}

// request issues a request against the auth endpoint, using the anon key as
// bearer unless an access token is supplied.
func (a *authClient) request(ctx context.Context, method, path, bearer string, payload, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.client.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", a.client.anonKey)
	if bearer == "" {
		bearer = a.client.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeAuthError(resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeAuthError converts a non-success auth response into an error carrying
// the provider's message.
func decodeAuthError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var authErr authError
	if err := json.Unmarshal(body, &authErr); err == nil {
		if authErr.Message != "" {
			return fmt.Errorf("%s", authErr.Message)
		}
		if authErr.ErrorDescription != "" {
			return fmt.Errorf("%s", authErr.ErrorDescription)
		}
	}
	return fmt.Errorf("identity provider rejected request: status %d", resp.StatusCode)
}
