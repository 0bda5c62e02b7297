package backend

import (
	"context"
	"net/http"

	"siuportal/internal/domain/session"
)

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Token string          `json:"token"`
	User  session.Profile `json:"user"`
}

// Login exchanges credentials for a token and profile.
// POST: returns ErrUnauthorized when the credentials are wrong
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", payload, &out); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// AccountInput is a new-account request.
type AccountInput struct {
	Name      string `json:"nama"`
	StudentID string `json:"nim"`
	Email     string `json:"email"`
	Faculty   string `json:"fakultas"`
	Password  string `json:"password"`
}

// RegisterAccount creates a student account. The backend assigns the
// member role.
func (c *Client) RegisterAccount(ctx context.Context, input AccountInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", input, nil)
}

// ForgotPassword asks the backend to start a password reset. The
// backend answers 200 whether or not the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", "", payload, nil)
}

// FetchProfile reloads the caller's profile.
// POST: returns ErrUnauthorized when the token is no longer accepted
func (c *Client) FetchProfile(ctx context.Context, token string) (session.Profile, error) {
	var out session.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, &out); err != nil {
		return session.Profile{}, err
	}
	return out, nil
}
