package client

import (
	"context"
	"net/http"
	"net/url"

	"buckler/models"
)

// Token exchanges credentials for a token pair. The backend expects
// form-encoded username/password on this endpoint only.
func (c *Client) Token(ctx context.Context, creds models.Credentials) (models.TokenPair, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	var pair models.TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/token", nil, &pair, requestOptions{
		form:      form,
		noAuth:    true,
		noRefresh: true,
	})
	return pair, err
}

// Register creates an account and returns its first token pair.
func (c *Client) Register(ctx context.Context, reg models.Registration) (models.TokenPair, error) {
	var pair models.TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/register", reg, &pair, requestOptions{
		noAuth:    true,
		noRefresh: true,
	})
	return pair, err
}

// Me resolves the current user for the attached access token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user, requestOptions{})
	return user, err
}

// RefreshToken rotates the token pair. Never re-enters the refresh protocol.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var pair models.TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/refresh", body, &pair, requestOptions{
		noAuth:    true,
		noRefresh: true,
	})
	return pair, err
}

// Logout invalidates the session server-side. Callers clear local state
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, requestOptions{
		noRefresh: true,
	})
}
