package client

import (
	"context"
	"net/http"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken         string `json:"access_token"`
	AccessTokenExpires  string `json:"access_token_expires"`
	RefreshToken        string `json:"refresh_token"`
	RefreshTokenExpires string `json:"refresh_token_expires,omitempty"`
}

// Login authenticates against the backend. Tokens are returned to the
// caller; nothing is persisted here so a failed login can never leave the
// client half authenticated.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthTokens, error) {
	var tokens AuthTokens
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{
		Username: username,
		Password: password,
	}, &tokens)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}
