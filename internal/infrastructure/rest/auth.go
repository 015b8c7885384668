package rest

import (
	"context"
	"net/http"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

// Auth wraps the /auth endpoints.
type Auth struct {
	c *Client
}

var _ ports.AuthAPI = (*Auth)(nil)

func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *Auth) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	var out ports.LoginResult
	err := a.c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Auth) Logout(ctx context.Context) error {
	return a.c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (a *Auth) CurrentUser(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := a.c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
