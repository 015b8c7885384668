package rest

import (
	"context"
	"net/http"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

// Users wraps the /users endpoints.
type Users struct {
	c *Client
}

var _ ports.UserAPI = (*Users)(nil)

func NewUsers(c *Client) *Users {
	return &Users{c: c}
}

type userRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

func (u *Users) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := u.c.do(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Users) Get(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := u.c.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	var out domain.User
	req := userRequest{Username: in.Username, Password: in.Password, Email: in.Email, Role: in.Role}
	if err := u.c.do(ctx, http.MethodPost, "/users", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	var out domain.User
	req := userRequest{Username: in.Username, Password: in.Password, Email: in.Email, Role: in.Role}
	if err := u.c.do(ctx, http.MethodPut, "/users/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) Enable(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := u.c.do(ctx, http.MethodPatch, "/users/"+id+"/enable", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) Disable(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := u.c.do(ctx, http.MethodPatch, "/users/"+id+"/disable", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) SetEnabled(ctx context.Context, id string, enabled bool) (*domain.User, error) {
	var out domain.User
	err := u.c.do(ctx, http.MethodPatch, "/users/"+id+"/status", nil, setEnabledRequest{Enabled: enabled}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
