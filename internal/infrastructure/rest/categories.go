package rest

import (
	"context"
	"net/http"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

// Categories wraps the /categories endpoints.
type Categories struct {
	c *Client
}

var _ ports.CategoryAPI = (*Categories)(nil)

func NewCategories(c *Client) *Categories {
	return &Categories{c: c}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (cc *Categories) List(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := cc.c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *Categories) Get(ctx context.Context, id string) (*domain.Category, error) {
	var out domain.Category
	if err := cc.c.do(ctx, http.MethodGet, "/categories/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *Categories) Create(ctx context.Context, in ports.CategoryInput) (*domain.Category, error) {
	var out domain.Category
	req := categoryRequest{Name: in.Name, Description: in.Description}
	if err := cc.c.do(ctx, http.MethodPost, "/categories", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *Categories) Update(ctx context.Context, id string, in ports.CategoryInput) (*domain.Category, error) {
	var out domain.Category
	req := categoryRequest{Name: in.Name, Description: in.Description}
	if err := cc.c.do(ctx, http.MethodPut, "/categories/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *Categories) Delete(ctx context.Context, id string) error {
	return cc.c.do(ctx, http.MethodDelete, "/categories/"+id, nil, nil, nil)
}
