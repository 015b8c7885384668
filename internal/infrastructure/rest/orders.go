package rest

import (
	"context"
	"net/http"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

// Orders wraps the /orders endpoints.
type Orders struct {
	c *Client
}

var _ ports.OrderAPI = (*Orders)(nil)

func NewOrders(c *Client) *Orders {
	return &Orders{c: c}
}

type createOrderRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (o *Orders) ListAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := o.c.do(ctx, http.MethodGet, "/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *Orders) ListMine(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := o.c.do(ctx, http.MethodGet, "/orders/my-orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *Orders) Get(ctx context.Context, id string) (*domain.Order, error) {
	var out domain.Order
	if err := o.c.do(ctx, http.MethodGet, "/orders/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *Orders) Create(ctx context.Context, productID string, quantity int) (*domain.Order, error) {
	var out domain.Order
	req := createOrderRequest{ProductID: productID, Quantity: quantity}
	if err := o.c.do(ctx, http.MethodPost, "/orders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *Orders) Approve(ctx context.Context, id string) (*domain.Order, error) {
	return o.transition(ctx, id, "approve")
}

func (o *Orders) Reject(ctx context.Context, id string) (*domain.Order, error) {
	return o.transition(ctx, id, "reject")
}

func (o *Orders) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return o.transition(ctx, id, "cancel")
}

func (o *Orders) transition(ctx context.Context, id, action string) (*domain.Order, error) {
	var out domain.Order
	if err := o.c.do(ctx, http.MethodPost, "/orders/"+id+"/"+action, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
