package rest

import (
	"context"
	"net/http"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

// Inventory wraps the /user-inventory endpoints.
type Inventory struct {
	c *Client
}

var _ ports.InventoryAPI = (*Inventory)(nil)

func NewInventory(c *Client) *Inventory {
	return &Inventory{c: c}
}

type inventoryItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type consumeRequest struct {
	Quantity int `json:"quantity"`
}

func (iv *Inventory) ListMine(ctx context.Context) ([]domain.InventoryItem, error) {
	var out []domain.InventoryItem
	if err := iv.c.do(ctx, http.MethodGet, "/user-inventory", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (iv *Inventory) Get(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var out domain.InventoryItem
	if err := iv.c.do(ctx, http.MethodGet, "/user-inventory/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (iv *Inventory) Create(ctx context.Context, in ports.InventoryItemInput) (*domain.InventoryItem, error) {
	var out domain.InventoryItem
	req := inventoryItemRequest{Name: in.Name, Quantity: in.Quantity, Notes: in.Notes}
	if err := iv.c.do(ctx, http.MethodPost, "/user-inventory", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (iv *Inventory) Update(ctx context.Context, id string, in ports.InventoryItemInput) (*domain.InventoryItem, error) {
	var out domain.InventoryItem
	req := inventoryItemRequest{Name: in.Name, Quantity: in.Quantity, Notes: in.Notes}
	if err := iv.c.do(ctx, http.MethodPut, "/user-inventory/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (iv *Inventory) Delete(ctx context.Context, id string) error {
	return iv.c.do(ctx, http.MethodDelete, "/user-inventory/"+id, nil, nil, nil)
}

func (iv *Inventory) Consume(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error) {
	var out domain.InventoryItem
	err := iv.c.do(ctx, http.MethodPost, "/user-inventory/"+id+"/consume", nil, consumeRequest{Quantity: quantity}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
