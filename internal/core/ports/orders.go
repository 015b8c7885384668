package ports

import (
	"context"

	"github.com/postqode/nexus-console/internal/core/domain"
)

// OrderAPI wraps the /orders endpoints. Approve, Reject and Cancel only
// request a transition; the effect (stock decrement, inventory insert) is
// computed server-side and observed through the next reload.
type OrderAPI interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListMine(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, productID string, quantity int) (*domain.Order, error)
	Approve(ctx context.Context, id string) (*domain.Order, error)
	Reject(ctx context.Context, id string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
}

// InventoryItemInput carries a validated manual inventory item payload.
type InventoryItemInput struct {
	Name     string
	Quantity int
	Notes    string
}

// InventoryAPI wraps the /user-inventory endpoints.
type InventoryAPI interface {
	ListMine(ctx context.Context) ([]domain.InventoryItem, error)
	Get(ctx context.Context, id string) (*domain.InventoryItem, error)
	Create(ctx context.Context, in InventoryItemInput) (*domain.InventoryItem, error)
	Update(ctx context.Context, id string, in InventoryItemInput) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
	// Consume removes quantity units. Consuming the full remaining quantity
	// deletes the item server-side.
	Consume(ctx context.Context, id string, quantity int) (*domain.InventoryItem, error)
}
