package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
	"github.com/postqode/nexus-console/internal/core/validate"
)

// inflight tracks per-entity busy flags so rapid repeated clicks on an
// action button cannot issue duplicate requests.
type inflight struct {
	mu   sync.Mutex
	busy map[string]bool
}

func newInflight() *inflight {
	return &inflight{busy: make(map[string]bool)}
}

// begin marks id busy; false means a call for it is already running.
func (f *inflight) begin(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy[id] {
		return false
	}
	f.busy[id] = true
	return true
}

func (f *inflight) end(id string) {
	f.mu.Lock()
	delete(f.busy, id)
	f.mu.Unlock()
}

// OrderActions implements the buy/approve/reject/cancel flows.
type OrderActions struct {
	api      ports.OrderAPI
	notify   Notifier
	log      zerolog.Logger
	inflight *inflight
}

func NewOrderActions(api ports.OrderAPI, notify Notifier, log zerolog.Logger) *OrderActions {
	return &OrderActions{api: api, notify: notify, log: log, inflight: newInflight()}
}

// Buy places an order for quantityText units of product. The quantity must
// be a positive integer within the stock displayed at fetch time; anything
// else is blocked before any network call. The local product quantity is
// never decremented; the server is authoritative and the effect shows up
// on the next list reload.
func (a *OrderActions) Buy(ctx context.Context, product domain.Product, quantityText string) (*domain.Order, error) {
	qty, msg := validate.BuyQuantity(quantityText, product.Quantity)
	if msg != "" {
		a.notify.Error(msg)
		return nil, errors.New(msg)
	}

	if !a.inflight.begin(product.ID) {
		return nil, nil
	}
	defer a.inflight.end(product.ID)

	order, err := a.api.Create(ctx, product.ID, qty)
	if err != nil {
		a.log.Debug().Err(err).Str("product_id", product.ID).Int("quantity", qty).Msg("buy rejected")
		a.notify.Error(domain.UserMessage(err, "Failed to place order"))
		return nil, err
	}
	a.notify.Success("Order placed successfully")
	return order, nil
}

// CanApprove reports whether the approve button should be enabled: the
// order is still pending and its quantity fits the product's current stock.
// Purely advisory; the server re-validates either way.
func CanApprove(o domain.Order) bool {
	if !o.Status.CanTransitionTo(domain.OrderApproved) {
		return false
	}
	return o.Product != nil && o.Product.Quantity >= o.Quantity
}

// Approve requests the approve transition and reports the outcome. The
// caller reloads its list afterwards; no local state is adjusted.
func (a *OrderActions) Approve(ctx context.Context, id string) error {
	return a.transition(ctx, id, "approve")
}

// Reject requests the reject transition. Stock is unaffected server-side.
func (a *OrderActions) Reject(ctx context.Context, id string) error {
	return a.transition(ctx, id, "reject")
}

// Cancel requests the cancel transition.
func (a *OrderActions) Cancel(ctx context.Context, id string) error {
	return a.transition(ctx, id, "cancel")
}

func (a *OrderActions) transition(ctx context.Context, id, action string) error {
	if !a.inflight.begin(id) {
		return nil
	}
	defer a.inflight.end(id)

	var err error
	var done string
	switch action {
	case "approve":
		_, err = a.api.Approve(ctx, id)
		done = "approved"
	case "reject":
		_, err = a.api.Reject(ctx, id)
		done = "rejected"
	case "cancel":
		_, err = a.api.Cancel(ctx, id)
		done = "cancelled"
	}
	if err != nil {
		a.log.Debug().Err(err).Str("order_id", id).Str("action", action).Msg("order transition rejected")
		a.notify.Error(domain.UserMessage(err, "Failed to "+action+" order"))
		return err
	}
	a.notify.Success("Order " + done + " successfully")
	return nil
}

// InventoryActions implements the consume and delete flows.
type InventoryActions struct {
	api      ports.InventoryAPI
	notify   Notifier
	log      zerolog.Logger
	inflight *inflight
}

func NewInventoryActions(api ports.InventoryAPI, notify Notifier, log zerolog.Logger) *InventoryActions {
	return &InventoryActions{api: api, notify: notify, log: log, inflight: newInflight()}
}

// ConsumesAll reports whether quantityText would consume the item's entire
// remaining quantity, which removes the item server-side. The caller shows
// a non-blocking warning before submitting in that case.
func ConsumesAll(item domain.InventoryItem, quantityText string) bool {
	qty, ok := validate.ParseQuantity(quantityText)
	return ok && qty == item.Quantity
}

// Consume removes quantityText units from item. The quantity must be within
// 1..item.Quantity; anything else is blocked before any network call.
func (a *InventoryActions) Consume(ctx context.Context, item domain.InventoryItem, quantityText string) (*domain.InventoryItem, error) {
	qty, msg := validate.ConsumeQuantity(quantityText, item.Quantity)
	if msg != "" {
		a.notify.Error(msg)
		return nil, errors.New(msg)
	}

	if !a.inflight.begin(item.ID) {
		return nil, nil
	}
	defer a.inflight.end(item.ID)

	updated, err := a.api.Consume(ctx, item.ID, qty)
	if err != nil {
		a.notify.Error(domain.UserMessage(err, "Failed to consume item"))
		return nil, err
	}
	a.notify.Success("Item consumed successfully")
	return updated, nil
}

// Delete removes a manual item. PURCHASED items are refused locally; they
// can only leave the inventory through consumption.
func (a *InventoryActions) Delete(ctx context.Context, item domain.InventoryItem) error {
	if !item.Deletable() {
		a.notify.Error("Purchased items cannot be deleted")
		return domain.ErrNotDeletable
	}

	if !a.inflight.begin(item.ID) {
		return nil
	}
	defer a.inflight.end(item.ID)

	if err := a.api.Delete(ctx, item.ID); err != nil {
		a.notify.Error(domain.UserMessage(err, "Failed to delete item"))
		return err
	}
	a.notify.Success("Item deleted successfully")
	return nil
}

// ProductActions implements the catalog delete flow used by the admin list.
type ProductActions struct {
	api      ports.ProductAPI
	notify   Notifier
	log      zerolog.Logger
	inflight *inflight
}

func NewProductActions(api ports.ProductAPI, notify Notifier, log zerolog.Logger) *ProductActions {
	return &ProductActions{api: api, notify: notify, log: log, inflight: newInflight()}
}

// Delete removes a product from the catalog.
func (a *ProductActions) Delete(ctx context.Context, id string) error {
	if !a.inflight.begin(id) {
		return nil
	}
	defer a.inflight.end(id)

	if err := a.api.Delete(ctx, id); err != nil {
		a.notify.Error(domain.UserMessage(err, "Failed to delete product"))
		return err
	}
	a.notify.Success("Product deleted successfully")
	return nil
}
