package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/shopspring/decimal"
)

func TestBuy_Success(t *testing.T) {
	var gotProduct string
	var gotQty int
	api := &stubOrders{createFn: func(productID string, quantity int) (*domain.Order, error) {
		gotProduct = productID
		gotQty = quantity
		return &domain.Order{ID: "o1", Status: domain.OrderPending}, nil
	}}
	notify := &recordNotifier{}
	a := NewOrderActions(api, notify, testLog)

	product := domain.Product{ID: "p1", Name: "Widget", Quantity: 10}
	order, err := a.Buy(context.Background(), product, "3")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "p1", gotProduct)
	assert.Equal(t, 3, gotQty)
	assert.Equal(t, "Order placed successfully", notify.lastSuccess())
}

func TestBuy_ExceedsStockBlockedLocally(t *testing.T) {
	api := &stubOrders{}
	notify := &recordNotifier{}
	a := NewOrderActions(api, notify, testLog)

	product := domain.Product{ID: "p1", Quantity: 3}
	_, err := a.Buy(context.Background(), product, "5")

	require.Error(t, err)
	assert.Equal(t, 0, api.creates)
	assert.Equal(t, "Only 3 items available", notify.lastError())
}

func TestBuy_InvalidQuantity(t *testing.T) {
	api := &stubOrders{}
	notify := &recordNotifier{}
	a := NewOrderActions(api, notify, testLog)

	for _, input := range []string{"", "abc", "0", "-2"} {
		_, err := a.Buy(context.Background(), domain.Product{ID: "p1", Quantity: 10}, input)
		require.Error(t, err, "input %q", input)
	}
	assert.Equal(t, 0, api.creates)
	assert.Equal(t, "Please enter a valid quantity", notify.lastError())
}

func TestBuy_ServerRejection(t *testing.T) {
	api := &stubOrders{createFn: func(string, int) (*domain.Order, error) {
		return nil, &domain.APIError{Status: 409, Message: "Insufficient stock"}
	}}
	notify := &recordNotifier{}
	a := NewOrderActions(api, notify, testLog)

	_, err := a.Buy(context.Background(), domain.Product{ID: "p1", Quantity: 10}, "2")

	require.Error(t, err)
	assert.Equal(t, "Insufficient stock", notify.lastError())
}

func TestCanApprove(t *testing.T) {
	product := &domain.Product{ID: "p1", Quantity: 5}

	assert.True(t, CanApprove(domain.Order{Status: domain.OrderPending, Product: product, Quantity: 5}))
	assert.False(t, CanApprove(domain.Order{Status: domain.OrderPending, Product: product, Quantity: 6}))
	assert.False(t, CanApprove(domain.Order{Status: domain.OrderApproved, Product: product, Quantity: 1}))
	assert.False(t, CanApprove(domain.Order{Status: domain.OrderRejected, Product: product, Quantity: 1}))
	assert.False(t, CanApprove(domain.Order{Status: domain.OrderPending, Product: nil, Quantity: 1}))
}

func TestOrderTransitions(t *testing.T) {
	api := &stubOrders{}
	notify := &recordNotifier{}
	a := NewOrderActions(api, notify, testLog)
	ctx := context.Background()

	require.NoError(t, a.Approve(ctx, "o1"))
	assert.Equal(t, "Order approved successfully", notify.lastSuccess())

	require.NoError(t, a.Reject(ctx, "o2"))
	assert.Equal(t, "Order rejected successfully", notify.lastSuccess())

	require.NoError(t, a.Cancel(ctx, "o3"))
	assert.Equal(t, "Order cancelled successfully", notify.lastSuccess())

	assert.Equal(t, 1, api.approves)
	assert.Equal(t, 1, api.rejects)
	assert.Equal(t, 1, api.cancels)
}

func TestOrderTransition_Failure(t *testing.T) {
	api := &stubOrders{approveFn: func(string) (*domain.Order, error) {
		return nil, &domain.APIError{Status: 409, Message: "Order is not pending"}
	}}
	notify := &recordNotifier{}
	a := NewOrderActions(api, notify, testLog)

	err := a.Approve(context.Background(), "o1")
	require.Error(t, err)
	assert.Equal(t, "Order is not pending", notify.lastError())
	assert.Empty(t, notify.lastSuccess())
}

func TestConsume(t *testing.T) {
	var gotQty int
	api := &stubInventory{consumeFn: func(id string, quantity int) (*domain.InventoryItem, error) {
		gotQty = quantity
		return &domain.InventoryItem{ID: id, Quantity: 4 - quantity}, nil
	}}
	notify := &recordNotifier{}
	a := NewInventoryActions(api, notify, testLog)

	item := domain.InventoryItem{ID: "i1", Quantity: 4, Source: domain.SourcePurchased}
	updated, err := a.Consume(context.Background(), item, "3")

	require.NoError(t, err)
	assert.Equal(t, 3, gotQty)
	assert.Equal(t, 1, updated.Quantity)
	assert.Equal(t, "Item consumed successfully", notify.lastSuccess())
}

func TestConsume_OverQuantityBlockedLocally(t *testing.T) {
	api := &stubInventory{}
	notify := &recordNotifier{}
	a := NewInventoryActions(api, notify, testLog)

	item := domain.InventoryItem{ID: "i1", Quantity: 4}
	_, err := a.Consume(context.Background(), item, "5")

	require.Error(t, err)
	assert.Equal(t, 0, api.consumes)
	assert.Equal(t, "Cannot consume more than available quantity", notify.lastError())
}

func TestConsumesAll(t *testing.T) {
	item := domain.InventoryItem{Quantity: 4}
	assert.True(t, ConsumesAll(item, "4"))
	assert.False(t, ConsumesAll(item, "3"))
	assert.False(t, ConsumesAll(item, ""))
}

func TestDeleteInventory_PurchasedRefused(t *testing.T) {
	api := &stubInventory{}
	notify := &recordNotifier{}
	a := NewInventoryActions(api, notify, testLog)

	item := domain.InventoryItem{ID: "i1", Source: domain.SourcePurchased}
	err := a.Delete(context.Background(), item)

	require.ErrorIs(t, err, domain.ErrNotDeletable)
	assert.Equal(t, 0, api.deletes)
	assert.Equal(t, "Purchased items cannot be deleted", notify.lastError())
}

func TestDeleteInventory_Manual(t *testing.T) {
	api := &stubInventory{}
	notify := &recordNotifier{}
	a := NewInventoryActions(api, notify, testLog)

	item := domain.InventoryItem{ID: "i1", Source: domain.SourceManual}
	require.NoError(t, a.Delete(context.Background(), item))
	assert.Equal(t, 1, api.deletes)
	assert.Equal(t, "Item deleted successfully", notify.lastSuccess())
}

func TestDeleteProduct(t *testing.T) {
	api := &stubProducts{}
	notify := &recordNotifier{}
	a := NewProductActions(api, notify, testLog)

	require.NoError(t, a.Delete(context.Background(), "p1"))
	assert.Equal(t, 1, api.deletes)
	assert.Equal(t, "Product deleted successfully", notify.lastSuccess())
}

func TestOrderTotal(t *testing.T) {
	o := domain.Order{
		Product:  &domain.Product{Price: decimal.RequireFromString("19.99")},
		Quantity: 3,
	}
	assert.True(t, o.Total().Equal(decimal.RequireFromString("59.97")))

	assert.True(t, domain.Order{Quantity: 3}.Total().IsZero())
}
