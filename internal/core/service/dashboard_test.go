package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
	"github.com/shopspring/decimal"
)

func sessionWithRole(t *testing.T, role string) *Session {
	t.Helper()
	s := NewSession(&memStore{}, testLog)
	s.AttachAuth(&stubAuth{loginFn: func(username, _ string) (*ports.LoginResult, error) {
		return &ports.LoginResult{Token: "tok", Username: username, Role: role}, nil
	}})
	_, err := s.Login(context.Background(), "someone", "pw")
	require.NoError(t, err)
	return s
}

func TestDashboard_AdminSnapshot(t *testing.T) {
	dash := &stubDashboard{
		metrics: domain.DashboardMetrics{TotalProducts: 12, ActiveProducts: 9, LowStockProducts: 2, OutOfStockProducts: 1},
		byStatus: []domain.StatusCount{
			{Status: "ACTIVE", Count: 9},
			{Status: "LOW_STOCK", Count: 2},
		},
		recent: []domain.ActivityLog{{Username: "alice", ActionType: "CREATE", ProductName: "Widget"}},
	}
	orders := &stubOrders{listAllFn: func() ([]domain.Order, error) {
		return []domain.Order{
			{ID: "o1", Status: domain.OrderPending},
			{ID: "o2", Status: domain.OrderPending},
			{ID: "o3", Status: domain.OrderApproved},
			{ID: "o4", Status: domain.OrderCancelled},
		}, nil
	}}

	d := NewDashboard(dash, orders, &stubInventory{}, sessionWithRole(t, domain.RoleAdmin), testLog)
	snap, err := d.Load(context.Background())
	require.NoError(t, err)

	require.NotNil(t, snap.Admin)
	assert.Nil(t, snap.User)
	assert.Equal(t, 12, snap.Admin.Metrics.TotalProducts)
	assert.Len(t, snap.Admin.ByStatus, 2)
	assert.Len(t, snap.Admin.Recent, 1)
	assert.Equal(t, 2, snap.Admin.OrderCounts[domain.OrderPending])
	assert.Equal(t, 1, snap.Admin.OrderCounts[domain.OrderApproved])
	assert.Equal(t, 0, snap.Admin.OrderCounts[domain.OrderRejected])
	assert.Equal(t, 1, snap.Admin.OrderCounts[domain.OrderCancelled])
}

func TestDashboard_UserSnapshot(t *testing.T) {
	price := func(s string) *domain.Product {
		return &domain.Product{Price: decimal.RequireFromString(s)}
	}
	orders := &stubOrders{listMineFn: func() ([]domain.Order, error) {
		return []domain.Order{
			{ID: "o1", Status: domain.OrderPending, Product: price("10"), Quantity: 2},
			{ID: "o2", Status: domain.OrderApproved, Product: price("5.50"), Quantity: 1},
			{ID: "o3", Status: domain.OrderRejected, Product: price("3"), Quantity: 4},
		}, nil
	}}
	inventory := &stubInventory{listMineFn: func() ([]domain.InventoryItem, error) {
		return []domain.InventoryItem{
			{ID: "i1", Quantity: 3},
			{ID: "i2", Quantity: 7},
		}, nil
	}}

	d := NewDashboard(&stubDashboard{}, orders, inventory, sessionWithRole(t, domain.RoleUser), testLog)
	snap, err := d.Load(context.Background())
	require.NoError(t, err)

	require.NotNil(t, snap.User)
	assert.Nil(t, snap.Admin)
	assert.Equal(t, 1, snap.User.PendingOrders)
	// spend covers every order regardless of status
	assert.True(t, snap.User.TotalSpend.Equal(decimal.RequireFromString("37.50")),
		"got %s", snap.User.TotalSpend)
	assert.Equal(t, 10, snap.User.InventoryQuantity)
	assert.Len(t, snap.User.Orders, 3)
	assert.Len(t, snap.User.Inventory, 2)
}

func TestDashboard_FailedReadFailsLoad(t *testing.T) {
	orders := &stubOrders{listMineFn: func() ([]domain.Order, error) {
		return nil, &domain.APIError{Status: 500, Message: "boom"}
	}}

	d := NewDashboard(&stubDashboard{}, orders, &stubInventory{}, sessionWithRole(t, domain.RoleUser), testLog)
	snap, err := d.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
}
