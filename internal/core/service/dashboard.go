package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

const (
	activityWindowDays  = 7
	recentActivityLimit = 10
)

// AdminSnapshot is the admin dashboard's data: GraphQL aggregates plus the
// full order list, reduced locally to per-status counts.
type AdminSnapshot struct {
	Metrics     domain.DashboardMetrics
	ByStatus    []domain.StatusCount
	Activity    []domain.UserActivity
	Recent      []domain.ActivityLog
	Orders      []domain.Order
	OrderCounts map[domain.OrderStatus]int
}

// UserSnapshot is the regular user's dashboard: own orders and inventory
// with the derived totals the summary cards show.
type UserSnapshot struct {
	Orders            []domain.Order
	Inventory         []domain.InventoryItem
	PendingOrders     int
	TotalSpend        decimal.Decimal
	InventoryQuantity int
}

// Snapshot is one role-aware dashboard load; exactly one side is set.
type Snapshot struct {
	Admin *AdminSnapshot
	User  *UserSnapshot
}

// Dashboard issues the dashboard reads in parallel and reduces the results
// locally. It holds no state between loads: every view, and every manual
// refresh, fetches fresh and discards the previous projection.
type Dashboard struct {
	dash      ports.DashboardAPI
	orders    ports.OrderAPI
	inventory ports.InventoryAPI
	session   *Session
	log       zerolog.Logger
}

func NewDashboard(dash ports.DashboardAPI, orders ports.OrderAPI, inventory ports.InventoryAPI, session *Session, log zerolog.Logger) *Dashboard {
	return &Dashboard{dash: dash, orders: orders, inventory: inventory, session: session, log: log}
}

// Load fetches the snapshot for the current role. Any failed read fails the
// whole load; the caller keeps showing its previous snapshot.
func (d *Dashboard) Load(ctx context.Context) (*Snapshot, error) {
	if d.session.IsAdmin() {
		admin, err := d.loadAdmin(ctx)
		if err != nil {
			return nil, err
		}
		return &Snapshot{Admin: admin}, nil
	}
	user, err := d.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{User: user}, nil
}

func (d *Dashboard) loadAdmin(ctx context.Context) (*AdminSnapshot, error) {
	var snap AdminSnapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := d.dash.Metrics(ctx)
		if err != nil {
			return err
		}
		snap.Metrics = *m
		return nil
	})
	g.Go(func() error {
		var err error
		snap.ByStatus, err = d.dash.ProductsByStatus(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Activity, err = d.dash.ActivityByUser(ctx, activityWindowDays)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Recent, err = d.dash.RecentActivity(ctx, recentActivityLimit)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Orders, err = d.orders.ListAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		d.log.Warn().Err(err).Msg("admin dashboard load failed")
		return nil, err
	}

	snap.OrderCounts = make(map[domain.OrderStatus]int, 4)
	for _, o := range snap.Orders {
		snap.OrderCounts[o.Status]++
	}
	return &snap, nil
}

func (d *Dashboard) loadUser(ctx context.Context) (*UserSnapshot, error) {
	var snap UserSnapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Orders, err = d.orders.ListMine(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Inventory, err = d.inventory.ListMine(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		d.log.Warn().Err(err).Msg("user dashboard load failed")
		return nil, err
	}

	snap.TotalSpend = decimal.Zero
	for _, o := range snap.Orders {
		if o.Status == domain.OrderPending {
			snap.PendingOrders++
		}
		snap.TotalSpend = snap.TotalSpend.Add(o.Total())
	}
	for _, item := range snap.Inventory {
		snap.InventoryQuantity += item.Quantity
	}
	return &snap, nil
}
