package ports

import (
	"context"

	"github.com/postqode/nexus-console/internal/core/domain"
)

// DashboardAPI wraps the GraphQL read queries backing the dashboards.
type DashboardAPI interface {
	Metrics(ctx context.Context) (*domain.DashboardMetrics, error)
	ProductsByStatus(ctx context.Context) ([]domain.StatusCount, error)
	ActivityByUser(ctx context.Context, days int) ([]domain.UserActivity, error)
	RecentActivity(ctx context.Context, limit int) ([]domain.ActivityLog, error)
	ProductsAddedToday(ctx context.Context) (int, error)
	// Products is the GraphQL alternative to the REST catalog list.
	Products(ctx context.Context, q ProductQuery) (*domain.ProductConnection, error)
}
