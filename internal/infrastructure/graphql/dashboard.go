package graphql

import (
	"context"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

var _ ports.DashboardAPI = (*Client)(nil)

const dashboardMetricsQuery = `
query {
  dashboardMetrics {
    totalProducts
    activeProducts
    lowStockProducts
    outOfStockProducts
    productsAddedToday
    actionsToday
  }
}`

const productsByStatusQuery = `
query {
  productsByStatus {
    status
    count
  }
}`

const activityByUserQuery = `
query ($days: Int) {
  activityByUser(days: $days) {
    username
    actionCount
    lastAction
  }
}`

const recentActivityQuery = `
query ($limit: Int) {
  recentActivity(limit: $limit) {
    id
    username
    productName
    actionType
    createdAt
  }
}`

const productsAddedTodayQuery = `
query {
  productsAddedToday
}`

const productsQuery = `
query ($search: String, $status: ProductStatus, $sortBy: ProductSortField, $sortOrder: SortOrder, $page: Int, $pageSize: Int) {
  products(search: $search, status: $status, sortBy: $sortBy, sortOrder: $sortOrder, page: $page, pageSize: $pageSize) {
    items {
      id
      sku
      name
      description
      price
      quantity
      status
      createdAt
      updatedAt
    }
    totalCount
    pageInfo {
      currentPage
      pageSize
      totalPages
      hasNextPage
      hasPreviousPage
    }
  }
}`

func (c *Client) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	var out struct {
		DashboardMetrics domain.DashboardMetrics `json:"dashboardMetrics"`
	}
	if err := c.query(ctx, dashboardMetricsQuery, nil, &out); err != nil {
		return nil, err
	}
	return &out.DashboardMetrics, nil
}

func (c *Client) ProductsByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	var out struct {
		ProductsByStatus []domain.StatusCount `json:"productsByStatus"`
	}
	if err := c.query(ctx, productsByStatusQuery, nil, &out); err != nil {
		return nil, err
	}
	return out.ProductsByStatus, nil
}

func (c *Client) ActivityByUser(ctx context.Context, days int) ([]domain.UserActivity, error) {
	var out struct {
		ActivityByUser []domain.UserActivity `json:"activityByUser"`
	}
	if err := c.query(ctx, activityByUserQuery, map[string]any{"days": days}, &out); err != nil {
		return nil, err
	}
	return out.ActivityByUser, nil
}

func (c *Client) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	var out struct {
		RecentActivity []domain.ActivityLog `json:"recentActivity"`
	}
	if err := c.query(ctx, recentActivityQuery, map[string]any{"limit": limit}, &out); err != nil {
		return nil, err
	}
	return out.RecentActivity, nil
}

func (c *Client) ProductsAddedToday(ctx context.Context) (int, error) {
	var out struct {
		ProductsAddedToday int `json:"productsAddedToday"`
	}
	if err := c.query(ctx, productsAddedTodayQuery, nil, &out); err != nil {
		return 0, err
	}
	return out.ProductsAddedToday, nil
}

// Products queries the catalog through GraphQL. Page converts to zero-based
// indexing here, same as the REST adapter; omitted filters stay out of the
// variables map entirely.
func (c *Client) Products(ctx context.Context, q ports.ProductQuery) (*domain.ProductConnection, error) {
	vars := map[string]any{}
	page := q.Page - 1
	if page < 0 {
		page = 0
	}
	vars["page"] = page
	if q.PageSize > 0 {
		vars["pageSize"] = q.PageSize
	}
	if q.Search != "" {
		vars["search"] = q.Search
	}
	if q.Status != "" {
		vars["status"] = q.Status
	}
	if q.SortField != "" {
		vars["sortBy"] = q.SortField
		dir := q.SortDir
		if dir == "" {
			dir = ports.SortAsc
		}
		vars["sortOrder"] = string(dir)
	}

	var out struct {
		Products domain.ProductConnection `json:"products"`
	}
	if err := c.query(ctx, productsQuery, vars, &out); err != nil {
		return nil, err
	}
	return &out.Products, nil
}
