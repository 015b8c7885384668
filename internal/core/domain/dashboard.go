package domain

import "time"

// Read-only aggregate projections fetched fresh on each dashboard view and
// discarded. None of these has an independent lifecycle on the client.

// DashboardMetrics is the admin headline card set.
type DashboardMetrics struct {
	TotalProducts      int `json:"totalProducts"`
	ActiveProducts     int `json:"activeProducts"`
	LowStockProducts   int `json:"lowStockProducts"`
	OutOfStockProducts int `json:"outOfStockProducts"`
	ProductsAddedToday int `json:"productsAddedToday"`
	ActionsToday       int `json:"actionsToday"`
}

// StatusCount is one slice of the product-status breakdown chart.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// UserActivity summarises one user's recent actions.
type UserActivity struct {
	Username    string `json:"username"`
	ActionCount int    `json:"actionCount"`
	LastAction  string `json:"lastAction"`
}

// ActivityLog is a single audit trail entry.
type ActivityLog struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	ProductName string    `json:"productName,omitempty"`
	ActionType  string    `json:"actionType"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// PageInfo describes the cursor of a GraphQL product connection.
type PageInfo struct {
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// ProductConnection is the GraphQL paged product result.
type ProductConnection struct {
	Items      []Product `json:"items"`
	TotalCount int       `json:"totalCount"`
	PageInfo   PageInfo  `json:"pageInfo"`
}

// Page is the REST paged envelope (Spring Data shape) returned by list
// endpoints. Number is the zero-based index of this page.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}
