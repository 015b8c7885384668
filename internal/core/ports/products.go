package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/postqode/nexus-console/internal/core/domain"
)

// SortDirection is the order half of the composite sort parameter.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ProductQuery carries the catalog list parameters. Page is one-based here;
// adapters convert to the backend's zero-based convention on the wire.
// Empty filter fields are physically left out of the query string.
type ProductQuery struct {
	Search     string
	Status     string
	CategoryID string
	SortField  string
	SortDir    SortDirection
	Page       int
	PageSize   int
}

// CreateProductInput carries a validated product create payload.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	Status      string
	CategoryID  string
}

// UpdateProductInput carries a validated product update payload. SKU is
// absent: it is immutable after creation.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	CategoryID  string
}

// ProductAPI wraps the /products endpoints.
type ProductAPI interface {
	List(ctx context.Context, q ProductQuery) (*domain.Page[domain.Product], error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) (*domain.Product, error)
}

// CategoryInput carries a validated category payload.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryAPI wraps the /categories endpoints.
type CategoryAPI interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
