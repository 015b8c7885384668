package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend (Jackson) serialises BigDecimal as a bare JSON number and
	// expects the same on input.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProductStatus is derived server-side from the remaining quantity. The
// client only ever displays it.
type ProductStatus string

const (
	ProductActive     ProductStatus = "ACTIVE"
	ProductLowStock   ProductStatus = "LOW_STOCK"
	ProductOutOfStock ProductStatus = "OUT_OF_STOCK"
)

// Display returns the status with underscores replaced for table rendering.
func (s ProductStatus) Display() string {
	switch s {
	case ProductLowStock:
		return "LOW STOCK"
	case ProductOutOfStock:
		return "OUT OF STOCK"
	default:
		return string(s)
	}
}

// Product mirrors the catalog record. SKU is immutable after creation and the
// `PRD-\d{3,}` format is only checked client-side on create.
type Product struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Status       ProductStatus   `json:"status"`
	CategoryID   string          `json:"categoryId,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
	CreatedAt    time.Time       `json:"createdAt,omitzero"`
	UpdatedAt    time.Time       `json:"updatedAt,omitzero"`
}

// InStock reports whether at least one unit can still be bought.
func (p Product) InStock() bool {
	return p.Quantity > 0
}

// Category groups products. Products may exist without one.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
