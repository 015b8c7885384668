package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

// Products wraps the /products endpoints.
type Products struct {
	c *Client
}

var _ ports.ProductAPI = (*Products)(nil)

func NewProducts(c *Client) *Products {
	return &Products{c: c}
}

// listQuery builds the wire query for the catalog list. The backend uses
// zero-based page indexing and a composite sort=field,DIRECTION parameter;
// absent filters must be physically left out, not sent empty.
func listQuery(q ports.ProductQuery) url.Values {
	v := url.Values{}
	page := q.Page - 1
	if page < 0 {
		page = 0
	}
	v.Set("page", strconv.Itoa(page))
	if q.PageSize > 0 {
		v.Set("size", strconv.Itoa(q.PageSize))
	}
	if q.SortField != "" {
		dir := q.SortDir
		if dir == "" {
			dir = ports.SortAsc
		}
		v.Set("sort", q.SortField+","+string(dir))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.CategoryID != "" {
		v.Set("categoryId", q.CategoryID)
	}
	return v
}

func (p *Products) List(ctx context.Context, q ports.ProductQuery) (*domain.Page[domain.Product], error) {
	var out domain.Page[domain.Product]
	if err := p.c.do(ctx, http.MethodGet, "/products", listQuery(q), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Products) Get(ctx context.Context, id string) (*domain.Product, error) {
	var out domain.Product
	if err := p.c.do(ctx, http.MethodGet, "/products/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type productRequest struct {
	SKU         string          `json:"sku,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Status      string          `json:"status,omitempty"`
	CategoryID  string          `json:"categoryId,omitempty"`
}

func (p *Products) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	req := productRequest{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Status:      in.Status,
		CategoryID:  in.CategoryID,
	}
	var out domain.Product
	if err := p.c.do(ctx, http.MethodPost, "/products", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Products) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	req := productRequest{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		CategoryID:  in.CategoryID,
	}
	var out domain.Product
	if err := p.c.do(ctx, http.MethodPut, "/products/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Products) Delete(ctx context.Context, id string) error {
	return p.c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, nil)
}

func (p *Products) UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) (*domain.Product, error) {
	// Status travels as a query parameter on this endpoint.
	v := url.Values{}
	v.Set("status", string(status))
	var out domain.Product
	if err := p.c.do(ctx, http.MethodPatch, "/products/"+id+"/status", v, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
