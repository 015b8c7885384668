package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

type staticTokens string

func (t staticTokens) Token() string { return string(t) }

func newTestClient(t *testing.T, handler http.Handler, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL
	opts.Logger = zerolog.Nop()
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func TestClient_Headers(t *testing.T) {
	var got http.Header
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "/api/v1/products/p1", r.URL.Path)
		w.Write([]byte(`{}`))
	}), Options{Tokens: staticTokens("tok-123")})

	var out domain.Product
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/products/p1", nil, nil, &out))

	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", got.Get("Cache-Control"))
	assert.Equal(t, "no-cache", got.Get("Pragma"))
	assert.Equal(t, "0", got.Get("Expires"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var got http.Header
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}), Options{Tokens: staticTokens("")})

	require.NoError(t, c.do(context.Background(), http.MethodGet, "/products", nil, nil, nil))
	assert.Empty(t, got.Get("Authorization"))
}

func TestClient_UnauthorizedHook(t *testing.T) {
	fired := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Token expired"})
	}), Options{OnUnauthorized: func() { fired++ }})

	err := c.do(context.Background(), http.MethodGet, "/orders", nil, nil, nil)

	require.Error(t, err)
	assert.Equal(t, 1, fired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Token expired", apiErr.Message)
}

func TestClient_ErrorEnvelopes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error": "Insufficient stock"}`, "Insufficient stock"},
		{"message field", `{"message": "Product not found"}`, "Product not found"},
		{"json string", `"plain string error"`, "plain string error"},
		{"plain text", `backend exploded`, "backend exploded"},
		{"unknown json", `{"detail": "nope"}`, "Conflict"},
		{"empty", ``, "Conflict"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(tc.body))
			}), Options{})

			err := c.do(context.Background(), http.MethodPost, "/orders", nil, nil, nil)
			var apiErr *domain.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestClient_NotFoundMapsToErrNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Product not found"}`))
	}), Options{})

	err := c.do(context.Background(), http.MethodGet, "/products/nope", nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_EmptySuccessBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), Options{})

	var out domain.Product
	assert.NoError(t, c.do(context.Background(), http.MethodDelete, "/products/p1", nil, nil, &out))
}

func TestListQuery(t *testing.T) {
	v := listQuery(ports.ProductQuery{
		Search:    "widget",
		Status:    "LOW_STOCK",
		SortField: "price",
		SortDir:   ports.SortDesc,
		Page:      2,
		PageSize:  10,
	})

	// one-based UI page becomes zero-based on the wire
	assert.Equal(t, "1", v.Get("page"))
	assert.Equal(t, "10", v.Get("size"))
	assert.Equal(t, "price,DESC", v.Get("sort"))
	assert.Equal(t, "widget", v.Get("search"))
	assert.Equal(t, "LOW_STOCK", v.Get("status"))
}

func TestListQuery_OmitsEmptyFilters(t *testing.T) {
	v := listQuery(ports.ProductQuery{Page: 1, PageSize: 10, SortField: "name", SortDir: ports.SortAsc})

	assert.Equal(t, "0", v.Get("page"))
	assert.Equal(t, "name,ASC", v.Get("sort"))
	_, hasSearch := v["search"]
	_, hasStatus := v["status"]
	_, hasCategory := v["categoryId"]
	assert.False(t, hasSearch)
	assert.False(t, hasStatus)
	assert.False(t, hasCategory)
}

func TestProducts_List(t *testing.T) {
	var gotQuery url.Values
	srv := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"content":       []map[string]any{{"id": "p1", "sku": "PRD-001", "name": "Widget", "price": 19.99, "quantity": 5, "status": "ACTIVE"}},
			"totalPages":    3,
			"totalElements": 25,
			"size":          10,
			"number":        0,
		})
	})
	c := newTestClient(t, srv, Options{})

	page, err := NewProducts(c).List(context.Background(), ports.ProductQuery{
		Status: "ACTIVE", SortField: "name", SortDir: ports.SortAsc, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "0", gotQuery.Get("page"))
	assert.Equal(t, "ACTIVE", gotQuery.Get("status"))
	require.Len(t, page.Content, 1)
	assert.Equal(t, "PRD-001", page.Content[0].SKU)
	assert.Equal(t, "19.99", page.Content[0].Price.String())
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.TotalElements)
}

func TestProducts_UpdateStatusAsQueryParam(t *testing.T) {
	srv := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/products/p1/status", r.URL.Path)
		assert.Equal(t, "OUT_OF_STOCK", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(map[string]any{"id": "p1", "status": "OUT_OF_STOCK"})
	})
	c := newTestClient(t, srv, Options{})

	p, err := NewProducts(c).UpdateStatus(context.Background(), "p1", domain.ProductOutOfStock)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductOutOfStock, p.Status)
}

func TestAuth_Login(t *testing.T) {
	srv := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "pw", body["password"])
		// flat response, no nested user object
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1", "username": "alice", "role": "ADMIN"})
	})
	c := newTestClient(t, srv, Options{})

	res, err := NewAuth(c).Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "ADMIN", res.Role)
}
