package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

// searchDebounce is how long typing must pause before a search refetch.
const searchDebounce = 300 * time.Millisecond

// Fetch loads one page of a resource list for the given query.
type Fetch[T any] func(ctx context.Context, q ports.ProductQuery) (*domain.Page[T], error)

// ListController owns the query state of one list screen and refetches
// whenever it changes. Search is debounced; every other change refetches
// immediately. A fetch failure keeps the previous rows and raises a
// notification, so the screen stays usable.
//
// All fetches run against a context created at construction; Close cancels
// it and every completion path re-checks it before touching state, so a
// closed controller can never be mutated by a late response.
type ListController[T any] struct {
	fetch    Fetch[T]
	notify   Notifier
	onChange func()
	debounce time.Duration
	log      zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	q          ports.ProductQuery
	timer      *time.Timer
	gen        uint64
	items      []T
	totalPages int
	totalCount int
	loading    bool
	err        error
}

// ListOption tweaks a controller at construction time.
type ListOption[T any] func(*ListController[T])

// WithQuery sets the initial query state.
func WithQuery[T any](q ports.ProductQuery) ListOption[T] {
	return func(c *ListController[T]) { c.q = q }
}

// WithDebounce overrides the search debounce interval. Tests use this.
func WithDebounce[T any](d time.Duration) ListOption[T] {
	return func(c *ListController[T]) { c.debounce = d }
}

// WithOnChange registers a callback fired after every state change. It runs
// outside the controller's lock and may read the controller freely.
func WithOnChange[T any](fn func()) ListOption[T] {
	return func(c *ListController[T]) { c.onChange = fn }
}

// NewList builds a controller. Call Refresh once after construction for the
// initial load, and Close when the screen goes away.
func NewList[T any](fetch Fetch[T], notify Notifier, log zerolog.Logger, opts ...ListOption[T]) *ListController[T] {
	ctx, cancel := context.WithCancel(context.Background())
	c := &ListController[T]{
		fetch:    fetch,
		notify:   notify,
		debounce: searchDebounce,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		q: ports.ProductQuery{
			Page:      1,
			PageSize:  10,
			SortField: "name",
			SortDir:   ports.SortAsc,
		},
		totalPages: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notify == nil {
		c.notify = NopNotifier{}
	}
	if c.q.Page < 1 {
		c.q.Page = 1
	}
	return c
}

// Refresh refetches the current page immediately.
func (c *ListController[T]) Refresh() {
	c.refetch()
}

// SetSearch updates the search text and arms the debounce timer. The fetch
// fires once, with the final text, after typing pauses; the page resets to
// 1 just before it.
func (c *ListController[T]) SetSearch(text string) {
	c.mu.Lock()
	c.q.Search = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		if c.ctx.Err() != nil {
			c.mu.Unlock()
			return
		}
		c.q.Page = 1
		c.mu.Unlock()
		c.refetch()
	})
	c.mu.Unlock()
}

// SetStatusFilter changes the status filter, resets to page 1 and refetches.
func (c *ListController[T]) SetStatusFilter(status string) {
	c.mu.Lock()
	c.q.Status = status
	c.q.Page = 1
	c.mu.Unlock()
	c.refetch()
}

// SetCategoryFilter changes the category filter, resets to page 1 and
// refetches.
func (c *ListController[T]) SetCategoryFilter(categoryID string) {
	c.mu.Lock()
	c.q.CategoryID = categoryID
	c.q.Page = 1
	c.mu.Unlock()
	c.refetch()
}

// SetSort changes the sort key and direction and refetches, keeping the
// current page.
func (c *ListController[T]) SetSort(field string, dir ports.SortDirection) {
	c.mu.Lock()
	c.q.SortField = field
	c.q.SortDir = dir
	c.mu.Unlock()
	c.refetch()
}

// SetPage jumps to a page within [1, totalPages] and refetches.
func (c *ListController[T]) SetPage(page int) {
	c.mu.Lock()
	if page < 1 || (c.totalPages > 0 && page > c.totalPages) {
		c.mu.Unlock()
		return
	}
	c.q.Page = page
	c.mu.Unlock()
	c.refetch()
}

// NextPage advances one page when possible.
func (c *ListController[T]) NextPage() {
	c.SetPage(c.Query().Page + 1)
}

// PrevPage goes back one page when possible.
func (c *ListController[T]) PrevPage() {
	c.SetPage(c.Query().Page - 1)
}

// Close cancels the controller's lifetime: pending completions are dropped
// and a pending debounce never fires.
func (c *ListController[T]) Close() {
	c.cancel()
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.mu.Unlock()
}

func (c *ListController[T]) refetch() {
	c.mu.Lock()
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	q := c.q
	c.loading = true
	c.mu.Unlock()
	c.changed()

	go func() {
		page, err := c.fetch(c.ctx, q)

		c.mu.Lock()
		if c.ctx.Err() != nil || gen != c.gen {
			// Controller closed or this fetch was superseded.
			c.mu.Unlock()
			return
		}
		c.loading = false
		if err != nil {
			c.err = err
			c.mu.Unlock()
			c.log.Warn().Err(err).Msg("list fetch failed")
			c.notify.Error(domain.UserMessage(err, "Failed to load data"))
			c.changed()
			return
		}
		c.err = nil
		c.items = page.Content
		c.totalPages = page.TotalPages
		if c.totalPages < 1 {
			c.totalPages = 1
		}
		c.totalCount = page.TotalElements
		c.mu.Unlock()
		c.changed()
	}()
}

func (c *ListController[T]) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// Items returns the current rows. After a failed fetch these are the rows
// from the last successful one.
func (c *ListController[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Loading reports whether a fetch is in flight; screens render placeholder
// rows while true.
func (c *ListController[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last fetch error, nil after a successful fetch.
func (c *ListController[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Query returns a snapshot of the current query state.
func (c *ListController[T]) Query() ports.ProductQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q
}

// TotalPages returns the page count reported by the last successful fetch.
func (c *ListController[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// TotalCount returns the element count reported by the last successful fetch.
func (c *ListController[T]) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCount
}

// CanPrev reports whether a previous page exists.
func (c *ListController[T]) CanPrev() bool {
	return c.Query().Page > 1
}

// CanNext reports whether a next page exists.
func (c *ListController[T]) CanNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Page < c.totalPages
}
