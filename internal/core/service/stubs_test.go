package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
)

var testLog = zerolog.Nop()

// recordNotifier captures notifications; list fetches complete on other
// goroutines, so access is locked.
type recordNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordNotifier) lastSuccess() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.successes) == 0 {
		return ""
	}
	return n.successes[len(n.successes)-1]
}

func (n *recordNotifier) lastError() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errors) == 0 {
		return ""
	}
	return n.errors[len(n.errors)-1]
}

type memStore struct {
	creds   *ports.Credentials
	loadErr error
	saveErr error
	clears  int
}

func (s *memStore) Load() (*ports.Credentials, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.creds, nil
}

func (s *memStore) Save(creds *ports.Credentials) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.creds = creds
	return nil
}

func (s *memStore) Clear() error {
	s.clears++
	s.creds = nil
	return nil
}

type stubAuth struct {
	loginFn  func(username, password string) (*ports.LoginResult, error)
	logoutFn func() error
	logouts  int
}

func (a *stubAuth) Login(_ context.Context, username, password string) (*ports.LoginResult, error) {
	return a.loginFn(username, password)
}

func (a *stubAuth) Logout(context.Context) error {
	a.logouts++
	if a.logoutFn != nil {
		return a.logoutFn()
	}
	return nil
}

func (a *stubAuth) CurrentUser(context.Context) (*domain.User, error) {
	return nil, domain.ErrUnauthorized
}

type stubProducts struct {
	createFn func(in ports.CreateProductInput) (*domain.Product, error)
	updateFn func(id string, in ports.UpdateProductInput) (*domain.Product, error)
	deleteFn func(id string) error
	creates  int
	updates  int
	deletes  int
}

func (p *stubProducts) List(context.Context, ports.ProductQuery) (*domain.Page[domain.Product], error) {
	return &domain.Page[domain.Product]{TotalPages: 1}, nil
}

func (p *stubProducts) Get(context.Context, string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (p *stubProducts) Create(_ context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	p.creates++
	if p.createFn != nil {
		return p.createFn(in)
	}
	return &domain.Product{}, nil
}

func (p *stubProducts) Update(_ context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	p.updates++
	if p.updateFn != nil {
		return p.updateFn(id, in)
	}
	return &domain.Product{}, nil
}

func (p *stubProducts) Delete(_ context.Context, id string) error {
	p.deletes++
	if p.deleteFn != nil {
		return p.deleteFn(id)
	}
	return nil
}

func (p *stubProducts) UpdateStatus(context.Context, string, domain.ProductStatus) (*domain.Product, error) {
	return &domain.Product{}, nil
}

type stubOrders struct {
	listAllFn  func() ([]domain.Order, error)
	listMineFn func() ([]domain.Order, error)
	createFn   func(productID string, quantity int) (*domain.Order, error)
	approveFn  func(id string) (*domain.Order, error)
	creates    int
	approves   int
	rejects    int
	cancels    int
}

func (o *stubOrders) ListAll(context.Context) ([]domain.Order, error) {
	if o.listAllFn != nil {
		return o.listAllFn()
	}
	return nil, nil
}

func (o *stubOrders) ListMine(context.Context) ([]domain.Order, error) {
	if o.listMineFn != nil {
		return o.listMineFn()
	}
	return nil, nil
}

func (o *stubOrders) Get(context.Context, string) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (o *stubOrders) Create(_ context.Context, productID string, quantity int) (*domain.Order, error) {
	o.creates++
	if o.createFn != nil {
		return o.createFn(productID, quantity)
	}
	return &domain.Order{Status: domain.OrderPending}, nil
}

func (o *stubOrders) Approve(_ context.Context, id string) (*domain.Order, error) {
	o.approves++
	if o.approveFn != nil {
		return o.approveFn(id)
	}
	return &domain.Order{Status: domain.OrderApproved}, nil
}

func (o *stubOrders) Reject(_ context.Context, id string) (*domain.Order, error) {
	o.rejects++
	return &domain.Order{Status: domain.OrderRejected}, nil
}

func (o *stubOrders) Cancel(_ context.Context, id string) (*domain.Order, error) {
	o.cancels++
	return &domain.Order{Status: domain.OrderCancelled}, nil
}

type stubInventory struct {
	listMineFn func() ([]domain.InventoryItem, error)
	consumeFn  func(id string, quantity int) (*domain.InventoryItem, error)
	consumes   int
	deletes    int
	creates    int
	updates    int
}

func (i *stubInventory) ListMine(context.Context) ([]domain.InventoryItem, error) {
	if i.listMineFn != nil {
		return i.listMineFn()
	}
	return nil, nil
}

func (i *stubInventory) Get(context.Context, string) (*domain.InventoryItem, error) {
	return nil, domain.ErrNotFound
}

func (i *stubInventory) Create(_ context.Context, in ports.InventoryItemInput) (*domain.InventoryItem, error) {
	i.creates++
	return &domain.InventoryItem{Name: in.Name, Quantity: in.Quantity}, nil
}

func (i *stubInventory) Update(_ context.Context, id string, in ports.InventoryItemInput) (*domain.InventoryItem, error) {
	i.updates++
	return &domain.InventoryItem{ID: id, Name: in.Name, Quantity: in.Quantity}, nil
}

func (i *stubInventory) Delete(context.Context, string) error {
	i.deletes++
	return nil
}

func (i *stubInventory) Consume(_ context.Context, id string, quantity int) (*domain.InventoryItem, error) {
	i.consumes++
	if i.consumeFn != nil {
		return i.consumeFn(id, quantity)
	}
	return &domain.InventoryItem{ID: id}, nil
}

type stubUsers struct {
	setEnabledFn func(id string, enabled bool) (*domain.User, error)
	createFn     func(in ports.CreateUserInput) (*domain.User, error)
	creates      int
	updates      int
}

func (u *stubUsers) List(context.Context) ([]domain.User, error) { return nil, nil }

func (u *stubUsers) Get(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (u *stubUsers) Create(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
	u.creates++
	if u.createFn != nil {
		return u.createFn(in)
	}
	return &domain.User{Username: in.Username, Role: in.Role, Enabled: true}, nil
}

func (u *stubUsers) Update(_ context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	u.updates++
	return &domain.User{ID: id, Username: in.Username, Role: in.Role}, nil
}

func (u *stubUsers) Enable(ctx context.Context, id string) (*domain.User, error) {
	return u.SetEnabled(ctx, id, true)
}

func (u *stubUsers) Disable(ctx context.Context, id string) (*domain.User, error) {
	return u.SetEnabled(ctx, id, false)
}

func (u *stubUsers) SetEnabled(_ context.Context, id string, enabled bool) (*domain.User, error) {
	if u.setEnabledFn != nil {
		return u.setEnabledFn(id, enabled)
	}
	return &domain.User{ID: id, Enabled: enabled}, nil
}

type stubDashboard struct {
	metrics  domain.DashboardMetrics
	byStatus []domain.StatusCount
	activity []domain.UserActivity
	recent   []domain.ActivityLog
}

func (d *stubDashboard) Metrics(context.Context) (*domain.DashboardMetrics, error) {
	m := d.metrics
	return &m, nil
}

func (d *stubDashboard) ProductsByStatus(context.Context) ([]domain.StatusCount, error) {
	return d.byStatus, nil
}

func (d *stubDashboard) ActivityByUser(_ context.Context, days int) ([]domain.UserActivity, error) {
	return d.activity, nil
}

func (d *stubDashboard) RecentActivity(_ context.Context, limit int) ([]domain.ActivityLog, error) {
	if limit < len(d.recent) {
		return d.recent[:limit], nil
	}
	return d.recent, nil
}

func (d *stubDashboard) ProductsAddedToday(context.Context) (int, error) {
	return d.metrics.ProductsAddedToday, nil
}

func (d *stubDashboard) Products(context.Context, ports.ProductQuery) (*domain.ProductConnection, error) {
	return &domain.ProductConnection{}, nil
}
