package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
	"github.com/postqode/nexus-console/internal/core/validate"
)

// Dialog flows share one shape: local form state seeded from an empty
// default (create) or the entity being edited, re-seeded when the entity
// identity changes; Submit validates locally, issues exactly one API call,
// fires the success callback on success and keeps the dialog open on
// failure with the server's message surfaced verbatim. A busy flag blocks
// duplicate submission while a call is in flight.

// ProductDialog backs the product create/edit form.
type ProductDialog struct {
	api       ports.ProductAPI
	notify    Notifier
	onSuccess func()
	log       zerolog.Logger

	mu      sync.Mutex
	product *domain.Product
	form    validate.ProductForm
	errs    validate.FieldErrors
	busy    bool
}

func NewProductDialog(api ports.ProductAPI, notify Notifier, onSuccess func(), log zerolog.Logger) *ProductDialog {
	d := &ProductDialog{api: api, notify: notify, onSuccess: onSuccess, log: log}
	d.seed(nil)
	return d
}

// SetProduct switches the dialog between create (nil) and edit mode,
// re-seeding the form only when the entity identity actually changed.
func (d *ProductDialog) SetProduct(p *domain.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p == nil && d.product == nil {
		return
	}
	if p != nil && d.product != nil && p.ID == d.product.ID {
		return
	}
	d.seedLocked(p)
}

func (d *ProductDialog) seed(p *domain.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seedLocked(p)
}

func (d *ProductDialog) seedLocked(p *domain.Product) {
	d.product = p
	d.errs = nil
	if p == nil {
		d.form = validate.ProductForm{
			SKU:    nextSKU(),
			Status: string(domain.ProductActive),
		}
		return
	}
	d.form = validate.ProductForm{
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Quantity:    strconv.Itoa(p.Quantity),
		Status:      string(p.Status),
		CategoryID:  p.CategoryID,
	}
}

// nextSKU proposes a fresh SKU for the create form. The user can overtype
// it; only the format is enforced.
func nextSKU() string {
	return fmt.Sprintf("PRD-%03d", rand.IntN(1000))
}

// IsEdit reports whether the dialog edits an existing product; the SKU
// field is disabled in that mode.
func (d *ProductDialog) IsEdit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.product != nil
}

// Form returns the current form state.
func (d *ProductDialog) Form() validate.ProductForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

// SetForm replaces the form state. On edit the SKU cannot be changed and
// keeps its seeded value.
func (d *ProductDialog) SetForm(f validate.ProductForm) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.product != nil {
		f.SKU = d.product.SKU
	}
	d.form = f
}

// FieldErrors returns the inline messages from the last Submit.
func (d *ProductDialog) FieldErrors() validate.FieldErrors {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errs
}

// Busy reports whether a submit is in flight; the submit button is disabled
// while true.
func (d *ProductDialog) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// Submit validates and performs the create or update. Validation failures
// never reach the network; API failures keep the dialog open.
func (d *ProductDialog) Submit(ctx context.Context) error {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil
	}
	form := d.form
	product := d.product
	edit := product != nil

	if errs := validate.Product(form, edit); !errs.Ok() {
		d.errs = errs
		d.mu.Unlock()
		return errs
	}
	d.errs = nil
	d.busy = true
	d.mu.Unlock()

	price, _ := validate.ParsePrice(form.Price)
	quantity, _ := validate.ParseQuantity(form.Quantity)

	var err error
	if edit {
		_, err = d.api.Update(ctx, product.ID, ports.UpdateProductInput{
			Name:        form.Name,
			Description: form.Description,
			Price:       price,
			Quantity:    quantity,
			CategoryID:  form.CategoryID,
		})
	} else {
		_, err = d.api.Create(ctx, ports.CreateProductInput{
			SKU:         form.SKU,
			Name:        form.Name,
			Description: form.Description,
			Price:       price,
			Quantity:    quantity,
			Status:      form.Status,
			CategoryID:  form.CategoryID,
		})
	}

	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()

	if err != nil {
		d.log.Debug().Err(err).Bool("edit", edit).Msg("product save rejected")
		d.notify.Error(domain.UserMessage(err, "Failed to save product"))
		return err
	}
	if edit {
		d.notify.Success("Product updated successfully")
	} else {
		d.notify.Success("Product created successfully")
	}
	if d.onSuccess != nil {
		d.onSuccess()
	}
	return nil
}

// CategoryDialog backs the category create/edit form.
type CategoryDialog struct {
	api       ports.CategoryAPI
	notify    Notifier
	onSuccess func()
	log       zerolog.Logger

	mu       sync.Mutex
	category *domain.Category
	form     validate.CategoryForm
	errs     validate.FieldErrors
	busy     bool
}

func NewCategoryDialog(api ports.CategoryAPI, notify Notifier, onSuccess func(), log zerolog.Logger) *CategoryDialog {
	return &CategoryDialog{api: api, notify: notify, onSuccess: onSuccess, log: log}
}

// SetCategory switches between create (nil) and edit mode.
func (d *CategoryDialog) SetCategory(c *domain.Category) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c != nil && d.category != nil && c.ID == d.category.ID {
		return
	}
	d.category = c
	d.errs = nil
	if c == nil {
		d.form = validate.CategoryForm{}
		return
	}
	d.form = validate.CategoryForm{Name: c.Name, Description: c.Description}
}

func (d *CategoryDialog) Form() validate.CategoryForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

func (d *CategoryDialog) SetForm(f validate.CategoryForm) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form = f
}

func (d *CategoryDialog) FieldErrors() validate.FieldErrors {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errs
}

func (d *CategoryDialog) Submit(ctx context.Context) error {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil
	}
	form := d.form
	category := d.category

	if errs := validate.Category(form); !errs.Ok() {
		d.errs = errs
		d.mu.Unlock()
		return errs
	}
	d.errs = nil
	d.busy = true
	d.mu.Unlock()

	in := ports.CategoryInput{Name: form.Name, Description: form.Description}
	var err error
	if category != nil {
		_, err = d.api.Update(ctx, category.ID, in)
	} else {
		_, err = d.api.Create(ctx, in)
	}

	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()

	if err != nil {
		d.notify.Error(domain.UserMessage(err, "Failed to save category"))
		return err
	}
	d.notify.Success("Category saved successfully")
	if d.onSuccess != nil {
		d.onSuccess()
	}
	return nil
}

// UserDialog backs the user create/edit form. Password is required on
// create; empty on edit means "keep current".
type UserDialog struct {
	api       ports.UserAPI
	notify    Notifier
	onSuccess func()
	log       zerolog.Logger

	mu   sync.Mutex
	user *domain.User
	form validate.UserForm
	errs validate.FieldErrors
	busy bool
}

func NewUserDialog(api ports.UserAPI, notify Notifier, onSuccess func(), log zerolog.Logger) *UserDialog {
	return &UserDialog{
		api: api, notify: notify, onSuccess: onSuccess, log: log,
		form: validate.UserForm{Role: domain.RoleUser},
	}
}

func (d *UserDialog) SetUser(u *domain.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if u != nil && d.user != nil && u.ID == d.user.ID {
		return
	}
	d.user = u
	d.errs = nil
	if u == nil {
		d.form = validate.UserForm{Role: domain.RoleUser}
		return
	}
	d.form = validate.UserForm{Username: u.Username, Email: u.Email, Role: u.Role}
}

func (d *UserDialog) Form() validate.UserForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

func (d *UserDialog) SetForm(f validate.UserForm) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form = f
}

func (d *UserDialog) FieldErrors() validate.FieldErrors {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errs
}

func (d *UserDialog) Submit(ctx context.Context) error {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil
	}
	form := d.form
	user := d.user
	edit := user != nil

	if errs := validate.User(form, edit); !errs.Ok() {
		d.errs = errs
		d.mu.Unlock()
		return errs
	}
	d.errs = nil
	d.busy = true
	d.mu.Unlock()

	var err error
	if edit {
		_, err = d.api.Update(ctx, user.ID, ports.UpdateUserInput{
			Username: form.Username,
			Password: form.Password,
			Email:    form.Email,
			Role:     form.Role,
		})
	} else {
		_, err = d.api.Create(ctx, ports.CreateUserInput{
			Username: form.Username,
			Password: form.Password,
			Email:    form.Email,
			Role:     form.Role,
		})
	}

	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()

	if err != nil {
		d.notify.Error(domain.UserMessage(err, "Failed to save user"))
		return err
	}
	d.notify.Success("User saved successfully")
	if d.onSuccess != nil {
		d.onSuccess()
	}
	return nil
}

// InventoryDialog backs the manual inventory item form. Items linked to a
// catalog product keep their product name.
type InventoryDialog struct {
	api       ports.InventoryAPI
	notify    Notifier
	onSuccess func()
	log       zerolog.Logger

	mu   sync.Mutex
	item *domain.InventoryItem
	form validate.InventoryForm
	errs validate.FieldErrors
	busy bool
}

func NewInventoryDialog(api ports.InventoryAPI, notify Notifier, onSuccess func(), log zerolog.Logger) *InventoryDialog {
	return &InventoryDialog{api: api, notify: notify, onSuccess: onSuccess, log: log}
}

func (d *InventoryDialog) SetItem(i *domain.InventoryItem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i != nil && d.item != nil && i.ID == d.item.ID {
		return
	}
	d.item = i
	d.errs = nil
	if i == nil {
		d.form = validate.InventoryForm{}
		return
	}
	d.form = validate.InventoryForm{Name: i.Name, Quantity: strconv.Itoa(i.Quantity), Notes: i.Notes}
}

func (d *InventoryDialog) Form() validate.InventoryForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

// SetForm replaces the form state. Product-linked items keep their name.
func (d *InventoryDialog) SetForm(f validate.InventoryForm) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.item != nil && d.item.Linked() {
		f.Name = d.item.Name
	}
	d.form = f
}

func (d *InventoryDialog) FieldErrors() validate.FieldErrors {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errs
}

func (d *InventoryDialog) Submit(ctx context.Context) error {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil
	}
	form := d.form
	item := d.item

	if errs := validate.Inventory(form); !errs.Ok() {
		d.errs = errs
		d.mu.Unlock()
		return errs
	}
	d.errs = nil
	d.busy = true
	d.mu.Unlock()

	quantity, _ := validate.ParseQuantity(form.Quantity)
	in := ports.InventoryItemInput{Name: form.Name, Quantity: quantity, Notes: form.Notes}

	var err error
	if item != nil {
		_, err = d.api.Update(ctx, item.ID, in)
	} else {
		_, err = d.api.Create(ctx, in)
	}

	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()

	if err != nil {
		d.notify.Error(domain.UserMessage(err, "Failed to save item"))
		return err
	}
	d.notify.Success("Item saved successfully")
	if d.onSuccess != nil {
		d.onSuccess()
	}
	return nil
}
