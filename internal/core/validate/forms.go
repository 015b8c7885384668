package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ProductForm carries the raw dialog state for a product create/edit.
// Price and Quantity stay textual until validation, exactly as the input
// fields hold them, so numeric errors can be reported per-field.
type ProductForm struct {
	SKU         string
	Name        string
	Description string
	Price       string
	Quantity    string
	Status      string
	CategoryID  string
}

// productText covers the constraints validator can express with tags; the
// numeric fields are handled separately below.
type productText struct {
	SKU         string `validate:"required"`
	Name        string `validate:"required,min=3,max=200"`
	Description string `validate:"omitempty,max=1000"`
}

// Product validates a product form. When edit is true the SKU format check
// is skipped: the field is immutable and whatever the server holds stands.
func Product(f ProductForm, edit bool) FieldErrors {
	fe := FieldErrors{}

	err := engine.Struct(productText{SKU: f.SKU, Name: f.Name, Description: f.Description})
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, e := range ve {
			field, msg := productMessage(e)
			fe[field] = msg
		}
	}

	if _, ok := fe["sku"]; !ok && !edit && !skuRe.MatchString(f.SKU) {
		fe["sku"] = "SKU must match format: PRD-XXX"
	}

	if price, ok := ParsePrice(f.Price); !ok {
		fe["price"] = "Price is required"
	} else if !price.IsPositive() {
		fe["price"] = "Price must be greater than 0"
	}

	if qty, ok := ParseQuantity(f.Quantity); !ok {
		fe["quantity"] = "Quantity is required"
	} else if qty < 0 {
		fe["quantity"] = "Quantity must be 0 or greater"
	}

	return fe
}

func productMessage(e validator.FieldError) (field, msg string) {
	switch e.StructField() {
	case "SKU":
		return "sku", "SKU is required"
	case "Name":
		if e.Tag() == "required" {
			return "name", "Product name is required"
		}
		return "name", "Name must be 3-200 characters"
	case "Description":
		return "description", "Description must be less than 1000 characters"
	}
	return e.StructField(), e.Error()
}

// CategoryForm carries the raw dialog state for a category create/edit.
type CategoryForm struct {
	Name        string
	Description string
}

type categoryText struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"omitempty,max=500"`
}

// Category validates a category form.
func Category(f CategoryForm) FieldErrors {
	fe := FieldErrors{}
	err := engine.Struct(categoryText{Name: f.Name, Description: f.Description})
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, e := range ve {
			switch e.StructField() {
			case "Name":
				if e.Tag() == "required" {
					fe["name"] = "Category name is required"
				} else {
					fe["name"] = "Name must be at most 100 characters"
				}
			case "Description":
				fe["description"] = "Description must be at most 500 characters"
			}
		}
	}
	return fe
}

// UserForm carries the raw dialog state for a user create/edit. Password is
// only mandatory on create; an empty password on edit means "keep current".
type UserForm struct {
	Username string
	Email    string
	Password string
	Role     string
}

type userText struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Role     string `validate:"required,oneof=ADMIN USER"`
}

// User validates a user form.
func User(f UserForm, edit bool) FieldErrors {
	fe := FieldErrors{}
	err := engine.Struct(userText{Username: f.Username, Email: f.Email, Role: f.Role})
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, e := range ve {
			switch e.StructField() {
			case "Username":
				fe["username"] = "Username is required"
			case "Email":
				if e.Tag() == "required" {
					fe["email"] = "Email is required"
				} else {
					fe["email"] = "Email must be a valid address"
				}
			case "Role":
				fe["role"] = "Role must be ADMIN or USER"
			}
		}
	}
	if !edit && f.Password == "" {
		fe["password"] = "Password is required for new users"
	}
	return fe
}

// InventoryForm carries the raw dialog state for a manual inventory item.
type InventoryForm struct {
	Name     string
	Quantity string
	Notes    string
}

// Inventory validates an inventory item form.
func Inventory(f InventoryForm) FieldErrors {
	fe := FieldErrors{}
	if f.Name == "" {
		fe["name"] = "Name is required"
	}
	if qty, ok := ParseQuantity(f.Quantity); !ok {
		fe["quantity"] = "Quantity is required"
	} else if qty < 0 {
		fe["quantity"] = "Quantity must be 0 or greater"
	}
	return fe
}

// BuyQuantity checks a buy submission against the stock displayed at fetch
// time. It returns the parsed quantity or the message to show; this can
// still race with concurrent mutations, and the backend re-validates.
func BuyQuantity(input string, available int) (int, string) {
	qty, ok := ParseQuantity(input)
	if !ok || qty <= 0 {
		return 0, "Please enter a valid quantity"
	}
	if qty > available {
		return 0, fmt.Sprintf("Only %d items available", available)
	}
	return qty, ""
}

// ConsumeQuantity checks a consume submission against the item's current
// quantity.
func ConsumeQuantity(input string, available int) (int, string) {
	qty, ok := ParseQuantity(input)
	if !ok || qty <= 0 {
		return 0, "Please enter a valid quantity"
	}
	if qty > available {
		return 0, "Cannot consume more than available quantity"
	}
	return qty, ""
}
