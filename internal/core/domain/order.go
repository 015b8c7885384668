package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order. Transitions are
// performed entirely server-side; the client only requests one and reloads.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderApproved  OrderStatus = "APPROVED"
	OrderRejected  OrderStatus = "REJECTED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// validOrderTransitions mirrors the backend's single-step state machine so
// the UI can hide actions that would certainly be rejected.
var validOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderApproved, OrderRejected, OrderCancelled},
}

// CanTransitionTo reports whether requesting a transition to next makes sense
// from the client's point of view. The backend re-validates regardless.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Final reports whether no further transition can be requested.
func (s OrderStatus) Final() bool {
	return len(validOrderTransitions[s]) == 0
}

// OrderUser is the denormalized requester snapshot carried for display.
type OrderUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Order mirrors a purchase request. Product and User are display snapshots;
// the authoritative record lives server-side.
type Order struct {
	ID        string      `json:"id"`
	User      *OrderUser  `json:"user,omitempty"`
	Product   *Product    `json:"product,omitempty"`
	Quantity  int         `json:"quantity"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt,omitzero"`
	UpdatedAt time.Time   `json:"updatedAt,omitzero"`
}

// Total is the display amount: snapshot price times ordered quantity.
// Zero when the product snapshot is missing.
func (o Order) Total() decimal.Decimal {
	if o.Product == nil {
		return decimal.Zero
	}
	return o.Product.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// Username returns the requester name or "Unknown" when the snapshot is gone.
func (o Order) Username() string {
	if o.User == nil {
		return "Unknown"
	}
	return o.User.Username
}

// ProductName returns the product name or "Unknown" when the snapshot is gone.
func (o Order) ProductName() string {
	if o.Product == nil {
		return "Unknown"
	}
	return o.Product.Name
}
