package domain

// InventorySource tells how an item entered a user's inventory.
type InventorySource string

const (
	// SourcePurchased marks items created server-side when an order is
	// approved. They can only leave the inventory through consumption.
	SourcePurchased InventorySource = "PURCHASED"
	// SourceManual marks items the user added by hand.
	SourceManual InventorySource = "MANUAL"
)

// InventoryItem mirrors one entry of a user's personal inventory.
type InventoryItem struct {
	ID       string          `json:"id"`
	UserID   string          `json:"userId,omitempty"`
	Product  *Product        `json:"product,omitempty"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Source   InventorySource `json:"source"`
	Notes    string          `json:"notes,omitempty"`
}

// Deletable reports whether the client may offer a delete action.
// PURCHASED items are not independently deletable.
func (i InventoryItem) Deletable() bool {
	return i.Source == SourceManual
}

// Linked reports whether the item is tied to a catalog product, in which
// case its name tracks the product and cannot be edited.
func (i InventoryItem) Linked() bool {
	return i.Product != nil
}
