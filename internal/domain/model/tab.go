package model

import "encoding/json"

type TabStatus string

const (
	StatusDraft     TabStatus = "draft"
	StatusConfirmed TabStatus = "confirmed"
	StatusPaid      TabStatus = "paid"
)

// WalkingCustomer is the default customer attached to a fresh draft tab.
var WalkingCustomer = Customer{ID: "walking", Name: "Walking Customer"}

type Customer struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type LineItem struct {
	ItemCode string  `json:"item_code" validate:"required"`
	ItemName string  `json:"item_name"`
	Qty      float64 `json:"qty" validate:"gt=0"`
	Rate     float64 `json:"rate" validate:"gte=0"`
	Amount   float64 `json:"amount"`
}

// RelatedData is the bundle of panel payloads fetched alongside an order at
// open time. Payloads are opaque pass-through from the backend.
type RelatedData map[PanelID]json.RawMessage

// Tab is one open order/cart context. OrderID is empty until the draft is
// first saved to the backend.
type Tab struct {
	ID          string      `json:"id" validate:"required"`
	OrderID     string      `json:"order_id"`
	DisplayName string      `json:"display_name" validate:"required"`
	Status      TabStatus   `json:"status" validate:"oneof=draft confirmed paid"`
	Customer    Customer    `json:"customer"`
	Items       []LineItem  `json:"items"`
	Dirty       bool        `json:"dirty"`
	RelatedData RelatedData `json:"related_data,omitempty"`
}

// Linked reports whether the tab is backed by a saved order.
func (t *Tab) Linked() bool {
	return t.OrderID != ""
}
