package models

import (
	"fmt"
	"time"
)

// OrderStatus is serialized as an integer, matching the backend contract.
type OrderStatus int

const (
	OrderStatusOrdered OrderStatus = iota
	OrderStatusPreparing
	OrderStatusReady
	OrderStatusDelivering
	OrderStatusDelivered
	OrderStatusCancelled
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusOrdered:    "ORDERED",
	OrderStatusPreparing:  "PREPARING",
	OrderStatusReady:      "READY",
	OrderStatusDelivering: "DELIVERING",
	OrderStatusDelivered:  "DELIVERED",
	OrderStatusCancelled:  "CANCELLED",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

// IsTerminal reports whether no further transition may be offered.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// orderStatusTransitions lists, per current status, the next statuses staff
// may select. READY and DELIVERING include the one-step back-move so staff
// can pull an item back when it was advanced too early.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusOrdered:    {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusPreparing, OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled},
}

// NextStatuses returns the ordered set of selectable next statuses for the
// given current status. Terminal statuses return an empty slice.
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := orderStatusTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether moving to target is offered from s.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, n := range orderStatusTransitions[s] {
		if n == target {
			return true
		}
	}
	return false
}

// Chip is the display rendering of a status. Color names follow the UI kit
// palette and must stay stable for parity with the tablet shells.
type Chip struct {
	Label    string `json:"label"`
	Color    string `json:"color"`
	Outlined bool   `json:"outlined"`
}

var orderStatusChips = map[OrderStatus]Chip{
	OrderStatusOrdered:    {Label: "ORDERED", Color: "info"},
	OrderStatusPreparing:  {Label: "PREPARING", Color: "error"},
	OrderStatusReady:      {Label: "READY", Color: "warning"},
	OrderStatusDelivering: {Label: "DELIVERING", Color: "secondary"},
	OrderStatusDelivered:  {Label: "DELIVERED", Color: "success"},
	OrderStatusCancelled:  {Label: "CANCELLED", Color: "error", Outlined: true},
}

// StatusChip returns the read-only chip rendering for a status.
func (s OrderStatus) StatusChip() Chip {
	if chip, ok := orderStatusChips[s]; ok {
		return chip
	}
	return Chip{Label: s.String(), Color: "default"}
}

type OrderItem struct {
	ID              string      `json:"id"`
	Status          OrderStatus `json:"status"`
	MenuItemID      string      `json:"menu_item_id"`
	MenuItemName    string      `json:"menu_item_name,omitempty"`
	IsFree          bool        `json:"is_free"`
	Preferences     []string    `json:"preferences,omitempty"`
	AdditionalNotes string      `json:"additional_notes,omitempty"`
	LastUpdated     time.Time   `json:"last_updated"`
}

type Order struct {
	ID        string      `json:"id"`
	Status    OrderStatus `json:"status"`
	SessionID string      `json:"session_id"`
	Items     []OrderItem `json:"items"`
}
