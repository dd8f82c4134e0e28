package services

import (
	"context"
	"errors"
	"sync"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/models"
)

// CartLine is one menu item in the pending cart with its quantity and the
// per-line options collected from the customer.
type CartLine struct {
	Item            models.MenuItem `json:"item"`
	Quantity        int             `json:"quantity"`
	IsFree          bool            `json:"is_free"`
	Preferences     []string        `json:"preferences,omitempty"`
	AdditionalNotes string          `json:"additional_notes,omitempty"`
}

// OrderPlacer is the slice of the API client the cart needs to submit.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req client.CreateOrderRequest) (*models.Order, error)
}

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrSubmitInFlight    = errors.New("an order submission is already in progress")
	ErrNoActiveSession   = errors.New("no active session to order against")
	ErrUnknownMenuItemID = errors.New("menu item is not in the cart")
)

// Cart composes an order locally before submission. This is the only place
// order items are mutated client-side; once submitted, items only change
// through status-transition calls.
type Cart struct {
	mutex      sync.Mutex
	lines      []CartLine
	submitting bool
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts qty of the item in the cart, merging with an existing line.
func (c *Cart) Add(item models.MenuItem, qty int) {
	if qty <= 0 {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, CartLine{Item: item, Quantity: qty})
}

// SetQuantity sets a line's quantity; zero or less removes the line from the
// cart (and from the subtotal).
func (c *Cart) SetQuantity(itemID string, qty int) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			if qty <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			} else {
				c.lines[i].Quantity = qty
			}
			return nil
		}
	}
	return ErrUnknownMenuItemID
}

// SetLineOptions records the per-line preferences, notes and the
// free-of-charge flag.
func (c *Cart) SetLineOptions(itemID string, preferences []string, notes string, isFree bool) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Preferences = preferences
			c.lines[i].AdditionalNotes = notes
			c.lines[i].IsFree = isFree
			return nil
		}
	}
	return ErrUnknownMenuItemID
}

// Lines returns the cart contents in insertion order.
func (c *Cart) Lines() []CartLine {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal is the sum over all lines of unit price times quantity.
func (c *Cart) Subtotal() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	var total float64
	for _, line := range c.lines {
		total += line.Item.Price * float64(line.Quantity)
	}
	return total
}

func (c *Cart) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.lines = nil
}

// Submit turns the cart into one order against the session and clears the
// cart on success. A second submit while one is in flight is rejected
// locally, before any network call.
func (c *Cart) Submit(ctx context.Context, api OrderPlacer, sessionID string) (*models.Order, error) {
	if sessionID == "" {
		return nil, ErrNoActiveSession
	}

	c.mutex.Lock()
	if c.submitting {
		c.mutex.Unlock()
		return nil, ErrSubmitInFlight
	}
	if len(c.lines) == 0 {
		c.mutex.Unlock()
		return nil, ErrCartEmpty
	}
	c.submitting = true
	req := client.CreateOrderRequest{SessionID: sessionID}
	for _, line := range c.lines {
		// The backend models order items without quantity; a line of
		// quantity n becomes n items.
		for q := 0; q < line.Quantity; q++ {
			req.Items = append(req.Items, client.OrderItemRequest{
				MenuItemID:      line.Item.ID,
				IsFree:          line.IsFree,
				Preferences:     line.Preferences,
				AdditionalNotes: line.AdditionalNotes,
			})
		}
	}
	c.mutex.Unlock()

	order, err := api.CreateOrder(ctx, req)

	c.mutex.Lock()
	c.submitting = false
	if err == nil {
		c.lines = nil
	}
	c.mutex.Unlock()

	if err != nil {
		return nil, err
	}
	return order, nil
}
