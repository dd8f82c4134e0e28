package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yeremiapane/tableservice-client/models"
)

type OrderItemRequest struct {
	MenuItemID      string   `json:"menu_item_id"`
	IsFree          bool     `json:"is_free"`
	Preferences     []string `json:"preferences,omitempty"`
	AdditionalNotes string   `json:"additional_notes,omitempty"`
}

type CreateOrderRequest struct {
	SessionID string             `json:"session_id"`
	Items     []OrderItemRequest `json:"items"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/order", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

type orderStatusUpdateRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateOrderItemStatus moves one order item to a new status. The caller is
// expected to have checked the transition table first; the backend rejects
// illegal transitions as well.
func (c *Client) UpdateOrderItemStatus(ctx context.Context, orderID, itemID string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/order/%s/%s", orderID, itemID)
	if err := c.do(ctx, http.MethodPost, path, orderStatusUpdateRequest{Status: status}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
