package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/utils"
)

// respondUpstreamError surfaces a failed backend call as a dismissable
// notification message: the backend detail when present, a generic line
// otherwise. Nothing is retried automatically.
func respondUpstreamError(c *gin.Context, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		utils.RespondError(c, apiErr.StatusCode, apiErr)
		return
	}
	utils.RespondError(c, http.StatusBadGateway, err)
}

// StatusOption is one selectable next status for an order item.
type StatusOption struct {
	Status models.OrderStatus `json:"status"`
	Label  string             `json:"label"`
}

// OrderItemView decorates an order item with its chip and, for non-terminal
// statuses, the selectable next statuses.
type OrderItemView struct {
	models.OrderItem
	Chip         models.Chip    `json:"chip"`
	NextStatuses []StatusOption `json:"next_statuses"`
}

func buildOrderItemView(item models.OrderItem) OrderItemView {
	view := OrderItemView{
		OrderItem:    item,
		Chip:         item.Status.StatusChip(),
		NextStatuses: []StatusOption{},
	}
	for _, next := range item.Status.NextStatuses() {
		view.NextStatuses = append(view.NextStatuses, StatusOption{
			Status: next,
			Label:  next.String(),
		})
	}
	return view
}

// findPanelItem locates an order item in the last fetched activity panel.
func findPanelItem(panel *models.ActivityPanel, orderID, itemID string) (*models.OrderItem, bool) {
	if panel == nil {
		return nil, false
	}
	for _, table := range panel.Tables {
		if table.CurrentSession == nil {
			continue
		}
		for _, order := range table.CurrentSession.Orders {
			if order.ID != orderID {
				continue
			}
			for i := range order.Items {
				if order.Items[i].ID == itemID {
					return &order.Items[i], true
				}
			}
		}
	}
	return nil, false
}

// findPanelSession locates a session in the last fetched activity panel.
func findPanelSession(panel *models.ActivityPanel, sessionID string) (*models.Session, bool) {
	if panel == nil {
		return nil, false
	}
	for _, table := range panel.Tables {
		if table.CurrentSession != nil && table.CurrentSession.ID == sessionID {
			return table.CurrentSession, true
		}
	}
	return nil, false
}
