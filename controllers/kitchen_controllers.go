package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/realtime"
	"github.com/yeremiapane/tableservice-client/services"
	"github.com/yeremiapane/tableservice-client/utils"
)

// KitchenController drives the kitchen display: active items grouped into
// status columns, fed from the same activity aggregate the panel uses but
// subscribed to the activity event only.
type KitchenController struct {
	API       *client.Client
	Refresher *services.Refresher
}

func NewKitchenController(api *client.Client, subscriber services.Subscriber) *KitchenController {
	kc := &KitchenController{API: api}
	kc.Refresher = services.NewRefresher(
		subscriber,
		func(ctx context.Context) (interface{}, error) {
			return api.GetActivityPanel(ctx)
		},
		realtime.EventActivityPanelUpdated,
	)
	return kc
}

func (kc *KitchenController) panel() *models.ActivityPanel {
	panel, _ := kc.Refresher.Snapshot().(*models.ActivityPanel)
	return panel
}

func (kc *KitchenController) ensurePanel(ctx context.Context) (*models.ActivityPanel, error) {
	if panel := kc.panel(); panel != nil {
		return panel, nil
	}
	if err := kc.Refresher.Refresh(ctx); err != nil {
		return nil, err
	}
	return kc.panel(), nil
}

type kitchenItemView struct {
	TableNumber int    `json:"table_number"`
	OrderID     string `json:"order_id"`
	OrderItemView
}

// GetBoard renders the kitchen columns.
func (kc *KitchenController) GetBoard(c *gin.Context) {
	panel, err := kc.ensurePanel(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	groups := panel.GroupItemsByStatus()
	columns := gin.H{}
	for _, status := range []models.OrderStatus{
		models.OrderStatusOrdered,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
	} {
		views := make([]kitchenItemView, 0, len(groups[status]))
		for _, active := range groups[status] {
			views = append(views, kitchenItemView{
				TableNumber:   active.TableNumber,
				OrderID:       active.OrderID,
				OrderItemView: buildOrderItemView(active.Item),
			})
		}
		columns[status.String()] = views
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen board", columns)
}

// Refresh is the manual fallback control.
func (kc *KitchenController) Refresh(c *gin.Context) {
	if err := kc.Refresher.Refresh(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Refreshed", nil)
}

// UpdateOrderItemStatus applies the same transition table the activity
// panel enforces.
func (kc *KitchenController) UpdateOrderItemStatus(c *gin.Context) {
	orderID := c.Param("order_id")
	itemID := c.Param("item_id")

	var form updateItemStatusForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	panel, err := kc.ensurePanel(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	item, ok := findPanelItem(panel, orderID, itemID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("order item not found"))
		return
	}
	if !item.Status.CanTransitionTo(form.Status) {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("invalid state transition"))
		return
	}

	if _, err := kc.API.UpdateOrderItemStatus(c.Request.Context(), orderID, itemID, form.Status); err != nil {
		respondUpstreamError(c, err)
		return
	}

	if err := kc.Refresher.Refresh(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order item updated", nil)
}
