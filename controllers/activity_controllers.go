package controllers

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/realtime"
	"github.com/yeremiapane/tableservice-client/services"
	"github.com/yeremiapane/tableservice-client/utils"
)

// ActivityController drives the staff activity panel: the live table grid,
// order item status transitions, assistance handling and session completion.
type ActivityController struct {
	API       *client.Client
	Refresher *services.Refresher
}

func NewActivityController(api *client.Client, subscriber services.Subscriber) *ActivityController {
	ac := &ActivityController{API: api}
	ac.Refresher = services.NewRefresher(
		subscriber,
		func(ctx context.Context) (interface{}, error) {
			return api.GetActivityPanel(ctx)
		},
		realtime.EventActivityPanelUpdated,
		realtime.EventAssistanceRequestUpdated,
	)
	return ac
}

func (ac *ActivityController) panel() *models.ActivityPanel {
	panel, _ := ac.Refresher.Snapshot().(*models.ActivityPanel)
	return panel
}

// ensurePanel returns the last applied panel, fetching once when no fetch
// has resolved yet.
func (ac *ActivityController) ensurePanel(ctx context.Context) (*models.ActivityPanel, error) {
	if panel := ac.panel(); panel != nil {
		return panel, nil
	}
	if err := ac.Refresher.Refresh(ctx); err != nil {
		return nil, err
	}
	return ac.panel(), nil
}

type assistanceRequestView struct {
	models.AssistanceRequest
	StatusName   string   `json:"status_name"`
	NextStatuses []string `json:"next_statuses"`
	CanReopen    bool     `json:"can_reopen"`
}

type sessionView struct {
	ID            string                  `json:"id"`
	Status        models.SessionStatus    `json:"status"`
	StatusName    string                  `json:"status_name"`
	StartTime     string                  `json:"session_start_time"`
	Orders        [][]OrderItemView       `json:"orders"`
	OrderIDs      []string                `json:"order_ids"`
	Assistance    *assistanceRequestView  `json:"assistance_current"`
	Handled       []assistanceRequestView `json:"assistance_handled"`
	AwaitsPayment bool                    `json:"awaits_payment"`
}

type tableView struct {
	TableNumber     int          `json:"table_number"`
	BackgroundColor string       `json:"background_color"`
	BellColor       string       `json:"bell_color"`
	CurrentSession  *sessionView `json:"current_session"`
}

func buildSessionView(session *models.Session) *sessionView {
	if session == nil {
		return nil
	}
	view := &sessionView{
		ID:            session.ID,
		Status:        session.Status,
		StatusName:    session.Status.String(),
		StartTime:     session.StartTime,
		Orders:        [][]OrderItemView{},
		AwaitsPayment: session.Status == models.SessionStatusAwaitingPayment,
	}
	for _, order := range session.Orders {
		items := make([]OrderItemView, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, buildOrderItemView(item))
		}
		view.Orders = append(view.Orders, items)
		view.OrderIDs = append(view.OrderIDs, order.ID)
	}

	if current := session.AssistanceRequests.Current; current != nil {
		next := make([]string, 0)
		for _, s := range current.Status.NextStaffStatuses() {
			next = append(next, s.String())
		}
		view.Assistance = &assistanceRequestView{
			AssistanceRequest: *current,
			StatusName:        current.Status.String(),
			NextStatuses:      next,
		}
	}

	// History renders newest first; only the newest entry may offer the
	// reopen control, and only while no current request exists.
	handled := make([]models.AssistanceRequest, len(session.AssistanceRequests.Handled))
	copy(handled, session.AssistanceRequests.Handled)
	sort.Slice(handled, func(i, j int) bool {
		return handled[i].StartTime > handled[j].StartTime
	})
	view.Handled = make([]assistanceRequestView, 0, len(handled))
	for i, req := range handled {
		view.Handled = append(view.Handled, assistanceRequestView{
			AssistanceRequest: req,
			StatusName:        req.Status.String(),
			NextStatuses:      []string{},
			CanReopen:         i == 0 && session.AssistanceRequests.Current == nil,
		})
	}
	return view
}

// GetPanel renders the activity panel view model from the last applied
// fetch.
func (ac *ActivityController) GetPanel(c *gin.Context) {
	panel, err := ac.ensurePanel(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	tables := make([]tableView, 0, len(panel.Tables))
	for _, table := range panel.Tables {
		tables = append(tables, tableView{
			TableNumber:     table.TableNumber,
			BackgroundColor: table.BackgroundColor(),
			BellColor:       table.AssistanceBellColor(),
			CurrentSession:  buildSessionView(table.CurrentSession),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Activity panel", gin.H{"tables": tables})
}

// Refresh is the manual fallback control; it performs the same fetch the
// push path does.
func (ac *ActivityController) Refresh(c *gin.Context) {
	if err := ac.Refresher.Refresh(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Refreshed", nil)
}

type updateItemStatusForm struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateOrderItemStatus moves one order item through the transition table.
// Transitions the table does not offer are rejected here, before any
// network call; the displayed state never changes until the re-fetch after
// a successful call.
func (ac *ActivityController) UpdateOrderItemStatus(c *gin.Context) {
	orderID := c.Param("order_id")
	itemID := c.Param("item_id")

	var form updateItemStatusForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	panel, err := ac.ensurePanel(c.Request.Context())
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

	if _, err := ac.API.UpdateOrderItemStatus(c.Request.Context(), orderID, itemID, form.Status); err != nil {
		respondUpstreamError(c, err)
		return
	}

	if err := ac.Refresher.Refresh(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order item updated", nil)
}

type assistanceUpdateForm struct {
	SessionID string                         `json:"session_id" binding:"required"`
	Status    models.AssistanceRequestStatus `json:"status"`
}

// UpdateAssistanceRequest toggles a session's current request between the
// staff statuses or closes it.
func (ac *ActivityController) UpdateAssistanceRequest(c *gin.Context) {
	var form assistanceUpdateForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	panel, err := ac.ensurePanel(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	session, ok := findPanelSession(panel, form.SessionID)
	if !ok || session.AssistanceRequests.Current == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no current assistance request for this session"))
		return
	}
	if !session.AssistanceRequests.Current.Status.CanStaffTransitionTo(form.Status) {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("invalid state transition"))
		return
	}

	if _, err := ac.API.StaffUpdateAssistanceRequest(c.Request.Context(), form.SessionID, form.Status); err != nil {
		respondUpstreamError(c, err)
		return
	}

	if err := ac.Refresher.Refresh(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Assistance request updated", nil)
}

type assistanceReopenForm struct {
	SessionID string `json:"session_id" binding:"required"`
}

// ReopenAssistanceRequest brings the most recently handled request back as
// the current one with status HANDLING. Reopen is only legal while the
// session has no current request.
func (ac *ActivityController) ReopenAssistanceRequest(c *gin.Context) {
	var form assistanceReopenForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	panel, err := ac.ensurePanel(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	session, ok := findPanelSession(panel, form.SessionID)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("session not found"))
		return
	}
	newest := session.AssistanceRequests.NewestHandled()
	if newest == nil || !session.AssistanceRequests.CanReopen(newest.StartTime) {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("no reopenable assistance request"))
		return
	}

	if _, err := ac.API.StaffReopenAssistanceRequest(c.Request.Context(), form.SessionID); err != nil {
		respondUpstreamError(c, err)
		return
	}

	if err := ac.Refresher.Refresh(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Assistance request reopened", nil)
}

// CompleteSession closes a table's session after payment; the table then
// has no current session until a new one is started.
func (ac *ActivityController) CompleteSession(c *gin.Context) {
	tableName := c.Param("table_name")

	resp, err := ac.API.CompleteSession(c.Request.Context(), tableName)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	if err := ac.Refresher.Refresh(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session completed", resp)
}
