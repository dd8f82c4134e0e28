package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/controllers"
	"github.com/yeremiapane/tableservice-client/models"
)

// activityBackend fakes the remote API for the activity panel screens.
type activityBackend struct {
	mutex         sync.Mutex
	panel         models.ActivityPanel
	panelFetches  int
	statusUpdates []string
	reopenCalls   int
	updateCalls   int
}

func (b *activityBackend) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /activity", func(w http.ResponseWriter, r *http.Request) {
		b.mutex.Lock()
		b.panelFetches++
		panel := b.panel
		b.mutex.Unlock()
		json.NewEncoder(w).Encode(panel)
	})
	mux.HandleFunc("POST /order/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]models.OrderStatus
		json.NewDecoder(r.Body).Decode(&body)
		b.mutex.Lock()
		b.statusUpdates = append(b.statusUpdates, r.URL.Path+"="+body["status"].String())
		b.mutex.Unlock()
		json.NewEncoder(w).Encode(models.Order{})
	})
	mux.HandleFunc("PUT /session/assistance-request/staff-reopen", func(w http.ResponseWriter, r *http.Request) {
		b.mutex.Lock()
		b.reopenCalls++
		b.mutex.Unlock()
		json.NewEncoder(w).Encode(models.AssistanceRequest{Status: models.AssistanceHandling})
	})
	mux.HandleFunc("PUT /session/assistance-request/staff-update", func(w http.ResponseWriter, r *http.Request) {
		b.mutex.Lock()
		b.updateCalls++
		b.mutex.Unlock()
		json.NewEncoder(w).Encode(models.AssistanceRequest{})
	})
	return httptest.NewServer(mux)
}

func orderedItemPanel() models.ActivityPanel {
	return models.ActivityPanel{Tables: []models.TableActivity{
		{TableNumber: 1, CurrentSession: &models.Session{
			ID:     "s1",
			Status: models.SessionStatusOpen,
			Orders: []models.Order{
				{ID: "o1", Items: []models.OrderItem{{ID: "i1", Status: models.OrderStatusOrdered}}},
			},
		}},
	}}
}

func setupActivityRouter(backend *activityBackend) *gin.Engine {
	server := backend.server()
	api := client.New(server.URL, staticTokens("t"))
	ctrl := controllers.NewActivityController(api, nopSubscriber{})

	router := gin.New()
	router.GET("/activity", ctrl.GetPanel)
	router.POST("/activity/order/:order_id/item/:item_id", ctrl.UpdateOrderItemStatus)
	router.POST("/activity/assistance/update", ctrl.UpdateAssistanceRequest)
	router.POST("/activity/assistance/reopen", ctrl.ReopenAssistanceRequest)
	return router
}

func TestPanelOffersTransitionTableStatuses(t *testing.T) {
	backend := &activityBackend{panel: orderedItemPanel()}
	router := setupActivityRouter(backend)

	w := doJSON(router, http.MethodGet, "/activity", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data struct {
			Tables []struct {
				CurrentSession struct {
					Orders [][]struct {
						Chip         models.Chip `json:"chip"`
						NextStatuses []struct {
							Label string `json:"label"`
						} `json:"next_statuses"`
					} `json:"orders"`
				} `json:"current_session"`
			} `json:"tables"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	item := payload.Data.Tables[0].CurrentSession.Orders[0][0]
	assert.Equal(t, "ORDERED", item.Chip.Label)
	assert.Equal(t, "info", item.Chip.Color)
	assert.Len(t, item.NextStatuses, 2)
	assert.Equal(t, "PREPARING", item.NextStatuses[0].Label)
	assert.Equal(t, "CANCELLED", item.NextStatuses[1].Label)
}

func TestCancelOrderedItemIssuesOneCallAndOneRefresh(t *testing.T) {
	backend := &activityBackend{panel: orderedItemPanel()}
	router := setupActivityRouter(backend)

	w := doJSON(router, http.MethodPost, "/activity/order/o1/item/i1", gin.H{
		"status": models.OrderStatusCancelled,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"/order/o1/i1=CANCELLED"}, backend.statusUpdates)
	// One fetch to locate the item, one refresh after the successful call.
	assert.Equal(t, 2, backend.panelFetches)
}

func TestIllegalTransitionRejectedBeforeAnyCall(t *testing.T) {
	backend := &activityBackend{panel: orderedItemPanel()}
	router := setupActivityRouter(backend)

	w := doJSON(router, http.MethodPost, "/activity/order/o1/item/i1", gin.H{
		"status": models.OrderStatusDelivered,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, backend.statusUpdates)
}

func TestTerminalItemOffersNoActions(t *testing.T) {
	panel := orderedItemPanel()
	panel.Tables[0].CurrentSession.Orders[0].Items[0].Status = models.OrderStatusCancelled
	backend := &activityBackend{panel: panel}
	router := setupActivityRouter(backend)

	w := doJSON(router, http.MethodPost, "/activity/order/o1/item/i1", gin.H{
		"status": models.OrderStatusOrdered,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, backend.statusUpdates)
}

func reopenPanel(withCurrent bool) models.ActivityPanel {
	session := &models.Session{
		ID:     "s1",
		Status: models.SessionStatusOpen,
		AssistanceRequests: models.AssistanceRequests{
			Handled: []models.AssistanceRequest{
				{Status: models.AssistanceClosed, StartTime: "2025-05-01T10:00:00"},
				{Status: models.AssistanceClosed, StartTime: "2025-05-01T12:30:00"},
			},
		},
	}
	if withCurrent {
		session.AssistanceRequests.Current = &models.AssistanceRequest{
			Status:    models.AssistanceOpen,
			StartTime: "2025-05-01T13:00:00",
		}
	}
	return models.ActivityPanel{Tables: []models.TableActivity{
		{TableNumber: 1, CurrentSession: session},
	}}
}

func TestReopenNewestHandledRequest(t *testing.T) {
	backend := &activityBackend{panel: reopenPanel(false)}
	router := setupActivityRouter(backend)

	w := doJSON(router, http.MethodPost, "/activity/assistance/reopen", gin.H{"session_id": "s1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, backend.reopenCalls)
}

func TestReopenRejectedWhileRequestIsCurrent(t *testing.T) {
	backend := &activityBackend{panel: reopenPanel(true)}
	router := setupActivityRouter(backend)

	w := doJSON(router, http.MethodPost, "/activity/assistance/reopen", gin.H{"session_id": "s1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, backend.reopenCalls)
}

func TestReopenOnlyOfferedOnNewestHistoryEntry(t *testing.T) {
	backend := &activityBackend{panel: reopenPanel(false)}
	router := setupActivityRouter(backend)

	w := doJSON(router, http.MethodGet, "/activity", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data struct {
			Tables []struct {
				CurrentSession struct {
					Handled []struct {
						StartTime string `json:"start_time"`
						CanReopen bool   `json:"can_reopen"`
					} `json:"assistance_handled"`
				} `json:"current_session"`
			} `json:"tables"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	handled := payload.Data.Tables[0].CurrentSession.Handled
	assert.Len(t, handled, 2)
	// Newest first, reopen only on the newest.
	assert.Equal(t, "2025-05-01T12:30:00", handled[0].StartTime)
	assert.True(t, handled[0].CanReopen)
	assert.False(t, handled[1].CanReopen)
}

func TestAssistanceStaffToggle(t *testing.T) {
	panel := reopenPanel(true)
	backend := &activityBackend{panel: panel}
	router := setupActivityRouter(backend)

	// OPEN -> HANDLING is offered.
	w := doJSON(router, http.MethodPost, "/activity/assistance/update", gin.H{
		"session_id": "s1",
		"status":     models.AssistanceHandling,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, backend.updateCalls)

	// OPEN -> CLOSED is not.
	backend.mutex.Lock()
	backend.panel = reopenPanel(true)
	backend.mutex.Unlock()
	w = doJSON(router, http.MethodPost, "/activity/assistance/update", gin.H{
		"session_id": "s1",
		"status":     models.AssistanceClosed,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 1, backend.updateCalls)
}
