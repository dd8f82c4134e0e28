package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/utils"
)

// TableController drives the customer tablet's session screens: starting a
// session, requesting the bill, assistance requests and the end-of-session
// summary.
type TableController struct {
	API *client.Client
}

func NewTableController(api *client.Client) *TableController {
	return &TableController{API: api}
}

// StartSession opens a new session for the table. Ordering is impossible
// until one exists.
func (tc *TableController) StartSession(c *gin.Context) {
	session, err := tc.API.StartSession(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Session started", session)
}

// GetSession renders the table's current session, or null when none is
// active.
func (tc *TableController) GetSession(c *gin.Context) {
	session, err := tc.API.GetTableSession(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table session", session)
}

// RequestBill locks the session into AWAITING_PAYMENT.
func (tc *TableController) RequestBill(c *gin.Context) {
	session, err := tc.API.LockSession(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill requested", session)
}

type requestAssistanceForm struct {
	Notes string `json:"notes"`
}

// RequestAssistance raises a staff call for the table.
func (tc *TableController) RequestAssistance(c *gin.Context) {
	var form requestAssistanceForm
	if err := c.ShouldBindJSON(&form); err != nil && c.Request.ContentLength > 0 {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	request, err := tc.API.CreateAssistanceRequest(c.Request.Context(), form.Notes)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Assistance requested", request)
}

// ResolveAssistance cancels the table's own current request.
func (tc *TableController) ResolveAssistance(c *gin.Context) {
	if err := tc.API.TabletResolveAssistanceRequest(c.Request.Context()); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Assistance request resolved", nil)
}

type summaryLine struct {
	Name   string             `json:"name"`
	Status models.OrderStatus `json:"status"`
	Chip   models.Chip        `json:"chip"`
	IsFree bool               `json:"is_free"`
	Price  float64            `json:"price"`
}

// GetSummary renders the end-of-session receipt view: every ordered item
// joined with its menu name and price.
func (tc *TableController) GetSummary(c *gin.Context) {
	session, err := tc.API.GetTableSession(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	if session == nil {
		utils.RespondJSON(c, http.StatusOK, "No active session", nil)
		return
	}

	menu, err := tc.API.GetMenu(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	var lines []summaryLine
	var total float64
	for _, order := range session.Orders {
		for _, item := range order.Items {
			line := summaryLine{
				Name:   item.MenuItemName,
				Status: item.Status,
				Chip:   item.Status.StatusChip(),
				IsFree: item.IsFree,
			}
			if menuItem, ok := menu.Items[item.MenuItemID]; ok {
				if line.Name == "" {
					line.Name = menuItem.Name
				}
				line.Price = menuItem.Price
			}
			if !line.IsFree && item.Status != models.OrderStatusCancelled {
				total += line.Price
			}
			lines = append(lines, line)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Session summary", gin.H{
		"session_id":      session.ID,
		"status":          session.Status,
		"status_name":     session.Status.String(),
		"lines":           lines,
		"total":           total,
		"total_formatted": utils.FormatCurrency(total),
	})
}
