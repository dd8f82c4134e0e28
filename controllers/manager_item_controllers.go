package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/utils"
)

// ManagerItemController drives the manager's item screen: menu item CRUD.
type ManagerItemController struct {
	API *client.Client
}

func NewManagerItemController(api *client.Client) *ManagerItemController {
	return &ManagerItemController{API: api}
}

func (mi *ManagerItemController) ListItems(c *gin.Context) {
	items, err := mi.API.GetMenuItems(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu items", gin.H{
		"items":           items,
		"dietary_details": models.AllDietaryDetails,
	})
}

type menuItemForm struct {
	Name           string                 `json:"name" binding:"required"`
	Price          float64                `json:"price"`
	Description    string                 `json:"description"`
	Ingredients    []string               `json:"ingredients"`
	DietaryDetails []models.DietaryDetail `json:"dietary_details"`
}

func (f menuItemForm) request() client.MenuItemRequest {
	details := f.DietaryDetails
	if details == nil {
		details = []models.DietaryDetail{}
	}
	return client.MenuItemRequest{
		Name:           f.Name,
		Price:          f.Price,
		Description:    f.Description,
		Ingredients:    f.Ingredients,
		DietaryDetails: details,
	}
}

func (mi *ManagerItemController) CreateItem(c *gin.Context) {
	var form menuItemForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mi.API.CreateMenuItem(c.Request.Context(), form.request())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mi *ManagerItemController) UpdateItem(c *gin.Context) {
	var form menuItemForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mi.API.UpdateMenuItem(c.Request.Context(), c.Param("item_id"), form.request())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mi *ManagerItemController) DeleteItem(c *gin.Context) {
	if err := mi.API.DeleteMenuItem(c.Request.Context(), c.Param("item_id")); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", nil)
}
