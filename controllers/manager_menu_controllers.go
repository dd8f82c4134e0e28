package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/utils"
)

// ManagerMenuController drives the manager's menu screen: category CRUD and
// reordering of categories and of items within a category.
type ManagerMenuController struct {
	API *client.Client
}

func NewManagerMenuController(api *client.Client) *ManagerMenuController {
	return &ManagerMenuController{API: api}
}

// GetMenu renders the full menu for editing.
func (mm *ManagerMenuController) GetMenu(c *gin.Context) {
	menu, err := mm.API.GetMenu(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", menu)
}

type categoryForm struct {
	Name      string   `json:"name" binding:"required"`
	MenuItems []string `json:"menu_items"`
}

func (mm *ManagerMenuController) CreateCategory(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if form.MenuItems == nil {
		form.MenuItems = []string{}
	}

	category, err := mm.API.CreateCategory(c.Request.Context(), client.CategoryRequest{
		Name:      form.Name,
		MenuItems: form.MenuItems,
	})
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (mm *ManagerMenuController) UpdateCategory(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category, err := mm.API.UpdateCategory(c.Request.Context(), c.Param("category_id"), client.CategoryRequest{
		Name:      form.Name,
		MenuItems: form.MenuItems,
	})
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

func (mm *ManagerMenuController) DeleteCategory(c *gin.Context) {
	if err := mm.API.DeleteCategory(c.Request.Context(), c.Param("category_id")); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", nil)
}

type moveForm struct {
	ID        string `json:"id" binding:"required"`
	Direction string `json:"direction" binding:"required"`
}

func parseDirection(raw string) (models.MoveDirection, error) {
	switch raw {
	case "up":
		return models.MoveUp, nil
	case "down":
		return models.MoveDown, nil
	}
	return 0, errors.New("direction must be \"up\" or \"down\"")
}

// MoveCategory swaps a category with its neighbor and submits the full
// permutation. Moving the first category up or the last down is rejected
// locally without touching the backend; on success the backend's
// arrangement replaces local state.
func (mm *ManagerMenuController) MoveCategory(c *gin.Context) {
	var form moveForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	dir, err := parseDirection(form.Direction)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu, err := mm.API.GetMenu(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	order, err := models.MoveEntry(menu.Menu.CategoryIDs(), form.ID, dir)
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	updated, err := mm.API.ReorderMenu(c.Request.Context(), order)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu reordered", updated)
}

type moveItemForm struct {
	CategoryID string `json:"category_id" binding:"required"`
	ItemID     string `json:"item_id" binding:"required"`
	Direction  string `json:"direction" binding:"required"`
}

// MoveItem swaps a menu item with its neighbor inside one category, then
// saves the category with the new item order.
func (mm *ManagerMenuController) MoveItem(c *gin.Context) {
	var form moveItemForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	dir, err := parseDirection(form.Direction)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu, err := mm.API.GetMenu(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	var category *models.Category
	for i := range menu.Menu.Categories {
		if menu.Menu.Categories[i].ID == form.CategoryID {
			category = &menu.Menu.Categories[i]
			break
		}
	}
	if category == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	items, err := models.MoveEntry(category.MenuItems, form.ItemID, dir)
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	updated, err := mm.API.UpdateCategory(c.Request.Context(), category.ID, client.CategoryRequest{
		Name:      category.Name,
		MenuItems: items,
	})
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category reordered", updated)
}
