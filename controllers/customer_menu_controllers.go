package controllers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/services"
	"github.com/yeremiapane/tableservice-client/utils"
)

// CustomerMenuController drives the tablet's menu browsing and cart. The
// menu is fetched on demand and cached; the cart lives locally until the
// customer submits it as an order.
type CustomerMenuController struct {
	API  *client.Client
	Cart *services.Cart

	mutex sync.Mutex
	menu  *client.MenuResponse
}

func NewCustomerMenuController(api *client.Client) *CustomerMenuController {
	return &CustomerMenuController{API: api, Cart: services.NewCart()}
}

func (mc *CustomerMenuController) loadMenu(c *gin.Context, force bool) (*client.MenuResponse, error) {
	mc.mutex.Lock()
	cached := mc.menu
	mc.mutex.Unlock()
	if cached != nil && !force {
		return cached, nil
	}

	menu, err := mc.API.GetMenu(c.Request.Context())
	if err != nil {
		return nil, err
	}
	mc.mutex.Lock()
	mc.menu = menu
	mc.mutex.Unlock()
	return menu, nil
}

type categoryView struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Items []models.MenuItem `json:"items"`
}

// GetMenu renders the menu grouped by category, filtered by the dietary
// tags given as repeated "dietary" query params. An item shows only when
// its tag set contains every selected filter; clearing the filters restores
// the full list.
func (mc *CustomerMenuController) GetMenu(c *gin.Context) {
	menu, err := mc.loadMenu(c, c.Query("refresh") == "true")
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	var filters []models.DietaryDetail
	for _, raw := range c.QueryArray("dietary") {
		filters = append(filters, models.DietaryDetail(raw))
	}

	categories := make([]categoryView, 0, len(menu.Menu.Categories))
	for _, category := range menu.Menu.Categories {
		items := make([]models.MenuItem, 0, len(category.MenuItems))
		for _, id := range category.MenuItems {
			if item, ok := menu.Items[id]; ok {
				items = append(items, item)
			}
		}
		categories = append(categories, categoryView{
			ID:    category.ID,
			Name:  category.Name,
			Items: models.FilterByDietary(items, filters),
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Menu", gin.H{
		"categories":      categories,
		"dietary_details": models.AllDietaryDetails,
	})
}

type addToCartForm struct {
	MenuItemID      string   `json:"menu_item_id" binding:"required"`
	Quantity        int      `json:"quantity"`
	Preferences     []string `json:"preferences"`
	AdditionalNotes string   `json:"additional_notes"`
}

func (mc *CustomerMenuController) AddToCart(c *gin.Context) {
	var form addToCartForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if form.Quantity <= 0 {
		form.Quantity = 1
	}

	menu, err := mc.loadMenu(c, false)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	item, ok := menu.Items[form.MenuItemID]
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	mc.Cart.Add(item, form.Quantity)
	if form.AdditionalNotes != "" || len(form.Preferences) > 0 {
		_ = mc.Cart.SetLineOptions(item.ID, form.Preferences, form.AdditionalNotes, false)
	}
	mc.respondCart(c, "Added to cart")
}

type setQuantityForm struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity"`
}

// SetCartQuantity updates a line; quantity zero removes it from the cart
// table and the subtotal.
func (mc *CustomerMenuController) SetCartQuantity(c *gin.Context) {
	var form setQuantityForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := mc.Cart.SetQuantity(form.MenuItemID, form.Quantity); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	mc.respondCart(c, "Cart updated")
}

func (mc *CustomerMenuController) GetCart(c *gin.Context) {
	mc.respondCart(c, "Cart")
}

func (mc *CustomerMenuController) respondCart(c *gin.Context, message string) {
	subtotal := mc.Cart.Subtotal()
	utils.RespondJSON(c, http.StatusOK, message, gin.H{
		"lines":              mc.Cart.Lines(),
		"subtotal":           subtotal,
		"subtotal_formatted": utils.FormatCurrency(subtotal),
	})
}

// SubmitCart places the cart as one order against the table's active
// session and empties it on success.
func (mc *CustomerMenuController) SubmitCart(c *gin.Context) {
	session, err := mc.API.GetTableSession(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	if session == nil {
		utils.RespondError(c, http.StatusConflict, services.ErrNoActiveSession)
		return
	}

	order, err := mc.Cart.Submit(c.Request.Context(), mc.API, session.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubmitInFlight), errors.Is(err, services.ErrCartEmpty):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			respondUpstreamError(c, err)
		}
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}
