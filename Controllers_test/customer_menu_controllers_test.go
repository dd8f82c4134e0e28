package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/controllers"
	"github.com/yeremiapane/tableservice-client/models"
)

// tabletBackend fakes the remote API for the customer tablet flow.
type tabletBackend struct {
	mutex       sync.Mutex
	menu        client.MenuResponse
	session     *models.Session
	menuFetches int
	orders      []client.CreateOrderRequest
}

func (b *tabletBackend) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /menu", func(w http.ResponseWriter, r *http.Request) {
		b.mutex.Lock()
		b.menuFetches++
		menu := b.menu
		b.mutex.Unlock()
		json.NewEncoder(w).Encode(menu)
	})
	mux.HandleFunc("GET /table/session", func(w http.ResponseWriter, r *http.Request) {
		b.mutex.Lock()
		session := b.session
		b.mutex.Unlock()
		if session == nil {
			w.Write([]byte("null"))
			return
		}
		json.NewEncoder(w).Encode(session)
	})
	mux.HandleFunc("POST /order", func(w http.ResponseWriter, r *http.Request) {
		var req client.CreateOrderRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.mutex.Lock()
		b.orders = append(b.orders, req)
		b.mutex.Unlock()
		json.NewEncoder(w).Encode(models.Order{ID: "o1", SessionID: req.SessionID})
	})
	return httptest.NewServer(mux)
}

func tabletMenu() client.MenuResponse {
	return client.MenuResponse{
		Menu: models.Menu{Categories: []models.Category{
			{ID: "c1", Name: "Mains", MenuItems: []string{"m1", "m2"}},
		}},
		Items: map[string]models.MenuItem{
			"m1": {ID: "m1", Name: "Pad Thai", Price: 11.50, DietaryDetails: []models.DietaryDetail{models.DietaryContainsNuts}},
			"m2": {ID: "m2", Name: "Green Curry", Price: 9.00, DietaryDetails: []models.DietaryDetail{models.DietaryVegan, models.DietarySpicy}},
		},
	}
}

func setupTabletRouter(backend *tabletBackend) *gin.Engine {
	server := backend.server()
	api := client.New(server.URL, staticTokens("t"))
	ctrl := controllers.NewCustomerMenuController(api)

	router := gin.New()
	router.GET("/table/menu", ctrl.GetMenu)
	router.GET("/table/cart", ctrl.GetCart)
	router.POST("/table/cart", ctrl.AddToCart)
	router.POST("/table/cart/quantity", ctrl.SetCartQuantity)
	router.POST("/table/cart/submit", ctrl.SubmitCart)
	return router
}

type cartPayload struct {
	Data struct {
		Lines []struct {
			Item     models.MenuItem `json:"item"`
			Quantity int             `json:"quantity"`
		} `json:"lines"`
		Subtotal          float64 `json:"subtotal"`
		SubtotalFormatted string  `json:"subtotal_formatted"`
	} `json:"data"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartPayload {
	var payload cartPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestGetMenuFiltersByDietaryTags(t *testing.T) {
	backend := &tabletBackend{menu: tabletMenu()}
	router := setupTabletRouter(backend)

	w := doJSON(router, http.MethodGet, "/table/menu?dietary=Vegan&dietary=Spicy", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data struct {
			Categories []struct {
				Items []models.MenuItem `json:"items"`
			} `json:"categories"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload.Data.Categories, 1)
	require.Len(t, payload.Data.Categories[0].Items, 1)
	assert.Equal(t, "m2", payload.Data.Categories[0].Items[0].ID)

	// Clearing the filters restores the full list without a re-fetch.
	w = doJSON(router, http.MethodGet, "/table/menu", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Len(t, payload.Data.Categories[0].Items, 2)
	assert.Equal(t, 1, backend.menuFetches)
}

func TestAddToCartAndSubtotal(t *testing.T) {
	backend := &tabletBackend{menu: tabletMenu()}
	router := setupTabletRouter(backend)

	w := doJSON(router, http.MethodPost, "/table/cart", gin.H{
		"menu_item_id": "m1",
		"quantity":     2,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/table/cart", gin.H{
		"menu_item_id": "m2",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	cart := decodeCart(t, w)
	require.Len(t, cart.Data.Lines, 2)
	assert.Equal(t, 2, cart.Data.Lines[0].Quantity)
	assert.Equal(t, 1, cart.Data.Lines[1].Quantity)
	assert.InDelta(t, 32.00, cart.Data.Subtotal, 0.001)
	assert.Equal(t, "32.00", cart.Data.SubtotalFormatted)
}

func TestAddUnknownItemToCart(t *testing.T) {
	backend := &tabletBackend{menu: tabletMenu()}
	router := setupTabletRouter(backend)

	w := doJSON(router, http.MethodPost, "/table/cart", gin.H{
		"menu_item_id": "nope",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuantityZeroRemovesLine(t *testing.T) {
	backend := &tabletBackend{menu: tabletMenu()}
	router := setupTabletRouter(backend)

	doJSON(router, http.MethodPost, "/table/cart", gin.H{"menu_item_id": "m1"})

	w := doJSON(router, http.MethodPost, "/table/cart/quantity", gin.H{
		"menu_item_id": "m1",
		"quantity":     0,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	cart := decodeCart(t, w)
	assert.Empty(t, cart.Data.Lines)
	assert.Zero(t, cart.Data.Subtotal)
}

func TestSubmitCartExpandsQuantitiesAndClears(t *testing.T) {
	backend := &tabletBackend{
		menu:    tabletMenu(),
		session: &models.Session{ID: "s1", Status: models.SessionStatusOpen},
	}
	router := setupTabletRouter(backend)

	doJSON(router, http.MethodPost, "/table/cart", gin.H{
		"menu_item_id":     "m1",
		"quantity":         3,
		"additional_notes": "extra lime",
	})

	w := doJSON(router, http.MethodPost, "/table/cart/submit", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, backend.orders, 1)
	order := backend.orders[0]
	assert.Equal(t, "s1", order.SessionID)
	require.Len(t, order.Items, 3)
	for _, item := range order.Items {
		assert.Equal(t, "m1", item.MenuItemID)
		assert.Equal(t, "extra lime", item.AdditionalNotes)
	}

	w = doJSON(router, http.MethodGet, "/table/cart", nil)
	cart := decodeCart(t, w)
	assert.Empty(t, cart.Data.Lines)
}

func TestSubmitCartWithoutSession(t *testing.T) {
	backend := &tabletBackend{menu: tabletMenu()}
	router := setupTabletRouter(backend)

	doJSON(router, http.MethodPost, "/table/cart", gin.H{"menu_item_id": "m1"})

	w := doJSON(router, http.MethodPost, "/table/cart/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, backend.orders)

	// The cart survives a rejected submission.
	w = doJSON(router, http.MethodGet, "/table/cart", nil)
	cart := decodeCart(t, w)
	assert.Len(t, cart.Data.Lines, 1)
}

func TestSubmitEmptyCart(t *testing.T) {
	backend := &tabletBackend{
		menu:    tabletMenu(),
		session: &models.Session{ID: "s1", Status: models.SessionStatusOpen},
	}
	router := setupTabletRouter(backend)

	w := doJSON(router, http.MethodPost, "/table/cart/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, backend.orders)
}
