package client

import (
	"context"
	"net/http"

	"github.com/yeremiapane/tableservice-client/models"
)

// MenuResponse is the full menu: categories in display order plus an id
// lookup for every item referenced by a category.
type MenuResponse struct {
	Menu  models.Menu                `json:"Menu"`
	Items map[string]models.MenuItem `json:"Items"`
}

func (c *Client) GetMenu(ctx context.Context) (*MenuResponse, error) {
	var menu MenuResponse
	if err := c.do(ctx, http.MethodGet, "/menu", nil, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

func (c *Client) GetMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu-items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

type MenuItemRequest struct {
	Name           string                 `json:"name"`
	Price          float64                `json:"price"`
	Description    string                 `json:"description"`
	Ingredients    []string               `json:"ingredients,omitempty"`
	DietaryDetails []models.DietaryDetail `json:"dietary_details"`
}

func (c *Client) CreateMenuItem(ctx context.Context, req MenuItemRequest) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, http.MethodPut, "/menu-item", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, req MenuItemRequest) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, http.MethodPost, "/menu-item/"+id, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/menu-item/"+id, nil, nil)
}

type ReorderMenuRequest struct {
	Order []string `json:"order"`
}

// ReorderMenu submits the full category permutation; the backend answers
// with the authoritative arrangement, which replaces local state.
func (c *Client) ReorderMenu(ctx context.Context, order []string) (*MenuResponse, error) {
	var menu MenuResponse
	if err := c.do(ctx, http.MethodPut, "/menu/reorder", ReorderMenuRequest{Order: order}, &menu); err != nil {
		return nil, err
	}
	return &menu, nil
}

type CategoryRequest struct {
	Name      string   `json:"name"`
	MenuItems []string `json:"menu_items"`
}

func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPost, "/category/", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPut, "/category/"+id, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/category/"+id, nil, nil)
}
