package client

import (
	"context"
	"net/http"

	"github.com/yeremiapane/tableservice-client/models"
)

// GetActivityPanel fetches the aggregate of every table's live state.
func (c *Client) GetActivityPanel(ctx context.Context) (*models.ActivityPanel, error) {
	var panel models.ActivityPanel
	if err := c.do(ctx, http.MethodGet, "/activity", nil, &panel); err != nil {
		return nil, err
	}
	return &panel, nil
}
