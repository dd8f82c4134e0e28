package client

import (
	"context"
	"net/http"

	"github.com/yeremiapane/tableservice-client/models"
)

// StartSession opens a new dining session for the authenticated table.
func (c *Client) StartSession(ctx context.Context) (*models.Session, error) {
	var session models.Session
	if err := c.do(ctx, http.MethodPost, "/session/start", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetTableSession returns the table's current session, or nil when the
// table has none.
func (c *Client) GetTableSession(ctx context.Context) (*models.Session, error) {
	var session models.Session
	if err := c.do(ctx, http.MethodGet, "/table/session", nil, &session); err != nil {
		return nil, err
	}
	if session.ID == "" {
		return nil, nil
	}
	return &session, nil
}

// LockSession moves the table's session to AWAITING_PAYMENT (the customer
// asked for the bill). No further orders can be placed afterwards.
func (c *Client) LockSession(ctx context.Context) (*models.Session, error) {
	var session models.Session
	if err := c.do(ctx, http.MethodPost, "/session/lock", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

type CompleteSessionResponse struct {
	UserID        string               `json:"user_id"`
	Username      string               `json:"username"`
	ActiveSession *string              `json:"active_session"`
	SessionID     string               `json:"session_id"`
	SessionStatus models.SessionStatus `json:"session_status"`
	StartTime     string               `json:"session_start_time"`
	EndTime       string               `json:"session_end_time"`
}

// CompleteSession closes a table's session after payment. The table has no
// current session afterwards; a new one must be started before ordering.
func (c *Client) CompleteSession(ctx context.Context, tableName string) (*CompleteSessionResponse, error) {
	var resp CompleteSessionResponse
	if err := c.do(ctx, http.MethodPost, "/session/complete/"+tableName, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
