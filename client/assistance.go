package client

import (
	"context"
	"net/http"

	"github.com/yeremiapane/tableservice-client/models"
)

type createAssistanceRequest struct {
	Notes string `json:"notes,omitempty"`
}

// CreateAssistanceRequest raises a new request for the authenticated table.
func (c *Client) CreateAssistanceRequest(ctx context.Context, notes string) (*models.AssistanceRequest, error) {
	var request models.AssistanceRequest
	err := c.do(ctx, http.MethodPut, "/session/assistance-request/create", createAssistanceRequest{Notes: notes}, &request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

type staffUpdateAssistanceRequest struct {
	SessionID string                         `json:"session_id"`
	Status    models.AssistanceRequestStatus `json:"status"`
}

// StaffUpdateAssistanceRequest moves a session's current request between the
// staff-side statuses.
func (c *Client) StaffUpdateAssistanceRequest(ctx context.Context, sessionID string, status models.AssistanceRequestStatus) (*models.AssistanceRequest, error) {
	var request models.AssistanceRequest
	err := c.do(ctx, http.MethodPut, "/session/assistance-request/staff-update", staffUpdateAssistanceRequest{
		SessionID: sessionID,
		Status:    status,
	}, &request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

type staffReopenAssistanceRequest struct {
	SessionID string `json:"session_id"`
}

// StaffReopenAssistanceRequest reopens the session's most recently handled
// request, making it current again with status HANDLING.
func (c *Client) StaffReopenAssistanceRequest(ctx context.Context, sessionID string) (*models.AssistanceRequest, error) {
	var request models.AssistanceRequest
	err := c.do(ctx, http.MethodPut, "/session/assistance-request/staff-reopen", staffReopenAssistanceRequest{
		SessionID: sessionID,
	}, &request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// TabletResolveAssistanceRequest cancels the table's own current request.
func (c *Client) TabletResolveAssistanceRequest(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/session/assistance-request/tablet-resolve", nil, nil)
}
