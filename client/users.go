package client

import (
	"context"
	"net/http"

	"github.com/yeremiapane/tableservice-client/models"
)

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

type UserRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password,omitempty"`
	Role     models.UserRole `json:"role"`
}

func (c *Client) CreateUser(ctx context.Context, req UserRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/user/create", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UserRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/user/update/"+id, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/delete/"+id, nil, nil)
}
