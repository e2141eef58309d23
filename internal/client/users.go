package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

// UserAPI is the user administration resource.
type UserAPI interface {
	ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

var _ UserAPI = (*Client)(nil)

func (c *Client) ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	q := url.Values{}
	if filter.SearchTerm != "" {
		q.Set("search", filter.SearchTerm)
	}
	if filter.Role != "" {
		q.Set("role", filter.Role)
	}
	var out []model.User
	err := c.call(ctx, request{op: "users.list", method: http.MethodGet, path: "/users", query: q}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.User{}
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	var out model.User
	err := c.call(ctx, request{op: "users.create", method: http.MethodPost, path: "/users", body: req}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	var out model.User
	err := c.call(ctx, request{op: "users.update", method: http.MethodPut, path: "/users/" + url.PathEscape(id), body: req}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.call(ctx, request{op: "users.delete", method: http.MethodDelete, path: "/users/" + url.PathEscape(id)}, nil)
}
