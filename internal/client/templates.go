package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

// TemplateAPI is the template resource. The template service depends on
// this interface so tests can substitute it.
type TemplateAPI interface {
	ListTemplates(ctx context.Context) ([]model.Template, error)
	GetTemplate(ctx context.Context, id string) (*model.Template, error)
	CreateTemplate(ctx context.Context, in model.TemplateInput) (*model.Template, error)
	UpdateTemplate(ctx context.Context, id string, in model.TemplateInput) (*model.Template, error)
	DeleteTemplate(ctx context.Context, id string) error
}

var _ TemplateAPI = (*Client)(nil)

func (c *Client) ListTemplates(ctx context.Context) ([]model.Template, error) {
	var out []model.Template
	err := c.call(ctx, request{op: "templates.list", method: http.MethodGet, path: "/templates"}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Template{}
	}
	return out, nil
}

func (c *Client) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	var out model.Template
	err := c.call(ctx, request{op: "templates.get", method: http.MethodGet, path: "/templates/" + url.PathEscape(id)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTemplate(ctx context.Context, in model.TemplateInput) (*model.Template, error) {
	var out model.Template
	err := c.call(ctx, request{op: "templates.create", method: http.MethodPost, path: "/templates", body: in}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTemplate(ctx context.Context, id string, in model.TemplateInput) (*model.Template, error) {
	var out model.Template
	err := c.call(ctx, request{op: "templates.update", method: http.MethodPut, path: "/templates/" + url.PathEscape(id), body: in}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.call(ctx, request{op: "templates.delete", method: http.MethodDelete, path: "/templates/" + url.PathEscape(id)}, nil)
}
