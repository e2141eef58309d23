package client

import (
	"context"
	"mime"
	"net/http"
	"net/url"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

// ExportAPI hands filters to the export collaborator and returns its file.
type ExportAPI interface {
	ExportPatients(ctx context.Context, filter model.ExportFilter) (*model.Blob, error)
}

var _ ExportAPI = (*Client)(nil)

// ExportPatients downloads an export. The body is returned as-is; encoding
// is the backend's concern.
func (c *Client) ExportPatients(ctx context.Context, filter model.ExportFilter) (*model.Blob, error) {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("from", filter.From)
	set("to", filter.To)
	set("format", filter.Format)
	set("templateId", filter.TemplateID)
	set("status", filter.Status)

	rep, err := c.execute(ctx, request{op: "patients.export", method: http.MethodGet, path: "/patients/export", query: q, raw: true})
	if err != nil {
		return nil, err
	}

	blob := &model.Blob{
		ContentType: rep.header.Get("Content-Type"),
		Data:        append([]byte(nil), rep.payload...),
	}
	if cd := rep.header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			blob.Filename = params["filename"]
		}
	}
	if blob.Filename == "" {
		blob.Filename = "patients-export"
		if filter.Format != "" {
			blob.Filename += "." + filter.Format
		}
	}
	return blob, nil
}
