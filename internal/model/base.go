package model

import (
	"time"
)

// Audit contains the server-maintained timestamps common to all resources.
type Audit struct {
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ExportFilter selects the records an export covers.
type ExportFilter struct {
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Format     string `json:"format" validate:"oneof=csv xlsx pdf"`
	TemplateID string `json:"templateId,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Blob is an opaque downloadable payload returned by the export endpoint.
type Blob struct {
	ContentType string
	Filename    string
	Data        []byte
}
