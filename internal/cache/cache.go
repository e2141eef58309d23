// Package cache keeps the last fetched template list between calls, with a
// stale flag the template service uses to decide when to refetch.
package cache

import (
	"context"
	"time"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

// Entry is one cached template list.
type Entry struct {
	Templates []model.Template `json:"templates"`
	Stale     bool             `json:"stale"`
	StoredAt  time.Time        `json:"storedAt"`
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	if e.Templates != nil {
		list := make([]model.Template, len(e.Templates))
		for i, t := range e.Templates {
			list[i] = t.Clone()
		}
		e.Templates = list
	}
	return e
}

// TemplateCache stores a single template list.
type TemplateCache interface {
	// Load returns the entry and whether one is present.
	Load(ctx context.Context) (Entry, bool, error)
	Store(ctx context.Context, e Entry) error
	// MarkStale flags the entry for refetch without dropping it.
	MarkStale(ctx context.Context) error
	Clear(ctx context.Context) error
}
