// Package template implements the template list page: a cached, searchable
// list with create, update, delete and duplicate.
package template

import (
	"context"
	"slices"
	"strings"

	"github.com/jwalitptl/clinicdesk/internal/cache"
	"github.com/jwalitptl/clinicdesk/internal/client"
	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/internal/service"
	"github.com/jwalitptl/clinicdesk/pkg/logger"
	"github.com/jwalitptl/clinicdesk/pkg/metrics"
)

const (
	msgList      = "Failed to fetch templates"
	msgGet       = "Failed to fetch template"
	msgCreate    = "Failed to create template"
	msgUpdate    = "Failed to update template"
	msgDelete    = "Failed to delete template"
	msgDuplicate = "Failed to duplicate template"

	copySuffix = " (Copy)"
)

// Servicer is what the CLI needs from the template service.
type Servicer interface {
	List(ctx context.Context, term string) service.Result[[]model.Template]
	Get(ctx context.Context, id string) service.Result[model.Template]
	Create(ctx context.Context, in model.TemplateInput) service.Result[model.Template]
	Update(ctx context.Context, id string, in model.TemplateInput) service.Result[model.Template]
	Delete(ctx context.Context, id string) service.Result[struct{}]
	Duplicate(ctx context.Context, t model.Template) service.Result[model.Template]
}

type Service struct {
	api     client.TemplateAPI
	cache   cache.TemplateCache
	metrics *metrics.Metrics
	log     *logger.Logger
}

var _ Servicer = (*Service)(nil)

// NewService wires the service. m and log may be nil.
func NewService(api client.TemplateAPI, c cache.TemplateCache, m *metrics.Metrics, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, cache: c, metrics: m, log: log.With("template-service")}
}

// List returns the templates whose name or description contains term,
// case-insensitively. A blank term returns everything.
func (s *Service) List(ctx context.Context, term string) service.Result[[]model.Template] {
	list, err := s.templates(ctx)
	if err != nil {
		return service.Failed[[]model.Template](err, msgList)
	}
	return service.OK(Filter(list, term))
}

// templates serves the cached list, refetching when it is missing or stale.
// A failed refetch falls back to the stale list.
func (s *Service) templates(ctx context.Context) ([]model.Template, error) {
	entry, found, err := s.cache.Load(ctx)
	if err != nil {
		s.log.Warn(err, "template cache unavailable")
		found = false
	}
	if found && !entry.Stale {
		s.metrics.CacheResult("hit")
		s.log.Debug("template cache hit", "count", len(entry.Templates))
		return entry.Templates, nil
	}
	if found {
		s.metrics.CacheResult("stale")
	} else {
		s.metrics.CacheResult("miss")
	}

	list, err := s.api.ListTemplates(ctx)
	if err != nil {
		if found {
			s.log.Warn(err, "template refetch failed, serving stale list")
			return entry.Templates, nil
		}
		return nil, err
	}
	if err := s.cache.Store(ctx, cache.Entry{Templates: list}); err != nil {
		s.log.Warn(err, "failed to store template list")
	}
	return list, nil
}

// Filter applies the list page search rule.
func Filter(list []model.Template, term string) []model.Template {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]model.Template, 0, len(list))
	for _, t := range list {
		if term == "" ||
			strings.Contains(strings.ToLower(t.Name), term) ||
			strings.Contains(strings.ToLower(t.Description), term) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) Get(ctx context.Context, id string) service.Result[model.Template] {
	t, err := s.api.GetTemplate(ctx, id)
	if err != nil {
		return service.Failed[model.Template](err, msgGet)
	}
	return service.OK(*t)
}

func (s *Service) Create(ctx context.Context, in model.TemplateInput) service.Result[model.Template] {
	return s.create(ctx, in, msgCreate)
}

func (s *Service) create(ctx context.Context, in model.TemplateInput, fallback string) service.Result[model.Template] {
	t, err := s.api.CreateTemplate(ctx, in)
	if err != nil {
		return service.Failed[model.Template](err, fallback)
	}
	s.patchCache(ctx, func(list []model.Template) []model.Template {
		return append(list, t.Clone())
	})
	s.log.Info("template created", "id", t.ID, "name", t.Name)
	return service.OK(*t)
}

func (s *Service) Update(ctx context.Context, id string, in model.TemplateInput) service.Result[model.Template] {
	t, err := s.api.UpdateTemplate(ctx, id, in)
	if err != nil {
		return service.Failed[model.Template](err, msgUpdate)
	}
	s.patchCache(ctx, func(list []model.Template) []model.Template {
		if i := indexOf(list, id); i >= 0 {
			list[i] = t.Clone()
		}
		return list
	})
	s.log.Info("template updated", "id", id)
	return service.OK(*t)
}

func (s *Service) Delete(ctx context.Context, id string) service.Result[struct{}] {
	if err := s.api.DeleteTemplate(ctx, id); err != nil {
		return service.Failed[struct{}](err, msgDelete)
	}
	s.patchCache(ctx, func(list []model.Template) []model.Template {
		if i := indexOf(list, id); i >= 0 {
			list = slices.Delete(list, i, i+1)
		}
		return list
	})
	s.log.Info("template deleted", "id", id)
	return service.OK(struct{}{})
}

// Duplicate creates a copy of t named "<name> (Copy)" that is never the
// default.
func (s *Service) Duplicate(ctx context.Context, t model.Template) service.Result[model.Template] {
	return s.create(ctx, DuplicateInput(t), msgDuplicate)
}

// DuplicateInput builds the create payload for a copy of t.
func DuplicateInput(t model.Template) model.TemplateInput {
	in := t.Input()
	in.Name = t.Name + copySuffix
	in.IsDefault = false
	return in
}

// patchCache applies an optimistic edit to the cached list and marks it
// stale so the next List reconciles with the backend.
func (s *Service) patchCache(ctx context.Context, edit func([]model.Template) []model.Template) {
	entry, found, err := s.cache.Load(ctx)
	if err != nil {
		s.log.Warn(err, "template cache unavailable")
		return
	}
	if !found {
		return
	}
	entry.Templates = edit(entry.Templates)
	entry.Stale = true
	if err := s.cache.Store(ctx, entry); err != nil {
		s.log.Warn(err, "failed to update template cache")
		if err := s.cache.MarkStale(ctx); err != nil {
			s.log.Warn(err, "failed to mark template cache stale")
		}
	}
}

func indexOf(list []model.Template, id string) int {
	return slices.IndexFunc(list, func(t model.Template) bool { return t.ID == id })
}
