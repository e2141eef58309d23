package editor

import (
	"errors"
	"slices"
	"sync"

	"github.com/jwalitptl/clinicdesk/internal/formschema"
	"github.com/jwalitptl/clinicdesk/internal/model"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrFieldNotFound   = errors.New("field not found")
	ErrStatusNotFound  = errors.New("status option not found")
)

// TemplateDraft is the working copy of a template in the builder. Nothing
// reaches the backend until Input is sent.
type TemplateDraft struct {
	mu sync.RWMutex
	t  model.Template
}

// NewDraft copies t into a draft.
func NewDraft(t model.Template) *TemplateDraft {
	return &TemplateDraft{t: t.Clone()}
}

// Template returns a copy of the draft.
func (d *TemplateDraft) Template() model.Template {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.t.Clone()
}

// Input builds the create/update payload.
func (d *TemplateDraft) Input() model.TemplateInput {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.t.Input()
}

// Validate runs the schema checks over the draft.
func (d *TemplateDraft) Validate() error {
	return formschema.ValidateTemplate(d.Template())
}

func (d *TemplateDraft) SetName(v string) {
	d.mu.Lock()
	d.t.Name = v
	d.mu.Unlock()
}

func (d *TemplateDraft) SetDescription(v string) {
	d.mu.Lock()
	d.t.Description = v
	d.mu.Unlock()
}

func (d *TemplateDraft) SetVisible(v bool) {
	d.mu.Lock()
	d.t.IsVisible = v
	d.mu.Unlock()
}

func (d *TemplateDraft) SetDefault(v bool) {
	d.mu.Lock()
	d.t.IsDefault = v
	d.mu.Unlock()
}

// UpsertSection replaces the section with the same id or appends it.
func (d *TemplateDraft) UpsertSection(s model.Section) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s = s.Clone()
	if s.Fields == nil {
		s.Fields = []model.Field{}
	}
	if i := d.sectionIndex(s.ID); i >= 0 {
		d.t.Sections[i] = s
		return
	}
	d.t.Sections = append(d.t.Sections, s)
}

func (d *TemplateDraft) RemoveSection(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.sectionIndex(id)
	if i < 0 {
		return ErrSectionNotFound
	}
	d.t.Sections = slices.Delete(d.t.Sections, i, i+1)
	return nil
}

// MoveSection moves a section to position to, clamped to the list bounds.
func (d *TemplateDraft) MoveSection(id string, to int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.sectionIndex(id)
	if i < 0 {
		return ErrSectionNotFound
	}
	d.t.Sections = move(d.t.Sections, i, to)
	return nil
}

// UpsertField normalizes f and writes it into a section. A new field goes
// last; an existing one keeps its position.
func (d *TemplateDraft) UpsertField(sectionID string, f model.Field) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	si := d.sectionIndex(sectionID)
	if si < 0 {
		return ErrSectionNotFound
	}
	sec := &d.t.Sections[si]
	f = formschema.Normalize(f)

	if fi := fieldIndex(sec.Fields, f.ID); fi >= 0 {
		f.Order = sec.Fields[fi].Order
		sec.Fields[fi] = f
		return nil
	}
	f.Order = nextOrder(sec.Fields)
	sec.Fields = append(sec.Fields, f)
	return nil
}

func (d *TemplateDraft) RemoveField(sectionID, fieldID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	si := d.sectionIndex(sectionID)
	if si < 0 {
		return ErrSectionNotFound
	}
	sec := &d.t.Sections[si]
	fi := fieldIndex(sec.Fields, fieldID)
	if fi < 0 {
		return ErrFieldNotFound
	}
	sec.Fields = slices.Delete(sec.Fields, fi, fi+1)
	sec.Fields = densify(sec.Fields)
	return nil
}

// MoveField moves a field to render position to and renumbers the section
// so orders run 0..n-1.
func (d *TemplateDraft) MoveField(sectionID, fieldID string, to int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	si := d.sectionIndex(sectionID)
	if si < 0 {
		return ErrSectionNotFound
	}
	sec := &d.t.Sections[si]
	fields := densify(sec.Fields)
	fi := fieldIndex(fields, fieldID)
	if fi < 0 {
		return ErrFieldNotFound
	}
	sec.Fields = renumber(move(fields, fi, to))
	return nil
}

// UpsertStatus writes a status option. A default status clears the flag on
// every other option.
func (d *TemplateDraft) UpsertStatus(s model.PatientStatusOption) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s.IsDefault {
		for i := range d.t.StatusOptions {
			d.t.StatusOptions[i].IsDefault = false
		}
	}
	for i, cur := range d.t.StatusOptions {
		if cur.ID == s.ID {
			d.t.StatusOptions[i] = s
			return
		}
	}
	d.t.StatusOptions = append(d.t.StatusOptions, s)
}

func (d *TemplateDraft) RemoveStatus(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, cur := range d.t.StatusOptions {
		if cur.ID == id {
			d.t.StatusOptions = slices.Delete(d.t.StatusOptions, i, i+1)
			return nil
		}
	}
	return ErrStatusNotFound
}

func (d *TemplateDraft) sectionIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(d.t.Sections, func(s model.Section) bool { return s.ID == id })
}

func fieldIndex(fields []model.Field, id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(fields, func(f model.Field) bool { return f.ID == id })
}

func nextOrder(fields []model.Field) int {
	next := 0
	for _, f := range fields {
		if f.Order >= next {
			next = f.Order + 1
		}
	}
	return next
}

// densify sorts fields by order and renumbers them from zero.
func densify(fields []model.Field) []model.Field {
	return renumber(formschema.SortedFields(model.Section{Fields: fields}))
}

func renumber(fields []model.Field) []model.Field {
	for i := range fields {
		fields[i].Order = i
	}
	return fields
}

func move[T any](items []T, from, to int) []T {
	if to < 0 {
		to = 0
	}
	if to >= len(items) {
		to = len(items) - 1
	}
	if from == to {
		return items
	}
	v := items[from]
	items = slices.Delete(items, from, from+1)
	return slices.Insert(items, to, v)
}
