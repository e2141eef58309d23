package model

import (
	"time"
)

// FieldType is the input kind of a template field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldBoolean  FieldType = "boolean"
	FieldSelect   FieldType = "select"
	FieldTextarea FieldType = "textarea"
	FieldEmail    FieldType = "email"
	FieldPhone    FieldType = "phone"
)

// FieldTypes lists every supported type in display order.
var FieldTypes = []FieldType{
	FieldText, FieldNumber, FieldDate, FieldBoolean,
	FieldSelect, FieldTextarea, FieldEmail, FieldPhone,
}

// Field is a single typed input definition within a section.
type Field struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name" validate:"required"`
	Label       string    `json:"label" validate:"required"`
	Type        FieldType `json:"type" validate:"required"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	Default     any       `json:"defaultValue,omitempty"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
}

// Clone returns a copy that shares no slices with f.
func (f Field) Clone() Field {
	if f.Options != nil {
		f.Options = append([]string(nil), f.Options...)
	}
	return f
}

// Section is a named, ordered group of fields.
type Section struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name" validate:"required"`
	Label       string  `json:"label" validate:"required"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	if s.Fields != nil {
		fields := make([]Field, len(s.Fields))
		for i, f := range s.Fields {
			fields[i] = f.Clone()
		}
		s.Fields = fields
	}
	return s
}

// PatientStatusOption is one selectable patient status of a template.
type PatientStatusOption struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Label       string `json:"label" validate:"required"`
	Color       string `json:"color" validate:"required,hexcolor"`
	IsDefault   bool   `json:"isDefault"`
	Description string `json:"description,omitempty"`
}

// Template is a complete schema for the custom portion of a patient record.
type Template struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	Sections      []Section             `json:"sections"`
	StatusOptions []PatientStatusOption `json:"statusOptions,omitempty"`
	IsVisible     bool                  `json:"isVisible"`
	IsDefault     bool                  `json:"isDefault"`
	CreatedBy     string                `json:"createdBy,omitempty"`
	CreatedAt     *time.Time            `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time            `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy of t.
func (t Template) Clone() Template {
	if t.Sections != nil {
		sections := make([]Section, len(t.Sections))
		for i, s := range t.Sections {
			sections[i] = s.Clone()
		}
		t.Sections = sections
	}
	if t.StatusOptions != nil {
		t.StatusOptions = append([]PatientStatusOption(nil), t.StatusOptions...)
	}
	return t
}

// Input returns the create/update payload for t.
func (t Template) Input() TemplateInput {
	c := t.Clone()
	return TemplateInput{
		Name:          c.Name,
		Description:   c.Description,
		Sections:      c.Sections,
		StatusOptions: c.StatusOptions,
		IsVisible:     c.IsVisible,
		IsDefault:     c.IsDefault,
	}
}

// DefaultStatus returns the status flagged as default, if any.
func (t Template) DefaultStatus() (PatientStatusOption, bool) {
	for _, s := range t.StatusOptions {
		if s.IsDefault {
			return s, true
		}
	}
	return PatientStatusOption{}, false
}

// TemplateInput is the body of POST /templates and PUT /templates/:id.
type TemplateInput struct {
	Name          string                `json:"name" validate:"required"`
	Description   string                `json:"description,omitempty"`
	Sections      []Section             `json:"sections"`
	StatusOptions []PatientStatusOption `json:"statusOptions,omitempty"`
	IsVisible     bool                  `json:"isVisible"`
	IsDefault     bool                  `json:"isDefault"`
}
