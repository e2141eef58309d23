// Package tui renders the clinic forms as huh terminal forms.
package tui

import (
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/jwalitptl/clinicdesk/internal/formschema"
	"github.com/jwalitptl/clinicdesk/internal/model"
)

// value is the local copy a rendered template field is bound to.
type value struct {
	field model.Field
	text  string
	flag  bool
}

func (v *value) raw() string {
	if v.field.Type == model.FieldBoolean {
		return strconv.FormatBool(v.flag)
	}
	return v.text
}

type renderer func(v *value) huh.Field

// renderers maps every field type to its huh widget.
var renderers = map[model.FieldType]renderer{
	model.FieldText:     renderInput,
	model.FieldNumber:   renderInput,
	model.FieldDate:     renderInput,
	model.FieldEmail:    renderInput,
	model.FieldPhone:    renderInput,
	model.FieldTextarea: renderText,
	model.FieldBoolean:  renderConfirm,
	model.FieldSelect:   renderSelect,
}

func title(f model.Field) string {
	if f.Required {
		return f.Label + " *"
	}
	return f.Label
}

func description(f model.Field) string {
	if f.Type == model.FieldDate && f.Description == "" {
		return "Format: " + formschema.DateLayout
	}
	return f.Description
}

func validate(f model.Field) func(string) error {
	return func(s string) error { return formschema.ValidateValue(f, s) }
}

func renderInput(v *value) huh.Field {
	return huh.NewInput().
		Key(v.field.Name).
		Title(title(v.field)).
		Description(description(v.field)).
		Value(&v.text).
		Validate(validate(v.field))
}

func renderText(v *value) huh.Field {
	return huh.NewText().
		Key(v.field.Name).
		Title(title(v.field)).
		Description(v.field.Description).
		Lines(4).
		Value(&v.text).
		Validate(validate(v.field))
}

func renderConfirm(v *value) huh.Field {
	return huh.NewConfirm().
		Key(v.field.Name).
		Title(title(v.field)).
		Description(v.field.Description).
		Affirmative("Yes").
		Negative("No").
		Value(&v.flag)
}

func renderSelect(v *value) huh.Field {
	opts := make([]huh.Option[string], 0, len(v.field.Options)+1)
	if !v.field.Required {
		opts = append(opts, huh.NewOption("(none)", ""))
	}
	for _, o := range v.field.Options {
		opts = append(opts, huh.NewOption(o, o))
	}
	return huh.NewSelect[string]().
		Key(v.field.Name).
		Title(title(v.field)).
		Description(v.field.Description).
		Options(opts...).
		Value(&v.text).
		Validate(validate(v.field))
}

// TemplateForm renders the custom portion of a patient record: one group per
// section in display order, plus a status picker.
type TemplateForm struct {
	template model.Template
	values   []*value
	status   string
	groups   []*huh.Group
}

// NewTemplateForm binds the form to a copy of values. status is the current
// status name.
func NewTemplateForm(t model.Template, values formschema.Values, status string) *TemplateForm {
	tf := &TemplateForm{template: t.Clone(), status: status}

	for _, s := range formschema.Sorted(tf.template) {
		fields := make([]huh.Field, 0, len(s.Fields))
		for _, f := range s.Fields {
			render, ok := renderers[f.Type]
			if !ok {
				continue
			}
			v := &value{field: f, text: values[f.Name]}
			if f.Type == model.FieldBoolean {
				v.flag, _ = strconv.ParseBool(values[f.Name])
			}
			tf.values = append(tf.values, v)
			fields = append(fields, render(v))
		}
		if len(fields) == 0 {
			continue
		}
		tf.groups = append(tf.groups, huh.NewGroup(fields...).Title(s.Label).Description(s.Description))
	}

	if len(tf.template.StatusOptions) > 0 {
		opts := make([]huh.Option[string], 0, len(tf.template.StatusOptions))
		for _, st := range tf.template.StatusOptions {
			opts = append(opts, huh.NewOption(st.Label, st.Name))
		}
		tf.groups = append(tf.groups, huh.NewGroup(
			huh.NewSelect[string]().Title("Patient status").Options(opts...).Value(&tf.status),
		))
	}
	return tf
}

// Groups returns the huh groups for embedding in a larger form.
func (tf *TemplateForm) Groups() []*huh.Group {
	return tf.groups
}

// Values returns the raw input keyed by field name.
func (tf *TemplateForm) Values() formschema.Values {
	out := make(formschema.Values, len(tf.values))
	for _, v := range tf.values {
		out[v.field.Name] = v.raw()
	}
	return out
}

// Status returns the chosen status name.
func (tf *TemplateForm) Status() string {
	return tf.status
}
