package editor

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinicdesk/internal/formschema"
	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/pkg/validator"
)

var checker = validator.New()

// NewID returns a client-side placeholder id for an unsaved item.
func NewID() string {
	return "tmp-" + uuid.NewString()
}

// FieldDialog edits one template field.
type FieldDialog struct {
	*Dialog[model.Field]
}

func NewFieldDialog() *FieldDialog {
	return &FieldDialog{NewDialog(model.Field.Clone, validateField)}
}

// OpenForCreate starts a new text field.
func (d *FieldDialog) OpenForCreate() {
	d.Dialog.OpenForCreate(model.Field{
		ID:      NewID(),
		Type:    model.FieldText,
		Options: []string{},
	})
}

func (d *FieldDialog) SetName(v string) error {
	return d.Edit(func(f *model.Field) { f.Name = v })
}

func (d *FieldDialog) SetLabel(v string) error {
	return d.Edit(func(f *model.Field) { f.Label = v })
}

func (d *FieldDialog) SetRequired(v bool) error {
	return d.Edit(func(f *model.Field) { f.Required = v })
}

func (d *FieldDialog) SetDefault(v any) error {
	return d.Edit(func(f *model.Field) { f.Default = v })
}

func (d *FieldDialog) SetDescription(v string) error {
	return d.Edit(func(f *model.Field) { f.Description = v })
}

// SetType changes the field type. Moving away from select drops the options.
func (d *FieldDialog) SetType(t model.FieldType) error {
	return d.Edit(func(f *model.Field) {
		f.Type = t
		if t != model.FieldSelect {
			f.Options = []string{}
		}
	})
}

// AddOption appends a trimmed option. Blank and duplicate text is ignored.
func (d *FieldDialog) AddOption(text string) error {
	text = strings.TrimSpace(text)
	return d.Edit(func(f *model.Field) {
		if text == "" {
			return
		}
		for _, o := range f.Options {
			if o == text {
				return
			}
		}
		f.Options = append(f.Options, text)
	})
}

// RemoveOption drops the option at i. Out-of-range indexes are ignored.
func (d *FieldDialog) RemoveOption(i int) error {
	return d.Edit(func(f *model.Field) {
		if i < 0 || i >= len(f.Options) {
			return
		}
		f.Options = append(f.Options[:i:i], f.Options[i+1:]...)
	})
}

func validateField(f model.Field) error {
	errs := validator.FieldErrors{}
	if err := checker.Validate(f); err != nil {
		if fe, ok := err.(validator.FieldErrors); ok {
			for k, v := range fe {
				errs.Add(k, v)
			}
		} else {
			return err
		}
	}
	if _, ok := formschema.KindOf(f.Type); !ok && f.Type != "" {
		errs.Add("type", "has an unsupported value")
	}
	if f.Type == model.FieldSelect && len(formschema.CleanOptions(f.Options)) == 0 {
		errs.Add("options", "select fields need at least one option")
	}
	if f.Default != nil && f.Default != "" {
		if err := formschema.ValidateValue(f, formschema.SeedValue(f)); err != nil {
			errs.Add("defaultValue", err.Error())
		}
	}
	return errs.Err()
}

// StatusDialog edits one patient status option.
type StatusDialog struct {
	*Dialog[model.PatientStatusOption]
}

func NewStatusDialog() *StatusDialog {
	return &StatusDialog{NewDialog(identity[model.PatientStatusOption], validateStatus)}
}

// OpenForCreate starts a new status with a neutral color.
func (d *StatusDialog) OpenForCreate() {
	d.Dialog.OpenForCreate(model.PatientStatusOption{ID: NewID(), Color: "#6b7280"})
}

func (d *StatusDialog) SetName(v string) error {
	return d.Edit(func(s *model.PatientStatusOption) { s.Name = v })
}

func (d *StatusDialog) SetLabel(v string) error {
	return d.Edit(func(s *model.PatientStatusOption) { s.Label = v })
}

func (d *StatusDialog) SetColor(v string) error {
	return d.Edit(func(s *model.PatientStatusOption) { s.Color = strings.TrimSpace(v) })
}

func (d *StatusDialog) SetDefault(v bool) error {
	return d.Edit(func(s *model.PatientStatusOption) { s.IsDefault = v })
}

func (d *StatusDialog) SetDescription(v string) error {
	return d.Edit(func(s *model.PatientStatusOption) { s.Description = v })
}

func validateStatus(s model.PatientStatusOption) error {
	return checker.Validate(s)
}

// SectionDialog edits a section's name, label and description. Fields are
// carried through untouched.
type SectionDialog struct {
	*Dialog[model.Section]
}

func NewSectionDialog() *SectionDialog {
	return &SectionDialog{NewDialog(model.Section.Clone, validateSection)}
}

func (d *SectionDialog) OpenForCreate() {
	d.Dialog.OpenForCreate(model.Section{ID: NewID(), Fields: []model.Field{}})
}

func (d *SectionDialog) SetName(v string) error {
	return d.Edit(func(s *model.Section) { s.Name = v })
}

func (d *SectionDialog) SetLabel(v string) error {
	return d.Edit(func(s *model.Section) { s.Label = v })
}

func (d *SectionDialog) SetDescription(v string) error {
	return d.Edit(func(s *model.Section) { s.Description = v })
}

func validateSection(s model.Section) error {
	return checker.Validate(s)
}

func identity[T any](v T) T { return v }
