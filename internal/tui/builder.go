package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/jwalitptl/clinicdesk/internal/editor"
	"github.com/jwalitptl/clinicdesk/internal/formschema"
	"github.com/jwalitptl/clinicdesk/internal/model"
)

// ErrAborted is returned when the user leaves the builder without saving.
var ErrAborted = errors.New("template builder aborted")

const (
	actionDetails       = "details"
	actionAddSection    = "add-section"
	actionEditSection   = "edit-section"
	actionRemoveSection = "remove-section"
	actionAddField      = "add-field"
	actionEditField     = "edit-field"
	actionRemoveField   = "remove-field"
	actionAddStatus     = "add-status"
	actionEditStatus    = "edit-status"
	actionRemoveStatus  = "remove-status"
	actionPreview       = "preview"
	actionSave          = "save"
	actionQuit          = "quit"
)

// fieldInput is the flat form state of the field dialog.
type fieldInput struct {
	Name        string
	Label       string
	Type        string
	Required    bool
	Description string
	Options     string
	Default     string
}

func fieldInputOf(f model.Field) fieldInput {
	in := fieldInput{
		Name:        f.Name,
		Label:       f.Label,
		Type:        string(f.Type),
		Required:    f.Required,
		Description: f.Description,
		Options:     strings.Join(f.Options, "\n"),
	}
	if f.Default != nil {
		in.Default = formschema.SeedValue(f)
	}
	return in
}

// applyTo replays the form state onto an open field dialog.
func (in fieldInput) applyTo(d *editor.FieldDialog) error {
	steps := []func() error{
		func() error { return d.SetName(strings.TrimSpace(in.Name)) },
		func() error { return d.SetLabel(strings.TrimSpace(in.Label)) },
		func() error { return d.SetType(model.FieldType(in.Type)) },
		func() error { return d.SetRequired(in.Required) },
		func() error { return d.SetDescription(in.Description) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	for len(d.Draft().Options) > 0 {
		if err := d.RemoveOption(0); err != nil {
			return err
		}
	}
	if model.FieldType(in.Type) == model.FieldSelect {
		for _, o := range splitLines(in.Options) {
			if err := d.AddOption(o); err != nil {
				return err
			}
		}
	}

	raw := strings.TrimSpace(in.Default)
	if raw == "" {
		return d.SetDefault(nil)
	}
	kind, ok := formschema.KindOf(model.FieldType(in.Type))
	if !ok {
		return d.SetDefault(raw)
	}
	v, err := kind.Encode(raw)
	if err != nil {
		return d.SetDefault(raw)
	}
	return d.SetDefault(v)
}

type statusInput struct {
	Name        string
	Label       string
	Color       string
	IsDefault   bool
	Description string
}

func (in statusInput) applyTo(d *editor.StatusDialog) error {
	if err := d.SetName(strings.TrimSpace(in.Name)); err != nil {
		return err
	}
	if err := d.SetLabel(strings.TrimSpace(in.Label)); err != nil {
		return err
	}
	if err := d.SetColor(in.Color); err != nil {
		return err
	}
	if err := d.SetDefault(in.IsDefault); err != nil {
		return err
	}
	return d.SetDescription(in.Description)
}

type sectionInput struct {
	Name        string
	Label       string
	Description string
}

func (in sectionInput) applyTo(d *editor.SectionDialog) error {
	if err := d.SetName(strings.TrimSpace(in.Name)); err != nil {
		return err
	}
	if err := d.SetLabel(strings.TrimSpace(in.Label)); err != nil {
		return err
	}
	return d.SetDescription(in.Description)
}

// TemplateBuilder is the interactive template editor: a menu loop over the
// section, field and status dialogs working on one draft.
type TemplateBuilder struct {
	draft    *editor.TemplateDraft
	sections *editor.SectionDialog
	fields   *editor.FieldDialog
	statuses *editor.StatusDialog
	run      func(ctx context.Context, f *huh.Form) error
}

func NewTemplateBuilder(t model.Template) *TemplateBuilder {
	return &TemplateBuilder{
		draft:    editor.NewDraft(t),
		sections: editor.NewSectionDialog(),
		fields:   editor.NewFieldDialog(),
		statuses: editor.NewStatusDialog(),
		run: func(ctx context.Context, f *huh.Form) error {
			return f.WithTheme(Theme()).RunWithContext(ctx)
		},
	}
}

// Draft exposes the working copy.
func (b *TemplateBuilder) Draft() *editor.TemplateDraft {
	return b.draft
}

// Run loops until the user saves a valid template or quits.
func (b *TemplateBuilder) Run(ctx context.Context) (model.TemplateInput, error) {
	for {
		var action string
		menu := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(TitleStyle.Render("Template: " + b.draft.Template().Name)).
				Options(b.menu()...).
				Value(&action),
		))
		if err := b.run(ctx, menu); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return model.TemplateInput{}, ErrAborted
			}
			return model.TemplateInput{}, err
		}

		switch action {
		case actionQuit:
			return model.TemplateInput{}, ErrAborted
		case actionSave:
			if err := b.draft.Validate(); err != nil {
				b.notify(ctx, "Template is not valid", ErrorText(err))
				continue
			}
			return b.draft.Input(), nil
		case actionPreview:
			b.notify(ctx, "Preview", TemplateSummary(b.draft.Template()))
		default:
			if err := b.dispatch(ctx, action); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					continue
				}
				b.notify(ctx, "Not saved", ErrorText(err))
			}
		}
	}
}

func (b *TemplateBuilder) menu() []huh.Option[string] {
	t := b.draft.Template()
	opts := []huh.Option[string]{
		huh.NewOption("Edit name and flags", actionDetails),
		huh.NewOption("Add section", actionAddSection),
	}
	if len(t.Sections) > 0 {
		opts = append(opts,
			huh.NewOption("Edit section", actionEditSection),
			huh.NewOption("Remove section", actionRemoveSection),
			huh.NewOption("Add field", actionAddField),
			huh.NewOption("Edit field", actionEditField),
			huh.NewOption("Remove field", actionRemoveField),
		)
	}
	opts = append(opts, huh.NewOption("Add status", actionAddStatus))
	if len(t.StatusOptions) > 0 {
		opts = append(opts,
			huh.NewOption("Edit status", actionEditStatus),
			huh.NewOption("Remove status", actionRemoveStatus),
		)
	}
	return append(opts,
		huh.NewOption("Preview", actionPreview),
		huh.NewOption("Save", actionSave),
		huh.NewOption("Quit without saving", actionQuit),
	)
}

func (b *TemplateBuilder) dispatch(ctx context.Context, action string) error {
	switch action {
	case actionDetails:
		return b.editDetails(ctx)
	case actionAddSection:
		b.sections.OpenForCreate()
		return b.sectionForm(ctx)
	case actionEditSection:
		s, err := b.pickSection(ctx)
		if err != nil {
			return err
		}
		b.sections.OpenForEdit(s)
		return b.sectionForm(ctx)
	case actionRemoveSection:
		s, err := b.pickSection(ctx)
		if err != nil {
			return err
		}
		return b.draft.RemoveSection(s.ID)
	case actionAddField:
		s, err := b.pickSection(ctx)
		if err != nil {
			return err
		}
		b.fields.OpenForCreate()
		return b.fieldForm(ctx, s.ID)
	case actionEditField:
		s, err := b.pickSection(ctx)
		if err != nil {
			return err
		}
		f, err := b.pickField(ctx, s)
		if err != nil {
			return err
		}
		b.fields.OpenForEdit(f)
		return b.fieldForm(ctx, s.ID)
	case actionRemoveField:
		s, err := b.pickSection(ctx)
		if err != nil {
			return err
		}
		f, err := b.pickField(ctx, s)
		if err != nil {
			return err
		}
		return b.draft.RemoveField(s.ID, f.ID)
	case actionAddStatus:
		b.statuses.OpenForCreate()
		return b.statusForm(ctx)
	case actionEditStatus:
		st, err := b.pickStatus(ctx)
		if err != nil {
			return err
		}
		b.statuses.OpenForEdit(st)
		return b.statusForm(ctx)
	case actionRemoveStatus:
		st, err := b.pickStatus(ctx)
		if err != nil {
			return err
		}
		return b.draft.RemoveStatus(st.ID)
	}
	return fmt.Errorf("unknown action %q", action)
}

func (b *TemplateBuilder) editDetails(ctx context.Context) error {
	t := b.draft.Template()
	name, desc, visible, def := t.Name, t.Description, t.IsVisible, t.IsDefault
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&name).Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("name is required")
			}
			return nil
		}),
		huh.NewText().Title("Description").Lines(3).Value(&desc),
		huh.NewConfirm().Title("Visible to staff").Value(&visible),
		huh.NewConfirm().Title("Default template").Value(&def),
	))
	if err := b.run(ctx, form); err != nil {
		return err
	}
	b.draft.SetName(strings.TrimSpace(name))
	b.draft.SetDescription(desc)
	b.draft.SetVisible(visible)
	b.draft.SetDefault(def)
	return nil
}

func (b *TemplateBuilder) sectionForm(ctx context.Context) error {
	cur := b.sections.Draft()
	in := sectionInput{Name: cur.Name, Label: cur.Label, Description: cur.Description}
	for {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Name").Description("Machine name, e.g. history").Value(&in.Name),
			huh.NewInput().Title("Label").Value(&in.Label),
			huh.NewText().Title("Description").Lines(2).Value(&in.Description),
		).Title("Section"))
		if err := b.run(ctx, form); err != nil {
			b.sections.Cancel()
			return err
		}
		if err := in.applyTo(b.sections); err != nil {
			return err
		}
		err := b.sections.Save(func(s model.Section) error {
			b.draft.UpsertSection(s)
			return nil
		})
		if err == nil {
			return nil
		}
		b.notify(ctx, "Section is not valid", ErrorText(err))
	}
}

func (b *TemplateBuilder) fieldForm(ctx context.Context, sectionID string) error {
	in := fieldInputOf(b.fields.Draft())
	types := make([]huh.Option[string], 0, len(model.FieldTypes))
	for _, t := range model.FieldTypes {
		types = append(types, huh.NewOption(string(t), string(t)))
	}
	for {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Name").Description("Key in the submitted payload").Value(&in.Name),
				huh.NewInput().Title("Label").Value(&in.Label),
				huh.NewSelect[string]().Title("Type").Options(types...).Value(&in.Type),
				huh.NewConfirm().Title("Required").Value(&in.Required),
				huh.NewInput().Title("Description").Value(&in.Description),
			).Title("Field"),
			huh.NewGroup(
				huh.NewText().Title("Options").Description("One option per line").Lines(5).Value(&in.Options),
			).WithHideFunc(func() bool { return in.Type != string(model.FieldSelect) }),
			huh.NewGroup(
				huh.NewInput().Title("Default value").Value(&in.Default),
			),
		)
		if err := b.run(ctx, form); err != nil {
			b.fields.Cancel()
			return err
		}
		if err := in.applyTo(b.fields); err != nil {
			return err
		}
		err := b.fields.Save(func(f model.Field) error {
			return b.draft.UpsertField(sectionID, f)
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, editor.ErrSectionNotFound) {
			b.fields.Cancel()
			return err
		}
		b.notify(ctx, "Field is not valid", ErrorText(err))
	}
}

func (b *TemplateBuilder) statusForm(ctx context.Context) error {
	cur := b.statuses.Draft()
	in := statusInput{Name: cur.Name, Label: cur.Label, Color: cur.Color, IsDefault: cur.IsDefault, Description: cur.Description}
	for {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Name").Value(&in.Name),
			huh.NewInput().Title("Label").Value(&in.Label),
			huh.NewInput().Title("Color").Description("Hex color, e.g. #22c55e").Value(&in.Color),
			huh.NewConfirm().Title("Default status").Value(&in.IsDefault),
			huh.NewInput().Title("Description").Value(&in.Description),
		).Title("Patient status"))
		if err := b.run(ctx, form); err != nil {
			b.statuses.Cancel()
			return err
		}
		if err := in.applyTo(b.statuses); err != nil {
			return err
		}
		err := b.statuses.Save(func(s model.PatientStatusOption) error {
			b.draft.UpsertStatus(s)
			return nil
		})
		if err == nil {
			return nil
		}
		b.notify(ctx, "Status is not valid", ErrorText(err))
	}
}

func (b *TemplateBuilder) pickSection(ctx context.Context) (model.Section, error) {
	t := b.draft.Template()
	opts := make([]huh.Option[string], 0, len(t.Sections))
	for _, s := range t.Sections {
		opts = append(opts, huh.NewOption(s.Label, s.ID))
	}
	var id string
	if err := b.run(ctx, huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Section").Options(opts...).Value(&id),
	))); err != nil {
		return model.Section{}, err
	}
	for _, s := range t.Sections {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Section{}, editor.ErrSectionNotFound
}

func (b *TemplateBuilder) pickField(ctx context.Context, s model.Section) (model.Field, error) {
	fields := formschema.SortedFields(s)
	if len(fields) == 0 {
		return model.Field{}, editor.ErrFieldNotFound
	}
	opts := make([]huh.Option[string], 0, len(fields))
	for _, f := range fields {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", f.Label, f.Type), f.ID))
	}
	var id string
	if err := b.run(ctx, huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Field").Options(opts...).Value(&id),
	))); err != nil {
		return model.Field{}, err
	}
	for _, f := range fields {
		if f.ID == id {
			return f, nil
		}
	}
	return model.Field{}, editor.ErrFieldNotFound
}

func (b *TemplateBuilder) pickStatus(ctx context.Context) (model.PatientStatusOption, error) {
	t := b.draft.Template()
	opts := make([]huh.Option[string], 0, len(t.StatusOptions))
	for _, s := range t.StatusOptions {
		opts = append(opts, huh.NewOption(s.Label, s.ID))
	}
	var id string
	if err := b.run(ctx, huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Status").Options(opts...).Value(&id),
	))); err != nil {
		return model.PatientStatusOption{}, err
	}
	for _, s := range t.StatusOptions {
		if s.ID == id {
			return s, nil
		}
	}
	return model.PatientStatusOption{}, editor.ErrStatusNotFound
}

func (b *TemplateBuilder) notify(ctx context.Context, title, body string) {
	_ = b.run(ctx, huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(title).Description(body),
	)))
}
