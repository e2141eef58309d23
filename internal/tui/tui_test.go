package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinicdesk/internal/editor"
	"github.com/jwalitptl/clinicdesk/internal/formschema"
	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/internal/patientform"
	"github.com/jwalitptl/clinicdesk/pkg/validator"
)

var cardiology = model.Template{
	ID:        "tpl-1",
	Name:      "Cardiology",
	IsVisible: true,
	Sections: []model.Section{
		{ID: "s1", Name: "history", Label: "History", Fields: []model.Field{
			{ID: "f2", Name: "smoker", Label: "Smoker", Type: model.FieldBoolean, Order: 1},
			{ID: "f1", Name: "pain", Label: "Pain score", Type: model.FieldNumber, Required: true, Order: 0},
		}},
		{ID: "s2", Name: "plan", Label: "Plan", Fields: []model.Field{
			{ID: "f3", Name: "ward", Label: "Ward", Type: model.FieldSelect, Options: []string{"A", "B"}},
		}},
	},
	StatusOptions: []model.PatientStatusOption{
		{ID: "st1", Name: "waiting", Label: "Waiting", Color: "#cccccc", IsDefault: true},
	},
}

func TestRenderers_CoverEveryType(t *testing.T) {
	for _, ft := range model.FieldTypes {
		_, ok := renderers[ft]
		assert.True(t, ok, "no renderer for %s", ft)
	}
}

func TestTemplateForm_BindsValues(t *testing.T) {
	values := formschema.Values{"pain": "3", "smoker": "true", "ward": "B"}
	tf := NewTemplateForm(cardiology, values, "waiting")

	assert.Len(t, tf.Groups(), 3, "two sections plus the status picker")
	require.Len(t, tf.values, 3)
	assert.Equal(t, "pain", tf.values[0].field.Name, "fields follow their order")

	assert.Equal(t, values, tf.Values())
	assert.Equal(t, "waiting", tf.Status())

	values["pain"] = "9"
	assert.Equal(t, "3", tf.Values()["pain"], "form works on a copy")

	tf.values[1].flag = false
	tf.values[2].text = "A"
	got := tf.Values()
	assert.Equal(t, "false", got["smoker"])
	assert.Equal(t, "A", got["ward"])
}

func TestIntakeForm_ApplyPushesThroughStore(t *testing.T) {
	store := patientform.New()
	store.PersonalInfo().Update(patientform.PersonalName, "Jane")
	before := store.Snapshot()

	f := NewIntakeForm(store)
	assert.Len(t, f.Groups(), 2+12+1+1+len(patientform.LabGroups)+1+1)

	for _, b := range f.conditions {
		if b.key == patientform.ConditionDiabetes {
			b.value = true
		}
	}
	f.note(patientform.NoteDiabetes).value = "on insulin"
	for _, b := range f.vitals {
		switch b.key {
		case patientform.VitalIntake:
			b.value = "1200"
		case patientform.VitalUOP:
			b.value = "800"
		}
	}
	f.smoker = true
	*f.lists[patientform.ListProblems] = "chest pain\n\n  dyspnea \n"

	assert.Equal(t, []patientform.NoteField{
		patientform.NoteDiabetes, patientform.NoteOthers, patientform.NoteComplaints,
	}, f.visibleNotes())
	assert.False(t, store.MedicalConditions().Get(patientform.ConditionDiabetes), "nothing applied yet")

	f.Apply()
	after := store.Snapshot()

	assert.Equal(t, "Jane", after.PersonalInfo.Name)
	assert.True(t, after.PersonalInfo.IsSmoker)
	assert.True(t, after.MedicalConditions.Diabetes)
	assert.Equal(t, "on insulin", after.MedicalNotes.Diabetes)
	assert.Equal(t, "400", after.VitalSigns.Balance)
	assert.Equal(t, []string{"chest pain", "dyspnea"}, after.DiagnosisAndTreatment.Problems)
	assert.Equal(t, f.visibleNotes(), store.VisibleNotes())

	assert.Same(t, before.LabResults, after.LabResults, "untouched sections keep their identity")
	assert.Same(t, before.ImagingResults, after.ImagingResults)
}

func TestFieldInput_ApplyTo(t *testing.T) {
	draft := editor.NewDraft(cardiology)
	d := editor.NewFieldDialog()
	d.OpenForCreate()

	in := fieldInput{Name: " ward2 ", Label: "Ward", Type: "select", Options: "North\n\nSouth\nNorth", Default: "South"}
	require.NoError(t, in.applyTo(d))
	assert.Equal(t, []string{"North", "South"}, d.Draft().Options)
	assert.Equal(t, "ward2", d.Draft().Name)

	require.NoError(t, d.Save(func(f model.Field) error { return draft.UpsertField("s2", f) }))
	s := draft.Template().Sections[1]
	require.Len(t, s.Fields, 2)
	assert.Equal(t, "South", s.Fields[1].Default)
	assert.Equal(t, 1, s.Fields[1].Order)
}

func TestFieldInput_EditRoundTrip(t *testing.T) {
	d := editor.NewFieldDialog()
	pain := cardiology.Sections[0].Fields[1]
	d.OpenForEdit(pain)

	in := fieldInputOf(d.Draft())
	in.Type = string(model.FieldText)
	in.Options = "left over"
	in.Default = ""
	require.NoError(t, in.applyTo(d))

	f := d.Draft()
	assert.Equal(t, model.FieldText, f.Type)
	assert.Empty(t, f.Options)
	assert.Nil(t, f.Default)

	in.Type = string(model.FieldNumber)
	in.Default = "12"
	require.NoError(t, in.applyTo(d))
	assert.Equal(t, 12.0, d.Draft().Default)
}

func TestStatusInput_InvalidColorKeepsDialogOpen(t *testing.T) {
	d := editor.NewStatusDialog()
	d.OpenForCreate()
	require.NoError(t, statusInput{Name: "seen", Label: "Seen", Color: "green"}.applyTo(d))

	err := d.Save(func(model.PatientStatusOption) error { return nil })
	require.Error(t, err)
	assert.Equal(t, editor.Editing, d.Phase())
	assert.Contains(t, ErrorText(err), "color: must be a hex color")
}

func TestSectionInput_ApplyTo(t *testing.T) {
	draft := editor.NewDraft(model.Template{Name: "Empty"})
	d := editor.NewSectionDialog()
	d.OpenForCreate()
	require.NoError(t, sectionInput{Name: "vitals", Label: " Vitals "}.applyTo(d))
	require.NoError(t, d.Save(func(s model.Section) error {
		draft.UpsertSection(s)
		return nil
	}))
	require.Len(t, draft.Template().Sections, 1)
	assert.Equal(t, "Vitals", draft.Template().Sections[0].Label)
}

func TestBuilderMenu(t *testing.T) {
	empty := NewTemplateBuilder(model.Template{Name: "New"})
	assert.Len(t, empty.menu(), 6)

	full := NewTemplateBuilder(cardiology)
	assert.Len(t, full.menu(), 13)
}

func TestViews(t *testing.T) {
	table := TemplateTable([]model.Template{cardiology})
	assert.Contains(t, table, "Cardiology")
	assert.Contains(t, table, "2/3")
	assert.Contains(t, table, "default")
	assert.Contains(t, TemplateTable(nil), "No templates found")

	summary := TemplateSummary(cardiology)
	assert.Contains(t, summary, "1. Pain score [number] *")
	assert.Contains(t, summary, "A | B")
	assert.Contains(t, summary, "Waiting (default)")

	rec := model.PatientRecord{
		ID:           "pat-1",
		PatientForm:  model.PatientForm{PersonalInfo: &model.PersonalInfo{Name: "Jane"}},
		Status:       "waiting",
		CustomFields: map[string]any{"pain": 3.0},
	}
	out := RecordSummary(rec)
	assert.Contains(t, out, "Jane")
	assert.Contains(t, out, "pat-1")
	assert.Contains(t, out, "3")

	errs := validator.FieldErrors{"name": "is required", "age": "must be a whole number"}
	text := ErrorText(errs)
	assert.Contains(t, text, "age: must be a whole number")
	assert.Contains(t, text, "name: is required")
	assert.Less(t, strings.Index(text, "age:"), strings.Index(text, "name:"))
	assert.Contains(t, ErrorText(errors.New("boom")), "boom")
}
