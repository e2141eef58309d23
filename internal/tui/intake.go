package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/jwalitptl/clinicdesk/internal/patientform"
)

// binding is the local copy of one section leaf.
type binding[K ~string, V comparable] struct {
	key     K
	label   string
	initial V
	value   V
}

func bindSection[S any, K ~string, V comparable](sec patientform.Section[S, K, V]) []*binding[K, V] {
	defs := sec.Fields()
	out := make([]*binding[K, V], 0, len(defs))
	for _, d := range defs {
		v := sec.Get(d.Key)
		out = append(out, &binding[K, V]{key: d.Key, label: d.Label, initial: v, value: v})
	}
	return out
}

// applySection writes changed leaves back through the section accessor.
func applySection[S any, K ~string, V comparable](sec patientform.Section[S, K, V], binds []*binding[K, V]) {
	for _, b := range binds {
		if b.value != b.initial {
			sec.Update(b.key, b.value)
			b.initial = b.value
		}
	}
}

func inputs[K ~string](binds []*binding[K, string], describe func(K) string) []huh.Field {
	out := make([]huh.Field, 0, len(binds))
	for _, b := range binds {
		in := huh.NewInput().Key(string(b.key)).Title(b.label).Value(&b.value)
		if describe != nil {
			in = in.Description(describe(b.key))
		}
		out = append(out, in)
	}
	return out
}

func texts[K ~string](binds []*binding[K, string]) []huh.Field {
	out := make([]huh.Field, 0, len(binds))
	for _, b := range binds {
		out = append(out, huh.NewText().Key(string(b.key)).Title(b.label).Lines(3).Value(&b.value))
	}
	return out
}

// IntakeForm is the fixed patient intake rendered over a Store. Input goes to
// local copies and reaches the store only through Apply.
type IntakeForm struct {
	store *patientform.Store

	personal   []*binding[patientform.PersonalInfoField, string]
	smoker     bool
	conditions []*binding[patientform.Condition, bool]
	notes      []*binding[patientform.NoteField, string]
	vitals     []*binding[patientform.VitalField, string]
	labs       []*binding[patientform.LabField, string]
	imaging    []*binding[patientform.ImagingField, string]
	diagnosis  []*binding[patientform.DiagnosisField, string]
	lists      map[patientform.DiagnosisList]*string

	groups []*huh.Group
}

var diagnosisLists = []struct {
	list  patientform.DiagnosisList
	label string
}{
	{patientform.ListProblems, "Problems"},
	{patientform.ListSolutions, "Solutions"},
	{patientform.ListTreatmentPlan, "Treatment plan"},
}

func NewIntakeForm(store *patientform.Store) *IntakeForm {
	f := &IntakeForm{
		store:      store,
		personal:   bindSection(store.PersonalInfo().PersonalInfoSection),
		smoker:     store.PersonalInfo().State().IsSmoker,
		conditions: bindSection(store.MedicalConditions().ConditionsSection),
		notes:      bindSection(store.MedicalNotes()),
		vitals:     bindSection(store.VitalSigns()),
		labs:       bindSection(store.LabResults()),
		imaging:    bindSection(store.ImagingResults()),
		diagnosis:  bindSection(store.DiagnosisAndTreatment().DiagnosisSection),
		lists:      map[patientform.DiagnosisList]*string{},
	}
	f.build()
	return f
}

func (f *IntakeForm) build() {
	personal := append(inputs(f.personal, nil),
		huh.NewConfirm().Key("isSmoker").Title("Smoker").Value(&f.smoker))
	f.groups = append(f.groups, huh.NewGroup(personal...).Title("Personal information"))

	conditions := make([]huh.Field, 0, len(f.conditions))
	for _, b := range f.conditions {
		conditions = append(conditions, huh.NewConfirm().Key(string(b.key)).Title(b.label).Value(&b.value))
	}
	f.groups = append(f.groups, huh.NewGroup(conditions...).Title("Medical conditions"))

	for _, c := range f.conditions {
		note := f.note(patientform.NoteFor(c.key))
		flag := &c.value
		f.groups = append(f.groups, huh.NewGroup(texts([]*binding[patientform.NoteField, string]{note})...).
			Title("Medical notes").
			WithHideFunc(func() bool { return !*flag }))
	}
	f.groups = append(f.groups, huh.NewGroup(texts([]*binding[patientform.NoteField, string]{
		f.note(patientform.NoteOthers), f.note(patientform.NoteComplaints),
	})...).Title("Medical notes"))

	f.groups = append(f.groups, huh.NewGroup(inputs(f.vitals, nil)...).
		Title("Vital signs").
		Description("Fluid balance is computed from intake and urine output"))

	for _, g := range patientform.LabGroups {
		var binds []*binding[patientform.LabField, string]
		for _, b := range f.labs {
			if patientform.InfoFor(b.key).Group == g {
				binds = append(binds, b)
			}
		}
		f.groups = append(f.groups, huh.NewGroup(inputs(binds, func(k patientform.LabField) string {
			return patientform.InfoFor(k).Unit
		})...).Title("Lab results: "+string(g)))
	}

	f.groups = append(f.groups, huh.NewGroup(texts(f.imaging)...).Title("Imaging"))

	diagnosis := texts(f.diagnosis)
	for _, l := range diagnosisLists {
		text := strings.Join(f.store.DiagnosisAndTreatment().List(l.list), "\n")
		f.lists[l.list] = &text
		diagnosis = append(diagnosis, huh.NewText().
			Key(string(l.list)).
			Title(l.label).
			Description("One item per line").
			Lines(4).
			Value(f.lists[l.list]))
	}
	f.groups = append(f.groups, huh.NewGroup(diagnosis...).Title("Diagnosis and treatment"))
}

func (f *IntakeForm) note(key patientform.NoteField) *binding[patientform.NoteField, string] {
	for _, b := range f.notes {
		if b.key == key {
			return b
		}
	}
	panic("tui: unknown note " + string(key))
}

// Groups returns the huh groups for embedding in a larger form.
func (f *IntakeForm) Groups() []*huh.Group {
	return f.groups
}

// visibleNotes lists the note keys shown for the locally toggled conditions.
func (f *IntakeForm) visibleNotes() []patientform.NoteField {
	var out []patientform.NoteField
	for _, c := range f.conditions {
		if c.value {
			out = append(out, patientform.NoteFor(c.key))
		}
	}
	return append(out, patientform.NoteOthers, patientform.NoteComplaints)
}

// Apply pushes every edited value into the store, section by section.
func (f *IntakeForm) Apply() {
	applySection(f.store.PersonalInfo().PersonalInfoSection, f.personal)
	if f.smoker != f.store.PersonalInfo().State().IsSmoker {
		f.store.PersonalInfo().SetSmoker(f.smoker)
	}
	applySection(f.store.MedicalConditions().ConditionsSection, f.conditions)
	applySection(f.store.MedicalNotes(), f.notes)
	applySection(f.store.VitalSigns(), f.vitals)
	applySection(f.store.LabResults(), f.labs)
	applySection(f.store.ImagingResults(), f.imaging)
	applySection(f.store.DiagnosisAndTreatment().DiagnosisSection, f.diagnosis)

	dx := f.store.DiagnosisAndTreatment()
	for list, text := range f.lists {
		items := splitLines(*text)
		if !equalStrings(items, dx.List(list)) {
			dx.SetList(list, items)
		}
	}
}

// Run shows the form and applies the input when the user completes it.
func (f *IntakeForm) Run(ctx context.Context) error {
	if err := huh.NewForm(f.groups...).WithTheme(Theme()).RunWithContext(ctx); err != nil {
		return err
	}
	f.Apply()
	return nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
