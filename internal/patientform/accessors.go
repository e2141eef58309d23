package patientform

import (
	"math"
	"strconv"
	"strings"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

// PersonalInfoAccess is the personal info section plus its smoker flag.
type PersonalInfoAccess struct {
	PersonalInfoSection
}

// SetSmoker sets the smoker flag. SmokingDetails is kept either way.
func (a PersonalInfoAccess) SetSmoker(v bool) {
	mutateSection(a.store, personalInfoSlot, func(s *model.PersonalInfo) { s.IsSmoker = v })
}

// ConditionsAccess is the medical conditions section.
type ConditionsAccess struct {
	ConditionsSection
}

// Set flips one condition flag. The paired note text is kept.
func (a ConditionsAccess) Set(c Condition, v bool) {
	a.Update(c, v)
}

// DiagnosisAccess is the diagnosis and treatment section plus its item lists.
type DiagnosisAccess struct {
	DiagnosisSection
}

// List returns a copy of one item list.
func (a DiagnosisAccess) List(list DiagnosisList) []string {
	st := a.State()
	return *listRef(list)(&st)
}

// SetList replaces one item list.
func (a DiagnosisAccess) SetList(list DiagnosisList, items []string) {
	ref := listRef(list)
	items = append([]string(nil), items...)
	mutateSection(a.store, diagnosisSlot, func(s *model.DiagnosisAndTreatment) { *ref(s) = items })
}

// AddItem appends a trimmed item; blank items are ignored.
func (a DiagnosisAccess) AddItem(list DiagnosisList, item string) {
	item = strings.TrimSpace(item)
	if item == "" {
		return
	}
	ref := listRef(list)
	mutateSection(a.store, diagnosisSlot, func(s *model.DiagnosisAndTreatment) {
		cur := *ref(s)
		next := make([]string, 0, len(cur)+1)
		*ref(s) = append(append(next, cur...), item)
	})
}

// RemoveItem drops the item at index i. Out-of-range indexes are ignored.
func (a DiagnosisAccess) RemoveItem(list DiagnosisList, i int) {
	ref := listRef(list)
	if cur := a.List(list); i < 0 || i >= len(cur) {
		return
	}
	mutateSection(a.store, diagnosisSlot, func(s *model.DiagnosisAndTreatment) {
		cur := *ref(s)
		if i >= len(cur) {
			return
		}
		next := make([]string, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		*ref(s) = append(next, cur[i+1:]...)
	})
}

func listRef(list DiagnosisList) func(*model.DiagnosisAndTreatment) *[]string {
	ref, ok := diagnosisLists[list]
	if !ok {
		panic("patientform: unknown diagnosis list " + string(list))
	}
	return ref
}

func personalInfoSlot(st *model.PatientForm) **model.PersonalInfo { return &st.PersonalInfo }
func conditionsSlot(st *model.PatientForm) **model.MedicalConditions {
	return &st.MedicalConditions
}
func notesSlot(st *model.PatientForm) **model.MedicalNotes     { return &st.MedicalNotes }
func vitalsSlot(st *model.PatientForm) **model.VitalSigns      { return &st.VitalSigns }
func labsSlot(st *model.PatientForm) **model.LabResults        { return &st.LabResults }
func imagingSlot(st *model.PatientForm) **model.ImagingResults { return &st.ImagingResults }
func diagnosisSlot(st *model.PatientForm) **model.DiagnosisAndTreatment {
	return &st.DiagnosisAndTreatment
}

// PersonalInfo returns the personal info accessor.
func (s *Store) PersonalInfo() PersonalInfoAccess {
	return PersonalInfoAccess{PersonalInfoSection{store: s, slot: personalInfoSlot, fields: personalInfoFields}}
}

// MedicalConditions returns the condition flag accessor.
func (s *Store) MedicalConditions() ConditionsAccess {
	return ConditionsAccess{ConditionsSection{store: s, slot: conditionsSlot, fields: conditionFields}}
}

// MedicalNotes returns the notes accessor.
func (s *Store) MedicalNotes() NotesSection {
	return NotesSection{store: s, slot: notesSlot, fields: noteFields}
}

// VitalSigns returns the vitals accessor. Updating intake or urine output
// recomputes the fluid balance.
func (s *Store) VitalSigns() VitalSignsSection {
	return VitalSignsSection{store: s, slot: vitalsSlot, fields: vitalFields, after: recomputeBalance}
}

// LabResults returns the lab results accessor.
func (s *Store) LabResults() LabResultsSection {
	return LabResultsSection{store: s, slot: labsSlot, fields: labFields}
}

// ImagingResults returns the imaging accessor.
func (s *Store) ImagingResults() ImagingSection {
	return ImagingSection{store: s, slot: imagingSlot, fields: imagingFields}
}

// DiagnosisAndTreatment returns the diagnosis and treatment accessor.
func (s *Store) DiagnosisAndTreatment() DiagnosisAccess {
	return DiagnosisAccess{DiagnosisSection{
		store:  s,
		slot:   diagnosisSlot,
		fields: diagnosisFields,
		clone:  model.DiagnosisAndTreatment.Clone,
	}}
}

func recomputeBalance(v *model.VitalSigns, changed VitalField) {
	if changed != VitalIntake && changed != VitalUOP {
		return
	}
	v.Balance = FluidBalance(v.Intake, v.UOP)
}

// FluidBalance returns intake minus urine output. Blank or unparsable input
// counts as zero.
func FluidBalance(intake, uop string) string {
	diff := parseOrZero(intake) - parseOrZero(uop)
	diff = math.Round(diff*1e6) / 1e6
	if diff == 0 {
		diff = 0 // normalise -0
	}
	return strconv.FormatFloat(diff, 'f', -1, 64)
}

func parseOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
