package patientform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

func TestNew_AllSectionsEmpty(t *testing.T) {
	s := New()
	st := s.Snapshot()

	require.NotNil(t, st.PersonalInfo)
	require.NotNil(t, st.DiagnosisAndTreatment)
	assert.Equal(t, model.PersonalInfo{}, *st.PersonalInfo)
	assert.Equal(t, model.VitalSigns{}, *st.VitalSigns)
}

func TestUpdate_LeavesOtherSectionsUntouched(t *testing.T) {
	s := New()
	before := s.Snapshot()

	s.PersonalInfo().Update(PersonalName, "Jane Doe")
	after := s.Snapshot()

	assert.NotSame(t, before.PersonalInfo, after.PersonalInfo)
	assert.Same(t, before.MedicalConditions, after.MedicalConditions)
	assert.Same(t, before.MedicalNotes, after.MedicalNotes)
	assert.Same(t, before.VitalSigns, after.VitalSigns)
	assert.Same(t, before.LabResults, after.LabResults)
	assert.Same(t, before.ImagingResults, after.ImagingResults)
	assert.Same(t, before.DiagnosisAndTreatment, after.DiagnosisAndTreatment)

	assert.Equal(t, "", before.PersonalInfo.Name, "old snapshot must not change")
	assert.Equal(t, "Jane Doe", after.PersonalInfo.Name)
}

func TestUpdate_EverySectionIsolated(t *testing.T) {
	updates := map[string]func(*Store){
		"personal":   func(s *Store) { s.PersonalInfo().Update(PersonalPhone, "555") },
		"conditions": func(s *Store) { s.MedicalConditions().Update(ConditionDiabetes, true) },
		"notes":      func(s *Store) { s.MedicalNotes().Update(NoteComplaints, "chest pain") },
		"vitals":     func(s *Store) { s.VitalSigns().Update(VitalHeartRate, "80") },
		"labs":       func(s *Store) { s.LabResults().Update(LabINR, "1.1") },
		"imaging":    func(s *Store) { s.ImagingResults().Update(ImagingECG, "sinus") },
		"diagnosis":  func(s *Store) { s.DiagnosisAndTreatment().Update(DiagnosisPrimary, "CAP") },
	}

	sections := func(st model.PatientForm) map[string]any {
		return map[string]any{
			"personal":   st.PersonalInfo,
			"conditions": st.MedicalConditions,
			"notes":      st.MedicalNotes,
			"vitals":     st.VitalSigns,
			"labs":       st.LabResults,
			"imaging":    st.ImagingResults,
			"diagnosis":  st.DiagnosisAndTreatment,
		}
	}

	for name, update := range updates {
		t.Run(name, func(t *testing.T) {
			s := New()
			before := sections(s.Snapshot())
			update(s)
			after := sections(s.Snapshot())

			for other := range before {
				if other == name {
					assert.NotEqual(t, before[other], after[other])
					continue
				}
				assert.Same(t, before[other], after[other], "section %s changed", other)
			}
		})
	}
}

func TestUpdate_SiblingFieldsKept(t *testing.T) {
	s := New()
	s.PersonalInfo().Update(PersonalName, "Jane")
	s.PersonalInfo().Update(PersonalAge, "42")
	s.PersonalInfo().SetSmoker(true)
	s.PersonalInfo().Update(PersonalSmokingDetails, "10/day")

	info := s.PersonalInfo().State()
	assert.Equal(t, "Jane", info.Name)
	assert.Equal(t, "42", info.Age)
	assert.True(t, info.IsSmoker)
	assert.Equal(t, "10/day", info.SmokingDetails)

	s.PersonalInfo().SetSmoker(false)
	assert.Equal(t, "10/day", s.PersonalInfo().Get(PersonalSmokingDetails))
}

func TestUpdate_UnknownKeyPanics(t *testing.T) {
	s := New()
	assert.Panics(t, func() { s.VitalSigns().Update(VitalField("balance"), "1") })
}

func TestFluidBalance(t *testing.T) {
	cases := []struct {
		intake, uop, want string
	}{
		{"500", "200", "300"},
		{"", "50", "-50"},
		{"", "", "0"},
		{"abc", "20", "-20"},
		{"1.5", "0.25", "1.25"},
		{"100", "100", "0"},
		{" 700 ", "1000", "-300"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FluidBalance(tc.intake, tc.uop), "intake=%q uop=%q", tc.intake, tc.uop)
	}
}

func TestVitalSigns_BalanceFollowsIntakeAndOutput(t *testing.T) {
	s := New()
	vitals := s.VitalSigns()

	vitals.Update(VitalIntake, "500")
	assert.Equal(t, "500", vitals.State().Balance)

	vitals.Update(VitalUOP, "200")
	assert.Equal(t, "300", vitals.State().Balance)

	vitals.Update(VitalIntake, "")
	assert.Equal(t, "-200", vitals.State().Balance)

	vitals.Update(VitalHeartRate, "90")
	assert.Equal(t, "-200", vitals.State().Balance)
}

func TestInitialize_ReplacesWholeTree(t *testing.T) {
	s := New()
	s.PersonalInfo().Update(PersonalName, "Old")
	s.MedicalConditions().Update(ConditionHypertension, true)
	s.DiagnosisAndTreatment().AddItem(ListTreatmentPlan, "old plan")

	next := Empty()
	next.PersonalInfo.Name = "New"
	next.LabResults.Hemoglobin = "13.2"
	next.DiagnosisAndTreatment.TreatmentPlan = []string{"fluids"}

	s.Initialize(next)
	got := s.Snapshot()

	assert.Equal(t, *next.PersonalInfo, *got.PersonalInfo)
	assert.Equal(t, *next.MedicalConditions, *got.MedicalConditions)
	assert.Equal(t, *next.LabResults, *got.LabResults)
	assert.Equal(t, []string{"fluids"}, got.DiagnosisAndTreatment.TreatmentPlan)
	assert.False(t, got.MedicalConditions.Hypertension)

	next.PersonalInfo.Name = "mutated by caller"
	next.DiagnosisAndTreatment.TreatmentPlan[0] = "mutated"
	assert.Equal(t, "New", s.PersonalInfo().State().Name)
	assert.Equal(t, []string{"fluids"}, s.DiagnosisAndTreatment().List(ListTreatmentPlan))
}

func TestInitialize_NilSectionsBecomeEmpty(t *testing.T) {
	s := New()
	s.ImagingResults().Update(ImagingCXR, "clear")

	s.Initialize(model.PatientForm{PersonalInfo: &model.PersonalInfo{Name: "Only"}})

	got := s.Snapshot()
	require.NotNil(t, got.ImagingResults)
	assert.Equal(t, model.ImagingResults{}, *got.ImagingResults)
	assert.Equal(t, "Only", got.PersonalInfo.Name)
}

func TestConditionNotes_NoteSurvivesFlagToggle(t *testing.T) {
	s := New()
	assert.Equal(t, []NoteField{NoteOthers, NoteComplaints}, s.VisibleNotes())

	s.MedicalConditions().Update(ConditionHypertension, true)
	assert.Contains(t, s.VisibleNotes(), NoteHypertension)

	s.MedicalNotes().Update(NoteFor(ConditionHypertension), "on amlodipine")

	s.MedicalConditions().Set(ConditionHypertension, false)
	assert.NotContains(t, s.VisibleNotes(), NoteHypertension)
	assert.Equal(t, "on amlodipine", s.MedicalNotes().Get(NoteHypertension))
}

func TestVisibleNotes_FollowsConditionOrder(t *testing.T) {
	s := New()
	s.MedicalConditions().Update(ConditionSurgery, true)
	s.MedicalConditions().Update(ConditionDiabetes, true)

	assert.Equal(t, []NoteField{NoteDiabetes, NoteSurgery, NoteOthers, NoteComplaints}, s.VisibleNotes())
}

func TestDiagnosisLists(t *testing.T) {
	s := New()
	dx := s.DiagnosisAndTreatment()

	dx.AddItem(ListTreatmentPlan, "O2 via nasal cannula")
	dx.AddItem(ListTreatmentPlan, "   ")
	dx.AddItem(ListTreatmentPlan, "IV ceftriaxone")
	dx.AddItem(ListProblems, "hypoxia")
	assert.Equal(t, []string{"O2 via nasal cannula", "IV ceftriaxone"}, dx.List(ListTreatmentPlan))

	held := dx.List(ListTreatmentPlan)
	dx.RemoveItem(ListTreatmentPlan, 0)
	dx.RemoveItem(ListTreatmentPlan, 5)
	assert.Equal(t, []string{"IV ceftriaxone"}, dx.List(ListTreatmentPlan))
	assert.Equal(t, []string{"O2 via nasal cannula", "IV ceftriaxone"}, held)
	assert.Equal(t, []string{"hypoxia"}, dx.List(ListProblems))

	dx.SetList(ListSolutions, []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, dx.State().Solutions)
}

func TestSubscribe(t *testing.T) {
	s := New()
	var names []string
	unsubscribe := s.Subscribe(func(st model.PatientForm) {
		names = append(names, st.PersonalInfo.Name)
	})

	s.PersonalInfo().Update(PersonalName, "A")
	s.PersonalInfo().Update(PersonalName, "B")
	unsubscribe()
	s.PersonalInfo().Update(PersonalName, "C")

	assert.Equal(t, []string{"A", "B"}, names)
}

func TestLabInfo(t *testing.T) {
	for _, def := range New().LabResults().Fields() {
		info := InfoFor(def.Key)
		assert.NotEmpty(t, info.Group, "lab %s has no group", def.Key)
	}
	assert.Equal(t, "mEq/L", InfoFor(LabPotassium).Unit)
	assert.Len(t, New().LabResults().Fields(), 21)
}

func TestReset(t *testing.T) {
	s := New()
	s.PersonalInfo().Update(PersonalName, "Jane")
	s.MedicalConditions().Set(ConditionDiabetes, true)

	s.Reset()
	assert.Equal(t, Empty(), s.Snapshot())
}
