// Package patientform holds one patient's multi-section draft as a single
// normalized state tree.
//
// Each section lives behind its own pointer. An update copies only the
// section it touches, so every other section pointer in a snapshot taken
// before the update is identical to the one taken after it.
package patientform

import (
	"sort"
	"sync"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

// Store is an in-memory patient draft. The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	state   model.PatientForm
	subs    map[int]func(model.PatientForm)
	nextSub int
}

// New returns a store with every section empty.
func New() *Store {
	return &Store{
		state: Empty(),
		subs:  make(map[int]func(model.PatientForm)),
	}
}

// Empty returns a draft with every section allocated and blank.
func Empty() model.PatientForm {
	return model.PatientForm{
		PersonalInfo:          &model.PersonalInfo{},
		MedicalConditions:     &model.MedicalConditions{},
		MedicalNotes:          &model.MedicalNotes{},
		VitalSigns:            &model.VitalSigns{},
		LabResults:            &model.LabResults{},
		ImagingResults:        &model.ImagingResults{},
		DiagnosisAndTreatment: &model.DiagnosisAndTreatment{},
	}
}

// Snapshot returns the current tree. Section values behind the pointers are
// never mutated by the store; callers must not mutate them either.
func (s *Store) Snapshot() model.PatientForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Initialize replaces the whole tree with a copy of next. Nil sections become
// empty ones; nothing from the previous draft survives.
func (s *Store) Initialize(next model.PatientForm) {
	fresh := Empty()
	if next.PersonalInfo != nil {
		v := *next.PersonalInfo
		fresh.PersonalInfo = &v
	}
	if next.MedicalConditions != nil {
		v := *next.MedicalConditions
		fresh.MedicalConditions = &v
	}
	if next.MedicalNotes != nil {
		v := *next.MedicalNotes
		fresh.MedicalNotes = &v
	}
	if next.VitalSigns != nil {
		v := *next.VitalSigns
		fresh.VitalSigns = &v
	}
	if next.LabResults != nil {
		v := *next.LabResults
		fresh.LabResults = &v
	}
	if next.ImagingResults != nil {
		v := *next.ImagingResults
		fresh.ImagingResults = &v
	}
	if next.DiagnosisAndTreatment != nil {
		v := next.DiagnosisAndTreatment.Clone()
		fresh.DiagnosisAndTreatment = &v
	}

	s.commit(func(st *model.PatientForm) { *st = fresh })
}

// Reset discards the draft.
func (s *Store) Reset() {
	s.Initialize(model.PatientForm{})
}

// Subscribe registers fn to be called with the new tree after every change.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(model.PatientForm)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) commit(mutate func(*model.PatientForm)) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]func(model.PatientForm), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// VisibleNotes lists the note fields the intake form shows for the current
// conditions: one per condition flagged true, then others and complaints.
func (s *Store) VisibleNotes() []NoteField {
	conditions := s.MedicalConditions().State()
	var out []NoteField
	for _, def := range conditionFields.defs {
		if *def.ref(&conditions) {
			out = append(out, conditionNotes[def.Key])
		}
	}
	return append(out, NoteOthers, NoteComplaints)
}
