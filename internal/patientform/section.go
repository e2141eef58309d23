package patientform

import (
	"fmt"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

// FieldDef describes one updatable leaf of section S.
type FieldDef[S any, K ~string, V any] struct {
	Key   K
	Label string
	ref   func(*S) *V
}

type fieldSet[S any, K ~string, V any] struct {
	defs  []FieldDef[S, K, V]
	index map[K]int
}

func newFieldSet[S any, K ~string, V any](defs ...FieldDef[S, K, V]) fieldSet[S, K, V] {
	index := make(map[K]int, len(defs))
	for i, d := range defs {
		index[d.Key] = i
	}
	return fieldSet[S, K, V]{defs: defs, index: index}
}

func (fs fieldSet[S, K, V]) lookup(key K) FieldDef[S, K, V] {
	i, ok := fs.index[key]
	if !ok {
		panic(fmt.Sprintf("patientform: %q is not a field of this section", string(key)))
	}
	return fs.defs[i]
}

// Section is a typed read/update view over one section of a Store. Keys of
// another section do not type-check.
type Section[S any, K ~string, V any] struct {
	store  *Store
	slot   func(*model.PatientForm) **S
	fields fieldSet[S, K, V]
	clone  func(S) S
	after  func(*S, K)
}

// State returns a copy of the section.
func (a Section[S, K, V]) State() S {
	a.store.mu.RLock()
	v := **a.slot(&a.store.state)
	a.store.mu.RUnlock()
	if a.clone != nil {
		v = a.clone(v)
	}
	return v
}

// Get returns one field value.
func (a Section[S, K, V]) Get(field K) V {
	st := a.State()
	return *a.fields.lookup(field).ref(&st)
}

// Update replaces exactly one leaf. The section is copied on write; siblings
// and other sections are left as they were.
func (a Section[S, K, V]) Update(field K, value V) {
	def := a.fields.lookup(field)
	a.store.commit(func(st *model.PatientForm) {
		slot := a.slot(st)
		next := **slot
		*def.ref(&next) = value
		if a.after != nil {
			a.after(&next, field)
		}
		*slot = &next
	})
}

// Fields lists the section's keys with their labels in display order.
func (a Section[S, K, V]) Fields() []FieldDef[S, K, V] {
	return append([]FieldDef[S, K, V](nil), a.fields.defs...)
}

func mutateSection[S any](s *Store, slot func(*model.PatientForm) **S, fn func(*S)) {
	s.commit(func(st *model.PatientForm) {
		p := slot(st)
		next := **p
		fn(&next)
		*p = &next
	})
}
