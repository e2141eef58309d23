// Package editor implements the template builder's edit dialogs and the
// in-memory template draft they write into.
package editor

import (
	"errors"
	"sync"
)

var (
	ErrNotEditing     = errors.New("dialog is not open for editing")
	ErrSaveInProgress = errors.New("save already in progress")
	ErrNotSaving      = errors.New("no save in progress")
)

// Phase is the lifecycle position of a dialog.
type Phase int

const (
	Closed Phase = iota
	Editing
	Saving
)

func (p Phase) String() string {
	switch p {
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "closed"
	}
}

// Mode tells whether an open dialog creates a new item or edits one.
type Mode int

const (
	ModeNone Mode = iota
	ModeCreate
	ModeEdit
)

// Dialog is the Closed -> Editing -> Saving -> Closed state machine shared
// by every editor. The draft is private to the dialog until Finish succeeds.
type Dialog[T any] struct {
	mu       sync.Mutex
	phase    Phase
	mode     Mode
	draft    T
	err      error
	clone    func(T) T
	validate func(T) error
}

// NewDialog returns a closed dialog. clone must deep copy a T; validate may
// be nil.
func NewDialog[T any](clone func(T) T, validate func(T) error) *Dialog[T] {
	return &Dialog[T]{clone: clone, validate: validate}
}

// OpenForCreate starts editing a new item seeded with v.
func (d *Dialog[T]) OpenForCreate(v T) {
	d.open(ModeCreate, v)
}

// OpenForEdit starts editing a copy of an existing item.
func (d *Dialog[T]) OpenForEdit(v T) {
	d.open(ModeEdit, v)
}

func (d *Dialog[T]) open(mode Mode, v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.phase = Editing
	d.mode = mode
	d.draft = d.clone(v)
	d.err = nil
}

// Cancel discards the draft. It is a no-op unless the dialog is editing.
func (d *Dialog[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != Editing {
		return
	}
	d.reset()
}

// Edit applies fn to the draft.
func (d *Dialog[T]) Edit(fn func(*T)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != Editing {
		return ErrNotEditing
	}
	fn(&d.draft)
	return nil
}

// Draft returns a copy of the current draft.
func (d *Dialog[T]) Draft() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clone(d.draft)
}

// BeginSave validates the draft and moves to Saving. It is rejected while
// closed or while a save is already pending. A validation failure keeps the
// dialog editing with the error recorded.
func (d *Dialog[T]) BeginSave() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	switch d.phase {
	case Closed:
		return zero, ErrNotEditing
	case Saving:
		return zero, ErrSaveInProgress
	}

	if d.validate != nil {
		if err := d.validate(d.draft); err != nil {
			d.err = err
			return zero, err
		}
	}
	d.phase = Saving
	d.err = nil
	return d.clone(d.draft), nil
}

// Finish ends a pending save. On success the dialog closes; on failure it
// returns to editing with err recorded and the draft kept.
func (d *Dialog[T]) Finish(err error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.phase != Saving {
		return ErrNotSaving
	}
	if err != nil {
		d.phase = Editing
		d.err = err
		return nil
	}
	d.reset()
	return nil
}

// Save runs BeginSave, hands the draft to commit and finishes with its
// result.
func (d *Dialog[T]) Save(commit func(T) error) error {
	v, err := d.BeginSave()
	if err != nil {
		return err
	}
	cerr := commit(v)
	if err := d.Finish(cerr); err != nil {
		return err
	}
	return cerr
}

func (d *Dialog[T]) reset() {
	var zero T
	d.phase = Closed
	d.mode = ModeNone
	d.draft = zero
	d.err = nil
}

// Phase returns the lifecycle position.
func (d *Dialog[T]) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.phase
}

// Mode returns whether the open dialog creates or edits.
func (d *Dialog[T]) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Err returns the last validation or save error.
func (d *Dialog[T]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
