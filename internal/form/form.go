// Package form holds the draft Entry being typed and the optional index of
// the stored entry it is editing.
package form

import (
	"fmt"
	"log/slog"
	"time"

	"health_tracker/internal/entry"
	"health_tracker/internal/logstore"
)

// ValidationError is returned by Submit when any field is empty.
type ValidationError struct {
	Missing []entry.Field
}

func (e *ValidationError) Error() string {
	return "All fields must be filled."
}

type Form struct {
	store     *logstore.Store
	draft     entry.Entry
	editIndex int
	err       error
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Form)

// WithClock overrides the clock used to stamp submitted entries.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func New(store *logstore.Store, opts ...Option) *Form {
	f := &Form{
		store:     store,
		editIndex: -1,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Form) Draft() entry.Entry {
	return f.draft
}

// Editing returns the index being edited, if any.
func (f *Form) Editing() (int, bool) {
	return f.editIndex, f.editIndex >= 0
}

// Err returns the error of the last Submit, BeginEdit or DeleteAt.
func (f *Form) Err() error {
	return f.err
}

// SetField overwrites one draft field by its JSON name.
func (f *Form) SetField(name, value string) error {
	field, err := entry.ParseField(name)
	if err != nil {
		return err
	}
	f.Set(field, value)
	return nil
}

func (f *Form) Set(field entry.Field, value string) {
	f.draft.Set(field, value)
}

// Submit validates the draft and appends it to the store, or replaces the
// entry being edited. The date is always re-stamped, including on edit.
func (f *Form) Submit() error {
	if missing := f.draft.Missing(); len(missing) > 0 {
		f.err = &ValidationError{Missing: missing}
		return f.err
	}
	f.err = nil

	e := f.draft
	e.Date = entry.Stamp(f.now())

	if i, ok := f.Editing(); ok {
		if err := f.store.ReplaceAt(i, e); err != nil {
			f.err = err
			return err
		}
		f.logger.Info("entry updated", "index", i, "date", e.Date)
		f.editIndex = -1
	} else {
		if err := f.store.Append(e); err != nil {
			f.err = err
			return err
		}
		f.logger.Info("entry recorded", "index", f.store.Len()-1, "date", e.Date)
	}

	f.draft = entry.Entry{}
	return nil
}

// BeginEdit loads the stored entry at index into the draft.
func (f *Form) BeginEdit(index int) error {
	e, err := f.store.At(index)
	if err != nil {
		f.err = err
		return err
	}
	f.draft = e
	f.editIndex = index
	f.err = nil
	return nil
}

// CancelEdit leaves edit mode and clears the draft.
func (f *Form) CancelEdit() {
	f.draft = entry.Entry{}
	f.editIndex = -1
	f.err = nil
}

// DeleteAt removes a stored entry and keeps the edit index on the entry it
// referred to. Deleting the entry being edited cancels the edit.
func (f *Form) DeleteAt(index int) error {
	if err := f.store.DeleteAt(index); err != nil {
		f.err = fmt.Errorf("failed to delete entry: %w", err)
		return f.err
	}
	f.logger.Info("entry deleted", "index", index)

	if i, ok := f.Editing(); ok {
		switch {
		case i == index:
			f.CancelEdit()
		case i > index:
			f.editIndex--
		}
	}
	return nil
}
