// Package form implements the modal create/edit form lifecycle: values,
// touched tracking, a declarative validation rule table and a submit guard.
package form

import (
	"context"
	"errors"
	"sort"
)

// ErrValidationFailed is returned by Submit when validation blocks the
// submission; the backing action is never invoked in that case.
var ErrValidationFailed = errors.New("fix validation errors before submitting")

// ErrNotOpen is returned when Submit is called on a closed form.
var ErrNotOpen = errors.New("form is not open")

// Rule validates one aspect of the form values and returns an error message,
// or "" when the values pass. Rules are pure and independent of each other.
type Rule[T any] func(values T) string

// Config declares a form: its field rule table and the defined empty value
// used for add mode.
type Config[T any] struct {
	Fields map[string][]Rule[T]
	Empty  func() T
}

// Form tracks one modal form instance. It is not safe for concurrent use;
// a screen owns exactly one form per modal and drives it from its event loop.
type Form[T any] struct {
	cfg     Config[T]
	open    bool
	editing bool
	values  T
	touched map[string]bool
	errors  map[string]string
}

// New builds a closed form from the given config.
func New[T any](cfg Config[T]) *Form[T] {
	return &Form[T]{cfg: cfg}
}

// Open transitions the form to its open state. A nil initial value selects
// add mode with the defined empty default; otherwise the record is cloned
// into the form for editing. Touched and error state are reset before the
// form reports itself open, so a reopened dialog never flashes stale errors.
func (f *Form[T]) Open(initial *T) {
	f.touched = map[string]bool{}
	f.errors = map[string]string{}
	if initial != nil {
		f.values = *initial
		f.editing = true
	} else {
		if f.cfg.Empty != nil {
			f.values = f.cfg.Empty()
		} else {
			var zero T
			f.values = zero
		}
		f.editing = false
	}
	f.open = true
}

// Close discards the form state.
func (f *Form[T]) Close() {
	f.open = false
	f.touched = nil
	f.errors = nil
}

// IsOpen reports whether the modal is open.
func (f *Form[T]) IsOpen() bool {
	return f.open
}

// IsEditing reports whether the form was opened with an existing record.
func (f *Form[T]) IsEditing() bool {
	return f.editing
}

// Values returns the current form values.
func (f *Form[T]) Values() T {
	return f.values
}

// SetValues replaces the form values, as bound inputs do on every change.
func (f *Form[T]) SetValues(values T) {
	if !f.open {
		return
	}
	f.values = values
}

// Touch marks a field as interacted with and recomputes just that field's
// error. Other fields are left untouched.
func (f *Form[T]) Touch(field string) {
	if !f.open {
		return
	}
	f.touched[field] = true
	f.runField(field)
}

// Validate reruns the rules for one field. Untouched fields always pass:
// the UI must never show errors before the user reaches the field.
func (f *Form[T]) Validate(field string) bool {
	if !f.open || !f.touched[field] {
		return true
	}
	return f.runField(field)
}

// ValidateAll marks every declared field as touched, reruns every rule and
// reports whether the whole form is valid.
func (f *Form[T]) ValidateAll() bool {
	if !f.open {
		return false
	}
	valid := true
	for _, field := range f.fieldNames() {
		f.touched[field] = true
		if !f.runField(field) {
			valid = false
		}
	}
	return valid
}

// Error returns the visible error message for a field, "" when clean.
func (f *Form[T]) Error(field string) string {
	if !f.open {
		return ""
	}
	return f.errors[field]
}

// Errors returns a copy of the visible error map.
func (f *Form[T]) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Submit guards the save action. It validates every field first and aborts
// with ErrValidationFailed without invoking the action when anything fails.
// On action failure the form stays open with its values intact so the user
// can correct and retry; on success the form closes and the caller should
// refresh its list.
func (f *Form[T]) Submit(ctx context.Context, action func(context.Context, T) error) error {
	if !f.open {
		return ErrNotOpen
	}
	if !f.ValidateAll() {
		return ErrValidationFailed
	}
	if err := action(ctx, f.values); err != nil {
		return err
	}
	f.Close()
	return nil
}

func (f *Form[T]) runField(field string) bool {
	for _, rule := range f.cfg.Fields[field] {
		if msg := rule(f.values); msg != "" {
			f.errors[field] = msg
			return false
		}
	}
	delete(f.errors, field)
	return true
}

func (f *Form[T]) fieldNames() []string {
	names := make([]string, 0, len(f.cfg.Fields))
	for name := range f.cfg.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
