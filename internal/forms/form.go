// Package forms holds the per-session state of the payment, tenant and
// property-unit forms: field values, validation errors, submission status
// and the localized banner message.
//
// Each controller processes one event at a time. Backend calls run
// without the lock held so the submitting status is observable.
package forms

import (
	"context"
	"errors"
	"sync"

	"proppilot/internal/rental"
	"proppilot/internal/validation"
)

// Status is the submission state of a form.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ErrSubmitting is returned when a submit arrives while another one is
// still waiting for the backend.
var ErrSubmitting = errors.New("form is already submitting")

// Snapshot is a copy of a form's state for rendering.
type Snapshot struct {
	Values  validation.Values
	Errors  validation.ErrorMap
	Status  Status
	Message string
}

// Value returns the current value of field.
func (s Snapshot) Value(field string) string {
	return s.Values[field]
}

// Error returns the message for field, or "".
func (s Snapshot) Error(field string) string {
	return s.Errors[field]
}

// state is the part every controller shares. Callers hold mu.
type state struct {
	mu        sync.Mutex
	values    validation.Values
	errors    validation.ErrorMap
	status    Status
	message   string
	observers []func(Status)
}

func (s *state) setStatus(st Status) {
	s.status = st
	for _, fn := range s.observers {
		fn(st)
	}
}

// set stores a value. Editing after a submission clears the banner and
// returns the form to idle; field errors stay until the next validation.
func (s *state) set(field, value string) bool {
	if s.status == StatusSubmitting {
		return false
	}
	s.values[field] = value
	if s.status == StatusSuccess || s.status == StatusFailed {
		s.message = ""
		s.setStatus(StatusIdle)
	}
	return true
}

// begin validates and moves to submitting. It reports false when the form
// stays put, either invalid or already submitting.
func (s *state) begin(errs validation.ErrorMap, tr validation.Translator) (bool, error) {
	if s.status == StatusSubmitting {
		return false, ErrSubmitting
	}
	s.errors = errs
	if !errs.Empty() {
		s.message = tr.T("fixValidationErrors")
		s.setStatus(StatusFailed)
		return false, nil
	}
	s.message = ""
	s.setStatus(StatusSubmitting)
	return true, nil
}

// finish applies the backend outcome. A request cancelled by the client
// leaves the form idle with its values intact; an expired deadline is a
// failure the user must see.
func (s *state) finish(ctx context.Context, err error, tr validation.Translator, successKey, failureKey string) {
	switch {
	case err == nil:
		s.message = tr.T(successKey)
		s.setStatus(StatusSuccess)
	case errors.Is(ctx.Err(), context.Canceled):
		s.message = ""
		s.setStatus(StatusIdle)
	default:
		s.errors, s.message = failure(err, s.errors, tr, failureKey)
		s.setStatus(StatusFailed)
	}
}

func (s *state) snapshot() Snapshot {
	values := make(validation.Values, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	errs := make(validation.ErrorMap, len(s.errors))
	for k, v := range s.errors {
		errs[k] = v
	}
	return Snapshot{Values: values, Errors: errs, Status: s.status, Message: s.message}
}

func (s *state) observe(fn func(Status)) {
	s.observers = append(s.observers, fn)
}

// failure maps a backend error to field errors and a banner message.
// Backend field messages are merged over the client-side ones.
func failure(err error, errs validation.ErrorMap, tr validation.Translator, fallbackKey string) (validation.ErrorMap, string) {
	re, ok := rental.AsError(err)
	if !ok {
		return errs, tr.T(fallbackKey)
	}
	switch re.Kind {
	case rental.KindValidation:
		return errs.Merge(re.FieldErrors), tr.T("fixValidationErrors")
	case rental.KindConflict:
		switch re.Reason {
		case rental.ConflictNationalID:
			return errs, tr.T("duplicateNationalId")
		case rental.ConflictEmail:
			return errs, tr.T("duplicateEmail")
		}
	case rental.KindTransport:
		return errs, tr.T(fallbackKey)
	}
	if re.Message != "" {
		return errs, re.Message
	}
	return errs, tr.T(fallbackKey)
}
