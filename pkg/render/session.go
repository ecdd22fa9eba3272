package render

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validate"
)

// Phase is the submission lifecycle of a Session.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseAccepted   Phase = "accepted"
	PhaseRejected   Phase = "rejected"
)

// Session holds the live state of one rendered form instance: current field
// values and the submission phase. State is owned exclusively by the session;
// renderers drive it from a single goroutine.
//
// Per submission the machine moves Idle → Submitting → Accepted or Rejected.
// Rejection blocks the whole submission; there is no partial commit.
type Session struct {
	def       model.FormDefinition
	validator *validate.Validator
	values    map[string]any
	phase     Phase
	errors    map[string][]string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithValidator injects a shared validator, typically one carrying a pattern
// reporter. The default validator is silent.
func WithValidator(v *validate.Validator) SessionOption {
	return func(s *Session) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithInitialValues seeds field values on top of the type-appropriate
// defaults. Unknown names are ignored.
func WithInitialValues(values map[string]any) SessionOption {
	return func(s *Session) {
		for name, value := range values {
			if _, ok := s.def.FieldByName(name); ok {
				s.values[name] = value
			}
		}
	}
}

// NewSession builds a session over a definition, seeding every field with its
// type-appropriate default value.
func NewSession(def model.FormDefinition, options ...SessionOption) *Session {
	s := &Session{
		def:       def,
		validator: validate.New(),
		values:    defaultValues(def),
		phase:     PhaseIdle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Definition returns the definition the session renders.
func (s *Session) Definition() model.FormDefinition {
	return s.def
}

// Phase reports the current submission phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// SetValue records the current value of a field. Setting a value clears a
// previous accept/reject outcome back to idle, mirroring a user editing after
// a failed submit.
func (s *Session) SetValue(name string, value any) error {
	if _, ok := s.def.FieldByName(name); !ok {
		return fmt.Errorf("render: unknown field %q", name)
	}
	s.values[name] = value
	s.phase = PhaseIdle
	s.errors = nil
	return nil
}

// Value returns the current value of a field.
func (s *Session) Value(name string) (any, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Values returns a copy of the current value map keyed by field name.
func (s *Session) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}

// Errors returns the per-field messages of the last rejected submission.
func (s *Session) Errors() map[string][]string {
	return s.errors
}

// Submit validates every field's current value synchronously. When any field
// yields a message the session transitions to Rejected and the collected
// values are withheld; otherwise it transitions to Accepted and the returned
// result exposes them. Handing them to a submission handler is the caller's
// business — the session performs no I/O.
func (s *Session) Submit() Result {
	s.phase = PhaseSubmitting

	errs := s.validator.Form(s.def, s.values)
	if len(errs) > 0 {
		s.phase = PhaseRejected
		s.errors = errs
		return Result{Phase: PhaseRejected, Errors: errs}
	}

	s.phase = PhaseAccepted
	s.errors = nil
	return Result{Phase: PhaseAccepted, Values: s.Values()}
}

// Reset restores every field to its type-appropriate default and clears any
// prior outcome.
func (s *Session) Reset() {
	s.values = defaultValues(s.def)
	s.phase = PhaseIdle
	s.errors = nil
}

// Result is the outcome of one submission attempt.
type Result struct {
	Phase  Phase
	Values map[string]any
	Errors map[string][]string
}

// Accepted reports whether the submission passed validation.
func (r Result) Accepted() bool {
	return r.Phase == PhaseAccepted
}

func defaultValues(def model.FormDefinition) map[string]any {
	values := make(map[string]any, len(def.Fields))
	for _, field := range def.Fields {
		values[field.Name] = model.ZeroValue(field.Type)
	}
	return values
}
