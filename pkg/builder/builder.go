// Package builder is the authoring layer: it creates and mutates form
// definitions while enforcing the invariants every downstream consumer
// assumes, most importantly field-name uniqueness and the name grammar.
// All mutations are copy-on-write; callers only ever see detached snapshots.
package builder

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/goliatone/go-formkit/pkg/model"
)

// ErrFieldNotFound is returned when an id does not resolve to a field.
var ErrFieldNotFound = errors.New("builder: field not found")

// NameConflictError reports an attempt to introduce a field name that is
// already taken inside the definition.
type NameConflictError struct {
	Name string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("builder: field name %q already in use", e.Name)
}

// InvalidNameError reports a field name that does not match the name grammar.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("builder: field name %q is not a valid identifier", e.Name)
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the time source used for definition timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator overrides the id source used for definitions and fields.
func WithIDGenerator(newID func() string) Option {
	return func(b *Builder) {
		if newID != nil {
			b.newID = newID
		}
	}
}

// WithDescription sets the initial description on New.
func WithDescription(description string) Option {
	return func(b *Builder) {
		b.def.Description = description
	}
}

// Builder accumulates edits to one definition. It is not safe for concurrent
// use; share snapshots, not builders.
type Builder struct {
	def   model.FormDefinition
	now   func() time.Time
	newID func() string
}

// New starts a fresh definition with a generated id and current timestamps.
func New(title string, options ...Option) *Builder {
	b := &Builder{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}

	created := b.now().UTC()
	b.def.ID = b.newID()
	b.def.Title = title
	b.def.Version = model.CurrentVersion
	b.def.CreatedAt = created
	b.def.UpdatedAt = created
	return b
}

// FromDefinition continues editing an existing definition. The builder works
// on a detached copy.
func FromDefinition(def model.FormDefinition, options ...Option) *Builder {
	b := &Builder{
		def:   def.Clone(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Definition returns a detached snapshot of the current state.
func (b *Builder) Definition() model.FormDefinition {
	return b.def.Clone()
}

// SetTitle replaces the form title.
func (b *Builder) SetTitle(title string) {
	b.def.Title = title
	b.touch()
}

// SetDescription replaces the form description.
func (b *Builder) SetDescription(description string) {
	b.def.Description = description
	b.touch()
}

// AddField appends a field. A missing id is generated; a missing name is
// derived from the label or type and made unique. Explicit names must match
// the name grammar and be unused, otherwise a typed error is returned and
// the definition is left untouched.
func (b *Builder) AddField(field model.Field) (model.Field, error) {
	if field.ID == "" {
		field.ID = b.newID()
	}
	if field.Name == "" {
		field.Name = b.nextName(field)
	} else {
		if !model.NamePattern.MatchString(field.Name) {
			return model.Field{}, &InvalidNameError{Name: field.Name}
		}
		if _, taken := b.def.FieldByName(field.Name); taken {
			return model.Field{}, &NameConflictError{Name: field.Name}
		}
	}

	b.def.Fields = append(b.def.Fields, field)
	b.touch()
	return field, nil
}

// UpdateField applies mutate to the field with the given id. Renames go
// through the same grammar and uniqueness checks as AddField; the field id
// itself cannot be changed.
func (b *Builder) UpdateField(id string, mutate func(*model.Field)) (model.Field, error) {
	idx := b.indexOf(id)
	if idx < 0 {
		return model.Field{}, fmt.Errorf("builder: update field %q: %w", id, ErrFieldNotFound)
	}

	updated := b.def.Fields[idx]
	updated.Rules = cloneForEdit(updated)
	if mutate != nil {
		mutate(&updated)
	}
	updated.ID = b.def.Fields[idx].ID

	if updated.Name != b.def.Fields[idx].Name {
		if !model.NamePattern.MatchString(updated.Name) {
			return model.Field{}, &InvalidNameError{Name: updated.Name}
		}
		if existing, taken := b.def.FieldByName(updated.Name); taken && existing.ID != id {
			return model.Field{}, &NameConflictError{Name: updated.Name}
		}
	}

	b.def.Fields[idx] = updated
	b.touch()
	return updated, nil
}

// RemoveField deletes the field with the given id.
func (b *Builder) RemoveField(id string) error {
	idx := b.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("builder: remove field %q: %w", id, ErrFieldNotFound)
	}
	b.def.Fields = append(b.def.Fields[:idx], b.def.Fields[idx+1:]...)
	b.touch()
	return nil
}

// MoveField repositions the field with the given id. The target index is
// clamped into range.
func (b *Builder) MoveField(id string, to int) error {
	idx := b.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("builder: move field %q: %w", id, ErrFieldNotFound)
	}
	if to < 0 {
		to = 0
	}
	if to >= len(b.def.Fields) {
		to = len(b.def.Fields) - 1
	}
	if to == idx {
		return nil
	}

	field := b.def.Fields[idx]
	rest := append(b.def.Fields[:idx], b.def.Fields[idx+1:]...)
	b.def.Fields = append(rest[:to], append([]model.Field{field}, rest[to:]...)...)
	b.touch()
	return nil
}

func (b *Builder) indexOf(id string) int {
	for i, field := range b.def.Fields {
		if field.ID == id {
			return i
		}
	}
	return -1
}

func (b *Builder) touch() {
	b.def.UpdatedAt = b.now().UTC()
}

// nextName derives a unique name from the label when one is usable,
// otherwise from the field type, suffixing a counter until unused.
func (b *Builder) nextName(field model.Field) string {
	base := slugify(field.Label)
	if base == "" {
		base = string(field.Type)
		if base == "" || !model.NamePattern.MatchString(base) {
			base = "field"
		}
	}
	if _, taken := b.def.FieldByName(base); !taken {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if _, taken := b.def.FieldByName(candidate); !taken {
			return candidate
		}
	}
}

// slugify folds a label into the name grammar: letters and digits keep,
// separators become underscores, anything leading that is not a letter is
// dropped.
func slugify(label string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(label) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			if r > unicode.MaxASCII {
				continue
			}
			if b.Len() == 0 && unicode.IsDigit(r) {
				continue
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingSep = true
		}
	}
	out := b.String()
	if !model.NamePattern.MatchString(out) {
		return ""
	}
	return out
}

func cloneForEdit(field model.Field) model.Rules {
	clone := model.FormDefinition{Fields: []model.Field{field}}.Clone()
	return clone.Fields[0].Rules
}

// Starter returns a small ready-to-edit contact form, used when a store has
// nothing to load yet.
func Starter(options ...Option) model.FormDefinition {
	b := New("Contact Us", options...)
	b.SetDescription("We would love to hear from you.")
	must := func(field model.Field) {
		if _, err := b.AddField(field); err != nil {
			panic(err)
		}
	}
	must(model.Field{Name: "name", Type: model.FieldTypeText, Label: "Name", Required: true})
	must(model.Field{Name: "email", Type: model.FieldTypeEmail, Label: "Email", Required: true})
	must(model.Field{Name: "message", Type: model.FieldTypeTextarea, Label: "Message", Required: true})
	return b.Definition()
}
