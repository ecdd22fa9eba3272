package model

import (
	"regexp"
	"time"
)

// FieldType enumerates the field kinds a form definition may declare. The set
// is closed on purpose: consumers switch over it exhaustively and fall back to
// string-like treatment for anything they do not recognise.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
)

// FieldTypes lists the recognised types in their canonical order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeTextarea,
		FieldTypeEmail,
		FieldTypeNumber,
		FieldTypeDate,
		FieldTypeSelect,
		FieldTypeCheckbox,
	}
}

// Known reports whether t is one of the recognised field types.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeEmail, FieldTypeNumber,
		FieldTypeDate, FieldTypeSelect, FieldTypeCheckbox:
		return true
	}
	return false
}

// NamePattern is the grammar for the externally visible field name: the
// submission key, schema property key, and exported input name. The authoring
// layer validates against it; renderers and projectors do not.
var NamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Field is one input specification inside a form definition.
//
// ID is an opaque stable identifier assigned at creation and never shown to
// end users; Name is the data key. Rules holds the type-dependent constraint
// variant, or nil when the field carries no constraints beyond Required.
type Field struct {
	ID          string
	Name        string
	Type        FieldType
	Label       string
	Required    bool
	Placeholder string
	HelpText    string
	Rules       Rules
}

// DisplayLabel returns the label, falling back to the name so validation
// messages and controls never render blank captions.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// FormDefinition is the versioned, ordered description of a form. Field order
// is significant: it is the render order, the schema required-array order, and
// the exported component's field order.
//
// Definitions are mutated only by whole-value replacement in the authoring
// layer; every other consumer treats them as read-only.
type FormDefinition struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Version     int       `json:"version"`
	Fields      []Field   `json:"fields"`
	CreatedAt   time.Time `json:"createdAtISO"`
	UpdatedAt   time.Time `json:"updatedAtISO"`
}

// DisplayTitle returns the title, falling back to a generic caption so
// rendered pages never show an empty heading.
func (d FormDefinition) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return "Untitled form"
}

// CurrentVersion is written into new definitions. The field is reserved for
// future migration and is never interpreted beyond storage.
const CurrentVersion = 1

// FieldByName returns the first field carrying the given name.
func (d FormDefinition) FieldByName(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldByID returns the field carrying the given opaque id.
func (d FormDefinition) FieldByID(id string) (Field, bool) {
	for _, field := range d.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

// Clone returns a deep copy. Rule variants are value types, so copying the
// field slice is enough to detach the copy from the original.
func (d FormDefinition) Clone() FormDefinition {
	out := d
	if d.Fields != nil {
		out.Fields = make([]Field, len(d.Fields))
		copy(out.Fields, d.Fields)
		for i := range out.Fields {
			out.Fields[i].Rules = cloneRules(out.Fields[i].Rules)
		}
	}
	return out
}

// ZeroValue returns the type-appropriate default runtime value: false for
// checkbox, the empty string otherwise (including unrecognised types, which
// degrade to text).
func ZeroValue(t FieldType) any {
	if t == FieldTypeCheckbox {
		return false
	}
	return ""
}
