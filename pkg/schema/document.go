// Package schema projects a form definition into a JSON Schema document.
package schema

import (
	"bytes"
	"encoding/json"
)

// MetaSchemaURI is the fixed $schema value of every projected document.
const MetaSchemaURI = "https://json-schema.org/draft/2020-12/schema"

// Document is an object schema describing one form's submission payload.
// Marshalling is deterministic: top-level keys are emitted in a fixed order
// and properties in field order, so projecting an unchanged definition twice
// yields byte-identical output.
type Document struct {
	Schema               string
	Title                string
	Type                 string
	AdditionalProperties bool
	Properties           []PropertyEntry
	Required             []string
}

// PropertyEntry pairs a property name with its schema, preserving field
// order. A plain map would randomise key order on marshal.
type PropertyEntry struct {
	Name     string
	Property Property
}

// Property is the schema of a single field. EnumSet distinguishes "no enum"
// from the deliberately empty enum a select field with malformed options
// projects to.
type Property struct {
	Type      string
	Format    string
	MinLength *int
	MaxLength *int
	Pattern   string
	Minimum   *float64
	Maximum   *float64
	Enum      []string
	EnumSet   bool
}

// MarshalJSON emits the document with stable key order. The required key is
// omitted entirely when no field is required.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeKey(&buf, "$schema")
	writeString(&buf, d.Schema)

	buf.WriteByte(',')
	writeKey(&buf, "title")
	writeString(&buf, d.Title)

	buf.WriteByte(',')
	writeKey(&buf, "type")
	writeString(&buf, d.Type)

	buf.WriteByte(',')
	writeKey(&buf, "additionalProperties")
	if d.AdditionalProperties {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}

	buf.WriteByte(',')
	writeKey(&buf, "properties")
	buf.WriteByte('{')
	for i, entry := range d.Properties {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, entry.Name)
		payload, err := json.Marshal(entry.Property)
		if err != nil {
			return nil, err
		}
		buf.Write(payload)
	}
	buf.WriteByte('}')

	if len(d.Required) > 0 {
		buf.WriteByte(',')
		writeKey(&buf, "required")
		payload, err := json.Marshal(d.Required)
		if err != nil {
			return nil, err
		}
		buf.Write(payload)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON emits property keys in a fixed order, skipping unset
// constraints. The enum key is always present once EnumSet is true, even when
// the value list is empty.
func (p Property) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeKey(&buf, "type")
	writeString(&buf, p.Type)

	if p.Format != "" {
		buf.WriteByte(',')
		writeKey(&buf, "format")
		writeString(&buf, p.Format)
	}
	if p.MinLength != nil {
		buf.WriteByte(',')
		writeKey(&buf, "minLength")
		writeInt(&buf, *p.MinLength)
	}
	if p.MaxLength != nil {
		buf.WriteByte(',')
		writeKey(&buf, "maxLength")
		writeInt(&buf, *p.MaxLength)
	}
	if p.Pattern != "" {
		buf.WriteByte(',')
		writeKey(&buf, "pattern")
		writeString(&buf, p.Pattern)
	}
	if p.Minimum != nil {
		buf.WriteByte(',')
		writeKey(&buf, "minimum")
		writeFloat(&buf, *p.Minimum)
	}
	if p.Maximum != nil {
		buf.WriteByte(',')
		writeKey(&buf, "maximum")
		writeFloat(&buf, *p.Maximum)
	}
	if p.EnumSet {
		buf.WriteByte(',')
		writeKey(&buf, "enum")
		values := p.Enum
		if values == nil {
			values = []string{}
		}
		payload, err := json.Marshal(values)
		if err != nil {
			return nil, err
		}
		buf.Write(payload)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Indent pretty-prints the document the way export surfaces present it.
func (d Document) Indent() ([]byte, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) {
	writeString(buf, key)
	buf.WriteByte(':')
}

func writeString(buf *bytes.Buffer, value string) {
	payload, _ := json.Marshal(value)
	buf.Write(payload)
}

func writeInt(buf *bytes.Buffer, value int) {
	payload, _ := json.Marshal(value)
	buf.Write(payload)
}

func writeFloat(buf *bytes.Buffer, value float64) {
	payload, _ := json.Marshal(value)
	buf.Write(payload)
}
