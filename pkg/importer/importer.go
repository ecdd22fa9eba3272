// Package importer builds form definitions from JSON Schema documents, the
// inverse of the schema projector. It accepts JSON or YAML input and is
// deliberately permissive: anything it cannot map degrades to a plain text
// field, and the authoring lint reports the rest.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Option configures an Importer.
type Option func(*Importer)

// WithClock overrides the time source used for definition timestamps.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) {
		if now != nil {
			i.now = now
		}
	}
}

// WithIDGenerator overrides the id source for the definition and its fields.
func WithIDGenerator(newID func() string) Option {
	return func(i *Importer) {
		if newID != nil {
			i.newID = newID
		}
	}
}

type Importer struct {
	now   func() time.Time
	newID func() string
}

// New constructs an Importer.
func New(options ...Option) *Importer {
	i := &Importer{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(i)
	}
	return i
}

// Import parses raw schema content and maps its object properties onto
// fields. Property names come back sorted so repeated imports of the same
// document yield the same field order.
func (i *Importer) Import(ctx context.Context, data []byte) (model.FormDefinition, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return model.FormDefinition{}, err
		}
	}
	if len(data) == 0 {
		return model.FormDefinition{}, errors.New("importer: schema payload is empty")
	}

	payload, err := toJSON(data)
	if err != nil {
		return model.FormDefinition{}, err
	}

	var schema openapi3.Schema
	if err := schema.UnmarshalJSON(payload); err != nil {
		return model.FormDefinition{}, fmt.Errorf("importer: parse schema: %w", err)
	}

	created := i.now().UTC()
	def := model.FormDefinition{
		ID:          i.newID(),
		Title:       schema.Title,
		Description: schema.Description,
		Version:     model.CurrentVersion,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field := i.fieldFromSchema(name, ref.Value)
		field.Required = required[name]
		def.Fields = append(def.Fields, field)
	}

	return def, nil
}

func (i *Importer) fieldFromSchema(name string, src *openapi3.Schema) model.Field {
	field := model.Field{
		ID:       i.newID(),
		Name:     name,
		Label:    src.Title,
		HelpText: src.Description,
	}

	switch {
	case len(src.Enum) > 0:
		field.Type = model.FieldTypeSelect
		field.Rules = selectRules(src.Enum)
	case schemaType(src) == "boolean":
		field.Type = model.FieldTypeCheckbox
	case schemaType(src) == "integer":
		field.Type = model.FieldTypeNumber
		field.Rules = numberRules(src, true)
	case schemaType(src) == "number":
		field.Type = model.FieldTypeNumber
		field.Rules = numberRules(src, false)
	case src.Format == "email":
		field.Type = model.FieldTypeEmail
		field.Rules = textRules(src)
	case src.Format == "date":
		field.Type = model.FieldTypeDate
	default:
		// strings and anything unrecognised degrade to text.
		field.Type = model.FieldTypeText
		field.Rules = textRules(src)
	}

	return field
}

func textRules(src *openapi3.Schema) model.Rules {
	rules := model.TextRules{Pattern: src.Pattern}
	if src.MinLength > 0 {
		value := int(src.MinLength)
		rules.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		rules.MaxLength = &value
	}
	if rules.MinLength == nil && rules.MaxLength == nil && rules.Pattern == "" {
		return nil
	}
	return rules
}

func numberRules(src *openapi3.Schema, integer bool) model.Rules {
	rules := model.NumberRules{Integer: integer}
	if src.Min != nil {
		value := *src.Min
		rules.Min = &value
	}
	if src.Max != nil {
		value := *src.Max
		rules.Max = &value
	}
	if !integer && rules.Min == nil && rules.Max == nil {
		return nil
	}
	return rules
}

func selectRules(enum []any) model.Rules {
	options := make([]model.Option, 0, len(enum))
	for _, raw := range enum {
		value := fmt.Sprintf("%v", raw)
		options = append(options, model.Option{Label: value, Value: value})
	}
	return model.SelectRules{Options: options}
}

func schemaType(src *openapi3.Schema) string {
	if src.Type == nil {
		return ""
	}
	values := src.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// toJSON accepts JSON as-is and bridges YAML content through a JSON
// round-trip.
func toJSON(data []byte) ([]byte, error) {
	if json.Valid(data) {
		return data, nil
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("importer: content is neither valid JSON nor YAML")
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("importer: bridge from yaml: %w", err)
	}
	return payload, nil
}
