package schema

import (
	"github.com/goliatone/go-formkit/pkg/model"
)

// Project derives the JSON Schema document for a form definition. It is pure
// and total: well-formed input never fails, malformed rule data degrades to
// "no constraint", and unrecognised field types fall back to plain strings.
func Project(def model.FormDefinition) Document {
	doc := Document{
		Schema:     MetaSchemaURI,
		Title:      def.Title,
		Type:       "object",
		Properties: make([]PropertyEntry, 0, len(def.Fields)),
	}

	for _, field := range def.Fields {
		doc.Properties = append(doc.Properties, PropertyEntry{
			Name:     field.Name,
			Property: propertyFor(field),
		})
		if field.Required {
			doc.Required = append(doc.Required, field.Name)
		}
	}

	return doc
}

func propertyFor(field model.Field) Property {
	switch field.Type {
	case model.FieldTypeText, model.FieldTypeTextarea:
		return textProperty(field, "")
	case model.FieldTypeEmail:
		return textProperty(field, "email")
	case model.FieldTypeDate:
		return Property{Type: "string", Format: "date"}
	case model.FieldTypeNumber:
		return numberProperty(field)
	case model.FieldTypeSelect:
		return selectProperty(field)
	case model.FieldTypeCheckbox:
		return Property{Type: "boolean"}
	default:
		// Forward-compatible fallback for future field types.
		return Property{Type: "string"}
	}
}

func textProperty(field model.Field, format string) Property {
	prop := Property{Type: "string", Format: format}
	rules, ok := field.TextRules()
	if !ok {
		return prop
	}
	if rules.MinLength != nil && *rules.MinLength >= 0 {
		prop.MinLength = rules.MinLength
	}
	if rules.MaxLength != nil && *rules.MaxLength >= 0 {
		prop.MaxLength = rules.MaxLength
	}
	// An uncompilable pattern is no constraint here as well; the validator
	// owns reporting it.
	if _, ok, err := rules.CompilePattern(); ok && err == nil {
		prop.Pattern = rules.Pattern
	}
	return prop
}

func numberProperty(field model.Field) Property {
	prop := Property{Type: "number"}
	rules, ok := field.NumberRules()
	if !ok {
		return prop
	}
	if rules.Integer {
		prop.Type = "integer"
	}
	prop.Minimum = rules.Min
	prop.Maximum = rules.Max
	return prop
}

func selectProperty(field model.Field) Property {
	prop := Property{Type: "string", EnumSet: true}
	rules, ok := field.SelectRules()
	if !ok {
		// Missing or malformed options project to an empty enum, never an
		// error.
		return prop
	}
	prop.Enum = rules.Values()
	return prop
}
