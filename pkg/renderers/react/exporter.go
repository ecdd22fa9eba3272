// Package react emits a standalone React function component from a form
// definition. The generated source is a snapshot: field list, default values,
// and required names are embedded as literal data, so the component never
// depends on this module at runtime.
package react

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
)

// Exporter turns form definitions into component source. It is stateless;
// the zero value is usable, New exists for symmetry with the other renderers.
type Exporter struct{}

// New constructs an Exporter.
func New() *Exporter {
	return &Exporter{}
}

// Name identifies the renderer inside the registry.
func (e *Exporter) Name() string {
	return "react"
}

// ContentType returns the MIME type of the generated source.
func (e *Exporter) ContentType() string {
	return "text/jsx; charset=utf-8"
}

// Render implements render.Renderer. RenderOptions carry nothing for source
// export; the artifact is a pure function of the definition.
func (e *Exporter) Render(ctx context.Context, def model.FormDefinition, _ render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return e.Source(def), nil
}

// Source generates the component source text. Pure and total: any
// well-formed definition yields source, and calling it twice on an unchanged
// definition yields byte-identical output.
func (e *Exporter) Source(def model.FormDefinition) []byte {
	name := componentIdentifier(def.Title, def.ID)

	var b strings.Builder
	b.Grow(2048 + 512*len(def.Fields))

	b.WriteString("import { useState } from \"react\";\n\n")

	b.WriteString("const FIELDS = ")
	b.WriteString(fieldsLiteral(def.Fields))
	b.WriteString(";\n\n")

	b.WriteString("const DEFAULT_VALUES = ")
	b.WriteString(defaultValuesLiteral(def.Fields))
	b.WriteString(";\n\n")

	b.WriteString("const REQUIRED_FIELDS = ")
	b.WriteString(requiredNamesLiteral(def.Fields))
	b.WriteString(";\n\n")

	fmt.Fprintf(&b, "export default function %s({ onSubmit }) {\n", name)
	b.WriteString("  const [values, setValues] = useState(DEFAULT_VALUES);\n\n")
	b.WriteString("  const setValue = (name, value) => {\n")
	b.WriteString("    setValues((prev) => ({ ...prev, [name]: value }));\n")
	b.WriteString("  };\n\n")
	b.WriteString("  const handleSubmit = (event) => {\n")
	b.WriteString("    event.preventDefault();\n")
	b.WriteString("    if (onSubmit) {\n")
	b.WriteString("      onSubmit({ ...values });\n")
	b.WriteString("    }\n")
	b.WriteString("  };\n\n")
	b.WriteString("  const handleReset = () => {\n")
	b.WriteString("    setValues(DEFAULT_VALUES);\n")
	b.WriteString("  };\n\n")

	b.WriteString("  return (\n")
	b.WriteString("    <form onSubmit={handleSubmit} onReset={handleReset}>\n")
	fmt.Fprintf(&b, "      <h2>%s</h2>\n", tpl(def.Title))
	if def.Description != "" {
		fmt.Fprintf(&b, "      <p>%s</p>\n", tpl(def.Description))
	}

	for _, field := range def.Fields {
		writeFieldBlock(&b, field)
	}

	b.WriteString("      <button type=\"submit\">Submit</button>\n")
	b.WriteString("      <button type=\"reset\">Reset</button>\n")
	b.WriteString("    </form>\n")
	b.WriteString("  );\n")
	b.WriteString("}\n")

	return []byte(b.String())
}

func writeFieldBlock(b *strings.Builder, field model.Field) {
	b.WriteString("      <div>\n")
	fmt.Fprintf(b, "        <label htmlFor=%s>%s</label>\n", tpl(field.Name), tpl(field.DisplayLabel()))

	switch field.Type {
	case model.FieldTypeTextarea:
		writeTextarea(b, field)
	case model.FieldTypeSelect:
		writeSelect(b, field)
	case model.FieldTypeCheckbox:
		writeCheckbox(b, field)
	case model.FieldTypeNumber:
		writeInput(b, field, "number")
	case model.FieldTypeEmail:
		writeInput(b, field, "email")
	case model.FieldTypeDate:
		writeInput(b, field, "date")
	default:
		// text and unrecognised future types render as text inputs.
		writeInput(b, field, "text")
	}

	if field.HelpText != "" {
		fmt.Fprintf(b, "        <small>%s</small>\n", tpl(field.HelpText))
	}
	b.WriteString("      </div>\n")
}

func writeInput(b *strings.Builder, field model.Field, inputType string) {
	b.WriteString("        <input\n")
	fmt.Fprintf(b, "          id=%s\n", tpl(field.Name))
	fmt.Fprintf(b, "          name=%s\n", tpl(field.Name))
	fmt.Fprintf(b, "          type=%q\n", inputType)
	writeCommonAttrs(b, field)
	writeConstraintAttrs(b, field)
	fmt.Fprintf(b, "          value={values[%s]}\n", jsString(field.Name))
	fmt.Fprintf(b, "          onChange={(event) => setValue(%s, event.target.value)}\n", jsString(field.Name))
	b.WriteString("        />\n")
}

func writeTextarea(b *strings.Builder, field model.Field) {
	b.WriteString("        <textarea\n")
	fmt.Fprintf(b, "          id=%s\n", tpl(field.Name))
	fmt.Fprintf(b, "          name=%s\n", tpl(field.Name))
	writeCommonAttrs(b, field)
	writeConstraintAttrs(b, field)
	fmt.Fprintf(b, "          value={values[%s]}\n", jsString(field.Name))
	fmt.Fprintf(b, "          onChange={(event) => setValue(%s, event.target.value)}\n", jsString(field.Name))
	b.WriteString("        />\n")
}

func writeSelect(b *strings.Builder, field model.Field) {
	b.WriteString("        <select\n")
	fmt.Fprintf(b, "          id=%s\n", tpl(field.Name))
	fmt.Fprintf(b, "          name=%s\n", tpl(field.Name))
	writeCommonAttrs(b, field)
	fmt.Fprintf(b, "          value={values[%s]}\n", jsString(field.Name))
	fmt.Fprintf(b, "          onChange={(event) => setValue(%s, event.target.value)}\n", jsString(field.Name))
	b.WriteString("        >\n")
	b.WriteString("          <option value=\"\">Choose...</option>\n")
	if rules, ok := field.SelectRules(); ok {
		for _, opt := range rules.Options {
			fmt.Fprintf(b, "          <option value=%s>%s</option>\n", tpl(opt.Value), tpl(opt.Label))
		}
	}
	b.WriteString("        </select>\n")
}

func writeCheckbox(b *strings.Builder, field model.Field) {
	b.WriteString("        <input\n")
	fmt.Fprintf(b, "          id=%s\n", tpl(field.Name))
	fmt.Fprintf(b, "          name=%s\n", tpl(field.Name))
	b.WriteString("          type=\"checkbox\"\n")
	if field.Required {
		b.WriteString("          required\n")
	}
	fmt.Fprintf(b, "          checked={values[%s] === true}\n", jsString(field.Name))
	fmt.Fprintf(b, "          onChange={(event) => setValue(%s, event.target.checked)}\n", jsString(field.Name))
	b.WriteString("        />\n")
}

func writeCommonAttrs(b *strings.Builder, field model.Field) {
	if field.Required {
		b.WriteString("          required\n")
	}
	if field.Placeholder != "" && field.Type != model.FieldTypeSelect {
		fmt.Fprintf(b, "          placeholder=%s\n", tpl(field.Placeholder))
	}
}

// writeConstraintAttrs mirrors the same constraints the projected schema
// exposes onto the control's native attributes.
func writeConstraintAttrs(b *strings.Builder, field model.Field) {
	if rules, ok := field.TextRules(); ok {
		if rules.MinLength != nil {
			fmt.Fprintf(b, "          minLength={%d}\n", *rules.MinLength)
		}
		if rules.MaxLength != nil {
			fmt.Fprintf(b, "          maxLength={%d}\n", *rules.MaxLength)
		}
		if _, compiled, err := rules.CompilePattern(); compiled && err == nil {
			fmt.Fprintf(b, "          pattern=%s\n", tpl(rules.Pattern))
		}
	}
	if rules, ok := field.NumberRules(); ok {
		if rules.Min != nil {
			fmt.Fprintf(b, "          min={%s}\n", formatNumber(*rules.Min))
		}
		if rules.Max != nil {
			fmt.Fprintf(b, "          max={%s}\n", formatNumber(*rules.Max))
		}
		if rules.Integer {
			b.WriteString("          step={1}\n")
		} else {
			b.WriteString("          step=\"any\"\n")
		}
	}
}

// fieldsLiteral embeds the field list as literal data. json.Marshal of the
// typed fields is deterministic (struct key order) and HTML-escapes angle
// brackets, so the snapshot can never terminate the surrounding source.
func fieldsLiteral(fields []model.Field) string {
	if len(fields) == 0 {
		return "[]"
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, field := range fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		payload, err := json.Marshal(field)
		if err != nil {
			// Field marshalling cannot fail for well-formed definitions;
			// degrade to an empty object rather than corrupt the source.
			buf.WriteString("{}")
			continue
		}
		buf.Write(payload)
	}
	buf.WriteByte(']')
	return buf.String()
}

func defaultValuesLiteral(fields []model.Field) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(jsString(field.Name))
		buf.WriteString(": ")
		if field.Type == model.FieldTypeCheckbox {
			buf.WriteString("false")
		} else {
			buf.WriteString(`""`)
		}
	}
	buf.WriteByte('}')
	return buf.String()
}

func requiredNamesLiteral(fields []model.Field) string {
	names := make([]string, 0)
	for _, field := range fields {
		if field.Required {
			names = append(names, field.Name)
		}
	}
	if len(names) == 0 {
		return "[]"
	}
	payload, err := json.Marshal(names)
	if err != nil {
		return "[]"
	}
	return string(payload)
}

// jsString renders a JSON string literal, which is valid JS and escapes
// quotes, backslashes, and angle brackets.
func jsString(value string) string {
	payload, err := json.Marshal(value)
	if err != nil {
		return `""`
	}
	return string(payload)
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
