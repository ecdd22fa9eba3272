package html

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/model"
)

// helpTextPolicy keeps only inline markup in author supplied help text.
var helpTextPolicy = bluemonday.UGCPolicy()

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fk-" + trimmed
}

// buildFieldMarkup assembles one field block: label, control, error list,
// help text. The value prefills the control and any error messages add the
// invalid chrome.
func buildFieldMarkup(field model.Field, value any, errors []string) string {
	var b strings.Builder
	b.Grow(512)

	b.WriteString(`      <div class="fk-field fk-field-`)
	b.WriteString(html.EscapeString(string(fieldClass(field.Type))))
	if len(errors) > 0 {
		b.WriteString(" fk-field-invalid")
	}
	b.WriteString("\">\n")

	if field.Type != model.FieldTypeCheckbox {
		writeLabel(&b, field)
	}

	switch field.Type {
	case model.FieldTypeTextarea:
		writeTextarea(&b, field, value, len(errors) > 0)
	case model.FieldTypeSelect:
		writeSelect(&b, field, value, len(errors) > 0)
	case model.FieldTypeCheckbox:
		writeCheckbox(&b, field, value, len(errors) > 0)
		writeLabel(&b, field)
	case model.FieldTypeNumber:
		writeInput(&b, field, "number", value, len(errors) > 0)
	case model.FieldTypeEmail:
		writeInput(&b, field, "email", value, len(errors) > 0)
	case model.FieldTypeDate:
		writeInput(&b, field, "date", value, len(errors) > 0)
	default:
		// text and unrecognised future types render as text inputs.
		writeInput(&b, field, "text", value, len(errors) > 0)
	}

	if len(errors) > 0 {
		b.WriteString("        <ul class=\"fk-errors\">\n")
		for _, message := range errors {
			b.WriteString("          <li>")
			b.WriteString(html.EscapeString(message))
			b.WriteString("</li>\n")
		}
		b.WriteString("        </ul>\n")
	}

	if hint := strings.TrimSpace(field.HelpText); hint != "" {
		b.WriteString(`        <small class="fk-help">`)
		b.WriteString(helpTextPolicy.Sanitize(hint))
		b.WriteString("</small>\n")
	}

	b.WriteString("      </div>\n")
	return b.String()
}

func fieldClass(t model.FieldType) model.FieldType {
	if t.Known() {
		return t
	}
	return model.FieldTypeText
}

func writeLabel(b *strings.Builder, field model.Field) {
	b.WriteString(`        <label for="`)
	b.WriteString(html.EscapeString(controlID(field.Name)))
	b.WriteString(`" class="fk-label">`)
	b.WriteString(html.EscapeString(field.DisplayLabel()))
	if field.Required {
		b.WriteString(` <span class="fk-required">*</span>`)
	}
	b.WriteString("</label>\n")
}

func writeInput(b *strings.Builder, field model.Field, inputType string, value any, invalid bool) {
	b.WriteString(`        <input id="`)
	b.WriteString(html.EscapeString(controlID(field.Name)))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" type="`)
	b.WriteString(inputType)
	b.WriteString(`"`)
	writeCommonAttrs(b, field, invalid)
	writeConstraintAttrs(b, field)
	if text := valueString(value); text != "" {
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(text))
		b.WriteString(`"`)
	}
	b.WriteString(">\n")
}

func writeTextarea(b *strings.Builder, field model.Field, value any, invalid bool) {
	b.WriteString(`        <textarea id="`)
	b.WriteString(html.EscapeString(controlID(field.Name)))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`"`)
	writeCommonAttrs(b, field, invalid)
	writeConstraintAttrs(b, field)
	b.WriteString(">")
	b.WriteString(html.EscapeString(valueString(value)))
	b.WriteString("</textarea>\n")
}

func writeSelect(b *strings.Builder, field model.Field, value any, invalid bool) {
	selected := valueString(value)

	b.WriteString(`        <select id="`)
	b.WriteString(html.EscapeString(controlID(field.Name)))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`"`)
	if field.Required {
		b.WriteString(" required")
	}
	if invalid {
		b.WriteString(` aria-invalid="true"`)
	}
	b.WriteString(">\n")

	b.WriteString(`          <option value="">Choose...</option>` + "\n")
	if rules, ok := field.SelectRules(); ok {
		for _, opt := range rules.Options {
			b.WriteString(`          <option value="`)
			b.WriteString(html.EscapeString(opt.Value))
			b.WriteString(`"`)
			if selected != "" && selected == opt.Value {
				b.WriteString(" selected")
			}
			b.WriteString(">")
			b.WriteString(html.EscapeString(opt.Label))
			b.WriteString("</option>\n")
		}
	}
	b.WriteString("        </select>\n")
}

func writeCheckbox(b *strings.Builder, field model.Field, value any, invalid bool) {
	b.WriteString(`        <input id="`)
	b.WriteString(html.EscapeString(controlID(field.Name)))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" type="checkbox"`)
	if field.Required {
		b.WriteString(" required")
	}
	if invalid {
		b.WriteString(` aria-invalid="true"`)
	}
	if value == true {
		b.WriteString(" checked")
	}
	b.WriteString(">\n")
}

func writeCommonAttrs(b *strings.Builder, field model.Field, invalid bool) {
	if field.Required {
		b.WriteString(" required")
	}
	if field.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(field.Placeholder))
		b.WriteString(`"`)
	}
	if invalid {
		b.WriteString(` aria-invalid="true"`)
	}
}

// writeConstraintAttrs mirrors the rule variant onto the control's native
// validation attributes. Patterns that do not compile are skipped, matching
// the projector and the validator.
func writeConstraintAttrs(b *strings.Builder, field model.Field) {
	if rules, ok := field.TextRules(); ok {
		if rules.MinLength != nil {
			fmt.Fprintf(b, ` minlength="%d"`, *rules.MinLength)
		}
		if rules.MaxLength != nil {
			fmt.Fprintf(b, ` maxlength="%d"`, *rules.MaxLength)
		}
		if _, compiled, err := rules.CompilePattern(); compiled && err == nil {
			b.WriteString(` pattern="`)
			b.WriteString(html.EscapeString(rules.Pattern))
			b.WriteString(`"`)
		}
	}
	if rules, ok := field.NumberRules(); ok {
		if rules.Min != nil {
			fmt.Fprintf(b, ` min="%s"`, formatNumber(*rules.Min))
		}
		if rules.Max != nil {
			fmt.Fprintf(b, ` max="%s"`, formatNumber(*rules.Max))
		}
		if rules.Integer {
			b.WriteString(` step="1"`)
		} else {
			b.WriteString(` step="any"`)
		}
	}
}

func valueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return ""
	case float64:
		return formatNumber(v)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
