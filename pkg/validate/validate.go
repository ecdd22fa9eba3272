// Package validate implements the submit-time checks for a single field
// value. Everything here is pure and reentrant: the validator only reads its
// inputs and allocates its outputs, so one instance may serve any number of
// renderer sessions.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Violation is one failed check. Message is the inline human-readable string;
// Name keys it to the offending field.
type Violation struct {
	Name    string
	Message string
}

// PatternReporter receives patterns that failed to compile. Reporting is the
// only visibility channel for malformed patterns: they never affect the
// validation outcome (fail-open is the documented contract, not a defect).
type PatternReporter func(field model.Field, pattern string, err error)

// Option configures a Validator.
type Option func(*Validator)

// WithPatternReporter installs a hook for uncompilable patterns.
func WithPatternReporter(reporter PatternReporter) Option {
	return func(v *Validator) {
		if reporter != nil {
			v.reportPattern = reporter
		}
	}
}

// Validator evaluates field constraints against runtime values.
type Validator struct {
	reportPattern PatternReporter
}

// New constructs a Validator applying any provided options.
func New(options ...Option) *Validator {
	v := &Validator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Field checks one field against a runtime value. It returns nil when no
// violation is found. The required check runs first and short-circuits, so a
// field never yields a secondary message on top of the required one.
func (v *Validator) Field(field model.Field, value any) *Violation {
	label := field.DisplayLabel()

	if field.Required && isEmpty(field.Type, value) {
		return v.violation(field, "%s is required.", label)
	}

	switch field.Type {
	case model.FieldTypeText, model.FieldTypeTextarea, model.FieldTypeEmail:
		return v.checkText(field, value)
	case model.FieldTypeNumber:
		return v.checkNumber(field, value)
	}

	// select, date, checkbox, and unrecognised types carry nothing beyond
	// the required check.
	return nil
}

// Form runs Field over every field of the definition, aggregating messages
// keyed by field name. An empty map means the submission passes.
func (v *Validator) Form(def model.FormDefinition, values map[string]any) map[string][]string {
	out := make(map[string][]string)
	for _, field := range def.Fields {
		if violation := v.Field(field, values[field.Name]); violation != nil {
			out[field.Name] = append(out[field.Name], violation.Message)
		}
	}
	return out
}

func (v *Validator) checkText(field model.Field, value any) *Violation {
	// Text constraints only apply to string values; anything else passes
	// through untouched.
	str, ok := value.(string)
	if !ok {
		return nil
	}

	rules, ok := field.TextRules()
	if !ok {
		return nil
	}
	label := field.DisplayLabel()

	length := utf8.RuneCountInString(str)
	if rules.MinLength != nil && length < *rules.MinLength {
		return v.violation(field, "%s must be at least %d characters.", label, *rules.MinLength)
	}
	if rules.MaxLength != nil && length > *rules.MaxLength {
		return v.violation(field, "%s must be at most %d characters.", label, *rules.MaxLength)
	}

	if re, ok, err := rules.CompilePattern(); err != nil {
		if v.reportPattern != nil {
			v.reportPattern(field, rules.Pattern, err)
		}
	} else if ok && !re.MatchString(str) {
		return v.violation(field, "%s is not in the expected format.", label)
	}

	return nil
}

func (v *Validator) checkNumber(field model.Field, value any) *Violation {
	if isEmpty(field.Type, value) {
		return nil
	}
	label := field.DisplayLabel()

	num, ok := coerceNumber(value)
	if !ok {
		return v.violation(field, "%s must be a number.", label)
	}

	rules, hasRules := field.NumberRules()
	if !hasRules {
		return nil
	}

	if rules.Integer && math.Trunc(num) != num {
		return v.violation(field, "%s must be a whole number.", label)
	}
	if rules.Min != nil && num < *rules.Min {
		return v.violation(field, "%s must be at least %s.", label, formatBound(*rules.Min))
	}
	if rules.Max != nil && num > *rules.Max {
		return v.violation(field, "%s must be at most %s.", label, formatBound(*rules.Max))
	}
	return nil
}

func (v *Validator) violation(field model.Field, format string, args ...any) *Violation {
	return &Violation{
		Name:    field.Name,
		Message: fmt.Sprintf(format, args...),
	}
}

// isEmpty reports type-appropriate emptiness: a checkbox is empty unless the
// value is exactly true; every other type is empty on nil or "".
func isEmpty(t model.FieldType, value any) bool {
	if t == model.FieldTypeCheckbox {
		return value != true
	}
	if value == nil {
		return true
	}
	if str, ok := value.(string); ok {
		return str == ""
	}
	return false
}

// coerceNumber accepts native numeric types and numeric text, mirroring how
// values arrive from input controls.
func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		// ParseFloat also accepts "NaN" and infinity spellings; those are not
		// numbers a form control can submit.
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func formatBound(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
