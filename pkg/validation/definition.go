// Package validation lints form definitions at authoring time. It flags the
// problems the runtime deliberately tolerates, such as uncompilable patterns,
// so authors can fix them before a form ships.
package validation

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Issue represents one definition problem with optional field location.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures lint outcomes for builder previews.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// ValidateDefinition checks a definition for structural problems. It never
// fails hard: every finding is an issue in the result.
func ValidateDefinition(def model.FormDefinition) Result {
	var issues []Issue

	if def.Title == "" {
		issues = append(issues, Issue{Message: "form title is empty"})
	}

	seen := make(map[string]bool, len(def.Fields))
	for _, field := range def.Fields {
		issues = append(issues, lintField(field, seen)...)
		seen[field.Name] = true
	}

	return Result{Valid: len(issues) == 0, Issues: issues}
}

func lintField(field model.Field, seen map[string]bool) []Issue {
	var issues []Issue

	at := func(format string, args ...any) {
		issues = append(issues, Issue{Field: field.Name, Message: fmt.Sprintf(format, args...)})
	}

	if !model.NamePattern.MatchString(field.Name) {
		at("name %q is not a valid identifier", field.Name)
	} else if seen[field.Name] {
		at("name %q is already used by an earlier field", field.Name)
	}

	if !field.Type.Known() {
		at("type %q is not recognised and will degrade to text", field.Type)
	}

	if field.Rules != nil && !field.Rules.AppliesTo(field.Type) {
		at("rules do not apply to a %s field", field.Type)
	}

	if rules, ok := field.TextRules(); ok {
		if rules.MinLength != nil && *rules.MinLength < 0 {
			at("minimum length %d is negative", *rules.MinLength)
		}
		if rules.MaxLength != nil && *rules.MaxLength < 0 {
			at("maximum length %d is negative", *rules.MaxLength)
		}
		if rules.MinLength != nil && rules.MaxLength != nil && *rules.MinLength > *rules.MaxLength {
			at("minimum length %d exceeds maximum length %d", *rules.MinLength, *rules.MaxLength)
		}
		if _, compiled, err := rules.CompilePattern(); !compiled && err != nil {
			at("pattern %q does not compile and will be ignored", rules.Pattern)
		}
	}

	if rules, ok := field.NumberRules(); ok {
		if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
			at("minimum %v exceeds maximum %v", *rules.Min, *rules.Max)
		}
	}

	if rules, ok := field.SelectRules(); ok {
		if len(rules.Options) == 0 {
			at("select field has no options")
		}
		values := make(map[string]bool, len(rules.Options))
		for _, opt := range rules.Options {
			if values[opt.Value] {
				at("option value %q is duplicated", opt.Value)
			}
			values[opt.Value] = true
		}
	}

	return issues
}
