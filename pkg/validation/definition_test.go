package validation

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/model"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestValidateDefinition_CleanDefinition(t *testing.T) {
	def := model.FormDefinition{
		Title: "Contact",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeText, Rules: model.TextRules{MinLength: intPtr(1)}},
			{Name: "email", Type: model.FieldTypeEmail},
		},
	}
	result := ValidateDefinition(def)
	if !result.Valid {
		t.Fatalf("expected clean definition, got issues: %+v", result.Issues)
	}
}

func TestValidateDefinition_Findings(t *testing.T) {
	cases := []struct {
		name    string
		def     model.FormDefinition
		message string
	}{
		{
			name:    "empty title",
			def:     model.FormDefinition{},
			message: "form title is empty",
		},
		{
			name: "bad name",
			def: model.FormDefinition{Title: "T", Fields: []model.Field{
				{Name: "9lives", Type: model.FieldTypeText},
			}},
			message: "not a valid identifier",
		},
		{
			name: "duplicate name",
			def: model.FormDefinition{Title: "T", Fields: []model.Field{
				{Name: "a", Type: model.FieldTypeText},
				{Name: "a", Type: model.FieldTypeText},
			}},
			message: "already used",
		},
		{
			name: "unknown type",
			def: model.FormDefinition{Title: "T", Fields: []model.Field{
				{Name: "a", Type: model.FieldType("hologram")},
			}},
			message: "not recognised",
		},
		{
			name: "mismatched rules",
			def: model.FormDefinition{Title: "T", Fields: []model.Field{
				{Name: "a", Type: model.FieldTypeNumber, Rules: model.TextRules{}},
			}},
			message: "rules do not apply",
		},
		{
			name: "inverted length bounds",
			def: model.FormDefinition{Title: "T", Fields: []model.Field{
				{Name: "a", Type: model.FieldTypeText, Rules: model.TextRules{
					MinLength: intPtr(5), MaxLength: intPtr(2),
				}},
			}},
			message: "exceeds maximum length",
		},
		{
			name: "broken pattern",
			def: model.FormDefinition{Title: "T", Fields: []model.Field{
				{Name: "a", Type: model.FieldTypeText, Rules: model.TextRules{Pattern: "[unclosed"}},
			}},
			message: "does not compile",
		},
		{
			name: "inverted numeric bounds",
			def: model.FormDefinition{Title: "T", Fields: []model.Field{
				{Name: "a", Type: model.FieldTypeNumber, Rules: model.NumberRules{
					Min: floatPtr(10), Max: floatPtr(1),
				}},
			}},
			message: "exceeds maximum",
		},
		{
			name: "empty select",
			def: model.FormDefinition{Title: "T", Fields: []model.Field{
				{Name: "a", Type: model.FieldTypeSelect, Rules: model.SelectRules{}},
			}},
			message: "no options",
		},
		{
			name: "duplicate option values",
			def: model.FormDefinition{Title: "T", Fields: []model.Field{
				{Name: "a", Type: model.FieldTypeSelect, Rules: model.SelectRules{Options: []model.Option{
					{Label: "Yes", Value: "y"},
					{Label: "Yep", Value: "y"},
				}}},
			}},
			message: "duplicated",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ValidateDefinition(tc.def)
			if result.Valid {
				t.Fatalf("expected issues")
			}
			found := false
			for _, issue := range result.Issues {
				if strings.Contains(issue.Message, tc.message) {
					found = true
				}
			}
			if !found {
				t.Fatalf("no issue matching %q in %+v", tc.message, result.Issues)
			}
		})
	}
}
