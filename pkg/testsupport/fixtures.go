// Package testsupport carries shared fixtures for tests across the module.
package testsupport

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// ContactForm returns a small, fully constrained definition exercising every
// field type. Tests mutate their own copy via Clone.
func ContactForm() model.FormDefinition {
	return model.FormDefinition{
		ID:          "contact",
		Title:       "Contact Us",
		Description: "We reply within a day.",
		Version:     model.CurrentVersion,
		Fields: []model.Field{
			{
				ID: "f-name", Name: "name", Type: model.FieldTypeText, Label: "Name",
				Required:    true,
				Placeholder: "Jane Doe",
				Rules:       model.TextRules{MinLength: intPtr(2), MaxLength: intPtr(60)},
			},
			{
				ID: "f-email", Name: "email", Type: model.FieldTypeEmail, Label: "Email",
				Required: true,
			},
			{
				ID: "f-birthday", Name: "birthday", Type: model.FieldTypeDate, Label: "Birthday",
			},
			{
				ID: "f-rating", Name: "rating", Type: model.FieldTypeNumber, Label: "Rating",
				Rules: model.NumberRules{Min: floatPtr(1), Max: floatPtr(5), Integer: true},
			},
			{
				ID: "f-message", Name: "message", Type: model.FieldTypeTextarea, Label: "Message",
				Required: true,
				Rules:    model.TextRules{MaxLength: intPtr(2000)},
			},
			{
				ID: "f-channel", Name: "channel", Type: model.FieldTypeSelect, Label: "Channel",
				Rules: model.SelectRules{Options: []model.Option{
					{Label: "Email", Value: "email"},
					{Label: "Phone", Value: "phone"},
				}},
			},
			{
				ID: "f-subscribed", Name: "subscribed", Type: model.FieldTypeCheckbox, Label: "Subscribe",
			},
		},
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// AcceptedValues returns a value set the contact form validates cleanly.
func AcceptedValues() map[string]any {
	return map[string]any{
		"name":       "Ada Lovelace",
		"email":      "ada@example.com",
		"birthday":   "",
		"rating":     "5",
		"message":    "Hello from the fixtures.",
		"channel":    "email",
		"subscribed": true,
	}
}

// RequireEqual fails the test with a readable diff when want and got differ.
func RequireEqual(t *testing.T, want, got any) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
