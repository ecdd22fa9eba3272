package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestFieldJSON_RoundTrip(t *testing.T) {
	minLen := 2
	maxLen := 64
	field := Field{
		ID:          "f-1",
		Name:        "email",
		Type:        FieldTypeEmail,
		Label:       "Email",
		Required:    true,
		Placeholder: "you@example.com",
		HelpText:    "Work address preferred",
		Rules:       TextRules{MinLength: &minLen, MaxLength: &maxLen, Pattern: `@`},
	}

	payload, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("marshal field: %v", err)
	}

	var decoded Field
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal field: %v", err)
	}
	if diff := cmp.Diff(field, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldJSON_DropsUnrelatedRuleKeys(t *testing.T) {
	// A text field that still carries select options and numeric bounds from
	// an earlier type change. Only the text keys may survive decoding.
	payload := []byte(`{
		"id": "f-2",
		"name": "nickname",
		"type": "text",
		"label": "Nickname",
		"rules": {
			"minLength": 3,
			"min": 1,
			"max": 10,
			"integer": true,
			"options": [{"label": "Yes", "value": "y"}]
		}
	}`)

	var field Field
	if err := json.Unmarshal(payload, &field); err != nil {
		t.Fatalf("unmarshal field: %v", err)
	}

	rules, ok := field.TextRules()
	if !ok {
		t.Fatalf("expected text rules, got %#v", field.Rules)
	}
	if rules.MinLength == nil || *rules.MinLength != 3 {
		t.Fatalf("minLength not preserved: %#v", rules)
	}
	if _, ok := field.SelectRules(); ok {
		t.Fatalf("select rules should not survive on a text field")
	}
	if _, ok := field.NumberRules(); ok {
		t.Fatalf("number rules should not survive on a text field")
	}
}

func TestFieldJSON_SelectOptionsOrdered(t *testing.T) {
	payload := []byte(`{
		"id": "f-3",
		"name": "plan",
		"type": "select",
		"label": "Plan",
		"rules": {"options": [
			{"label": "Free", "value": "free"},
			{"label": "Pro", "value": "pro"},
			{"label": "Team", "value": "team"}
		]}
	}`)

	var field Field
	if err := json.Unmarshal(payload, &field); err != nil {
		t.Fatalf("unmarshal field: %v", err)
	}
	rules, ok := field.SelectRules()
	if !ok {
		t.Fatalf("expected select rules, got %#v", field.Rules)
	}
	want := []string{"free", "pro", "team"}
	if diff := cmp.Diff(want, rules.Values()); diff != "" {
		t.Fatalf("option order mismatch (-want +got):\n%s", diff)
	}
}

func TestRulesAccessors_RequireMatchingType(t *testing.T) {
	field := Field{
		Name:  "age",
		Type:  FieldTypeNumber,
		Rules: TextRules{Pattern: `^\d+$`},
	}
	if _, ok := field.TextRules(); ok {
		t.Fatalf("text rules must not apply to a number field")
	}
	if _, ok := field.NumberRules(); ok {
		t.Fatalf("mismatched variant must read as absent")
	}
}

func TestFormDefinitionJSON_TimestampKeys(t *testing.T) {
	def := FormDefinition{
		ID:        "form-1",
		Title:     "Contact",
		Version:   CurrentVersion,
		Fields:    []Field{{ID: "f-1", Name: "name", Type: FieldTypeText, Label: "Name"}},
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
	}

	payload, err := json.Marshal(def)
	if err != nil {
		t.Fatalf("marshal definition: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, ok := raw["createdAtISO"]; !ok {
		t.Fatalf("createdAtISO key missing: %s", payload)
	}
	if _, ok := raw["updatedAtISO"]; !ok {
		t.Fatalf("updatedAtISO key missing: %s", payload)
	}

	var decoded FormDefinition
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal definition: %v", err)
	}
	if !decoded.CreatedAt.Equal(def.CreatedAt) || !decoded.UpdatedAt.Equal(def.UpdatedAt) {
		t.Fatalf("timestamps not preserved: %#v", decoded)
	}
}

func TestClone_DetachesRuleStorage(t *testing.T) {
	minLen := 1
	def := FormDefinition{
		Fields: []Field{
			{Name: "bio", Type: FieldTypeTextarea, Rules: TextRules{MinLength: &minLen}},
			{Name: "plan", Type: FieldTypeSelect, Rules: SelectRules{Options: []Option{{Label: "A", Value: "a"}}}},
		},
	}

	clone := def.Clone()
	clone.Fields[0].Label = "changed"
	rules := clone.Fields[1].Rules.(SelectRules)
	rules.Options[0].Value = "mutated"

	if def.Fields[0].Label == "changed" {
		t.Fatalf("clone shares field storage")
	}
	if def.Fields[1].Rules.(SelectRules).Options[0].Value == "mutated" {
		t.Fatalf("clone shares option storage")
	}
}

func TestZeroValue(t *testing.T) {
	if got := ZeroValue(FieldTypeCheckbox); got != false {
		t.Fatalf("checkbox zero value: %#v", got)
	}
	for _, ft := range []FieldType{FieldTypeText, FieldTypeDate, FieldType("unknown")} {
		if got := ZeroValue(ft); got != "" {
			t.Fatalf("%s zero value: %#v", ft, got)
		}
	}
}
