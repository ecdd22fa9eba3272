package importer

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schema"
)

func testImporter() *Importer {
	n := 0
	return New(
		WithClock(func() time.Time {
			return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		}),
		WithIDGenerator(func() string {
			n++
			return "id-" + string(rune('0'+n))
		}),
	)
}

const sampleSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Signup",
  "description": "Create an account.",
  "type": "object",
  "properties": {
    "email": { "type": "string", "format": "email", "title": "Email" },
    "age": { "type": "integer", "minimum": 18, "maximum": 120 },
    "bio": { "type": "string", "minLength": 10, "maxLength": 200 },
    "plan": { "type": "string", "enum": ["free", "pro"] },
    "terms": { "type": "boolean" }
  },
  "required": ["email", "terms"]
}`

func TestImport_MapsPropertiesToFields(t *testing.T) {
	def, err := testImporter().Import(context.Background(), []byte(sampleSchema))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if def.Title != "Signup" || def.Description != "Create an account." {
		t.Fatalf("form metadata not mapped: %+v", def)
	}
	if def.Version != model.CurrentVersion {
		t.Fatalf("version not seeded: %d", def.Version)
	}

	// Properties come back in sorted name order.
	wantOrder := []string{"age", "bio", "email", "plan", "terms"}
	var gotOrder []string
	for _, field := range def.Fields {
		gotOrder = append(gotOrder, field.Name)
	}
	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	email, _ := def.FieldByName("email")
	if email.Type != model.FieldTypeEmail || !email.Required || email.Label != "Email" {
		t.Fatalf("email field mismatch: %+v", email)
	}

	age, _ := def.FieldByName("age")
	rules, ok := age.NumberRules()
	if age.Type != model.FieldTypeNumber || !ok || !rules.Integer {
		t.Fatalf("age field mismatch: %+v", age)
	}
	if *rules.Min != 18 || *rules.Max != 120 {
		t.Fatalf("age bounds mismatch: %+v", rules)
	}

	bio, _ := def.FieldByName("bio")
	text, ok := bio.TextRules()
	if !ok || *text.MinLength != 10 || *text.MaxLength != 200 {
		t.Fatalf("bio rules mismatch: %+v", bio)
	}

	plan, _ := def.FieldByName("plan")
	sel, ok := plan.SelectRules()
	if plan.Type != model.FieldTypeSelect || !ok {
		t.Fatalf("plan field mismatch: %+v", plan)
	}
	if diff := cmp.Diff([]string{"free", "pro"}, sel.Values()); diff != "" {
		t.Fatalf("enum order mismatch (-want +got):\n%s", diff)
	}

	terms, _ := def.FieldByName("terms")
	if terms.Type != model.FieldTypeCheckbox || !terms.Required {
		t.Fatalf("terms field mismatch: %+v", terms)
	}
}

func TestImport_AcceptsYAML(t *testing.T) {
	raw := []byte(`
title: Feedback
type: object
properties:
  rating:
    type: number
    minimum: 1
    maximum: 5
required:
  - rating
`)
	def, err := testImporter().Import(context.Background(), raw)
	if err != nil {
		t.Fatalf("import yaml: %v", err)
	}
	if def.Title != "Feedback" || len(def.Fields) != 1 {
		t.Fatalf("unexpected definition: %+v", def)
	}
	rating := def.Fields[0]
	rules, ok := rating.NumberRules()
	if !ok || *rules.Min != 1 || *rules.Max != 5 || rules.Integer {
		t.Fatalf("rating rules mismatch: %+v", rating)
	}
}

func TestImport_RoundTripsWithProjector(t *testing.T) {
	def, err := testImporter().Import(context.Background(), []byte(sampleSchema))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	doc := schema.Project(def)

	reimported, err := testImporter().Import(context.Background(), mustIndent(t, doc))
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}

	if len(reimported.Fields) != len(def.Fields) {
		t.Fatalf("field count drifted: %d vs %d", len(reimported.Fields), len(def.Fields))
	}
	for i := range def.Fields {
		if reimported.Fields[i].Name != def.Fields[i].Name ||
			reimported.Fields[i].Type != def.Fields[i].Type ||
			reimported.Fields[i].Required != def.Fields[i].Required {
			t.Fatalf("field %d drifted: %+v vs %+v", i, reimported.Fields[i], def.Fields[i])
		}
	}
}

func TestImport_RejectsGarbage(t *testing.T) {
	if _, err := testImporter().Import(context.Background(), []byte("{broken")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := testImporter().Import(context.Background(), nil); err == nil {
		t.Fatalf("expected empty payload error")
	}
}

func mustIndent(t *testing.T, doc schema.Document) []byte {
	t.Helper()
	payload, err := doc.Indent()
	if err != nil {
		t.Fatalf("indent: %v", err)
	}
	return payload
}
