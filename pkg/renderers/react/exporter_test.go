package react

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/model"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleDefinition() model.FormDefinition {
	return model.FormDefinition{
		ID:          "contact",
		Title:       "Contact Us",
		Description: "We reply within a day.",
		Fields: []model.Field{
			{
				Name: "name", Type: model.FieldTypeText, Label: "Name", Required: true,
				Placeholder: "Jane Doe",
				Rules:       model.TextRules{MinLength: intPtr(2), MaxLength: intPtr(60)},
			},
			{
				Name: "rating", Type: model.FieldTypeNumber, Label: "Rating",
				Rules: model.NumberRules{Min: floatPtr(1), Max: floatPtr(5), Integer: true},
			},
			{
				Name: "channel", Type: model.FieldTypeSelect, Label: "Channel",
				Rules: model.SelectRules{Options: []model.Option{
					{Label: "Email", Value: "email"},
					{Label: "Phone", Value: "phone"},
				}},
			},
			{Name: "subscribed", Type: model.FieldTypeCheckbox, Label: "Subscribe"},
		},
	}
}

func TestSource_ComponentShape(t *testing.T) {
	source := string(New().Source(sampleDefinition()))

	for _, want := range []string{
		"export default function ContactUs({ onSubmit })",
		"const FIELDS = ",
		"const DEFAULT_VALUES = ",
		"const REQUIRED_FIELDS = [\"name\"]",
		"useState(DEFAULT_VALUES)",
		"onSubmit({ ...values })",
	} {
		if !strings.Contains(source, want) {
			t.Fatalf("generated source missing %q:\n%s", want, source)
		}
	}
}

func TestSource_ConstraintAttributesMirrored(t *testing.T) {
	source := string(New().Source(sampleDefinition()))

	for _, want := range []string{
		"minLength={2}",
		"maxLength={60}",
		"min={1}",
		"max={5}",
		"step={1}",
		"required",
		`type="number"`,
		`type="checkbox"`,
	} {
		if !strings.Contains(source, want) {
			t.Fatalf("generated source missing %q", want)
		}
	}
}

func TestSource_SelectOptionsInOrder(t *testing.T) {
	source := string(New().Source(sampleDefinition()))
	emailIdx := strings.Index(source, "{`email`}")
	phoneIdx := strings.Index(source, "{`phone`}")
	if emailIdx < 0 || phoneIdx < 0 || emailIdx > phoneIdx {
		t.Fatalf("options missing or out of order: email=%d phone=%d", emailIdx, phoneIdx)
	}
}

func TestSource_DefaultValuesSeed(t *testing.T) {
	source := string(New().Source(sampleDefinition()))
	if !strings.Contains(source, `"subscribed": false`) {
		t.Fatalf("checkbox default missing:\n%s", source)
	}
	if !strings.Contains(source, `"name": ""`) {
		t.Fatalf("text default missing:\n%s", source)
	}
}

func TestSource_HostileTitleCannotBreakDelimiters(t *testing.T) {
	def := model.FormDefinition{
		ID:    "f1",
		Title: "3rd Party!` ${alert(1)} \\",
		Fields: []model.Field{
			{Name: "x", Type: model.FieldTypeText, Label: "`${boom}`"},
		},
	}

	source := string(New().Source(def))

	if !strings.Contains(source, "export default function Form3rdPartyAlert1") {
		t.Fatalf("identifier not sanitised:\n%s", source)
	}
	// No raw backtick or interpolation marker from the title may survive
	// inside a template literal.
	if strings.Contains(source, "Party!` ") {
		t.Fatalf("unescaped backtick leaked into source")
	}
	if strings.Count(source, "${alert(1)}") != strings.Count(source, "\\${alert(1)}") {
		t.Fatalf("unescaped interpolation marker leaked into source")
	}
	if !strings.Contains(source, "\\`") || !strings.Contains(source, `\$`) {
		t.Fatalf("expected escaped delimiters in source:\n%s", source)
	}
}

func TestComponentIdentifier(t *testing.T) {
	cases := []struct {
		title string
		id    string
		want  string
	}{
		{title: "Contact Us", want: "ContactUs"},
		{title: "3rd Party!", want: "Form3rdParty"},
		{title: "", id: "feedback-form", want: "FeedbackForm"},
		{title: "!!!", id: "???", want: "GeneratedForm"},
		{title: "_private", want: "_private"},
		{title: "9", want: "Form9"},
	}
	for _, tc := range cases {
		if got := componentIdentifier(tc.title, tc.id); got != tc.want {
			t.Fatalf("componentIdentifier(%q, %q): want %q, got %q", tc.title, tc.id, tc.want, got)
		}
	}
}

func TestSource_Deterministic(t *testing.T) {
	def := sampleDefinition()
	first := New().Source(def)
	second := New().Source(def)
	if !bytes.Equal(first, second) {
		t.Fatalf("source generation is not byte-identical")
	}
}

func TestSource_UnknownTypeFallsBackToTextInput(t *testing.T) {
	def := model.FormDefinition{
		Title:  "X",
		Fields: []model.Field{{Name: "mystery", Type: model.FieldType("hologram")}},
	}
	source := string(New().Source(def))
	if !strings.Contains(source, `type="text"`) {
		t.Fatalf("unknown type must render a text input:\n%s", source)
	}
}
