package model

import "encoding/json"

// wireField is the persisted shape of a field. The rules bag stays flat for
// compatibility with stored definitions; only the keys relevant to the
// field's own type survive decoding.
type wireField struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Required    bool      `json:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	HelpText    string    `json:"helperText,omitempty"`
	Rules       *wireRule `json:"rules,omitempty"`
}

// wireRule is the union of every rule key any field type may carry.
type wireRule struct {
	MinLength *int         `json:"minLength,omitempty"`
	MaxLength *int         `json:"maxLength,omitempty"`
	Pattern   string       `json:"pattern,omitempty"`
	Min       *float64     `json:"min,omitempty"`
	Max       *float64     `json:"max,omitempty"`
	Integer   *bool        `json:"integer,omitempty"`
	Options   []wireOption `json:"options,omitempty"`
}

type wireOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MarshalJSON emits the flat rules bag holding only the active variant's
// keys. Output is deterministic: struct fields marshal in declaration order.
func (f Field) MarshalJSON() ([]byte, error) {
	wire := wireField{
		ID:          f.ID,
		Name:        f.Name,
		Type:        f.Type,
		Label:       f.Label,
		Required:    f.Required,
		Placeholder: f.Placeholder,
		HelpText:    f.HelpText,
	}
	switch rules := f.Rules.(type) {
	case TextRules:
		if rules != (TextRules{}) {
			wire.Rules = &wireRule{
				MinLength: rules.MinLength,
				MaxLength: rules.MaxLength,
				Pattern:   rules.Pattern,
			}
		}
	case NumberRules:
		if rules.Min != nil || rules.Max != nil || rules.Integer {
			wr := &wireRule{Min: rules.Min, Max: rules.Max}
			if rules.Integer {
				v := true
				wr.Integer = &v
			}
			wire.Rules = wr
		}
	case SelectRules:
		if len(rules.Options) > 0 {
			opts := make([]wireOption, len(rules.Options))
			for i, opt := range rules.Options {
				opts[i] = wireOption{Label: opt.Label, Value: opt.Value}
			}
			wire.Rules = &wireRule{Options: opts}
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the flat rules bag into the variant matching the
// field's declared type. Keys from other families — leftovers of an earlier
// type change — are dropped here so no downstream consumer ever sees them.
func (f *Field) UnmarshalJSON(data []byte) error {
	var wire wireField
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*f = Field{
		ID:          wire.ID,
		Name:        wire.Name,
		Type:        wire.Type,
		Label:       wire.Label,
		Required:    wire.Required,
		Placeholder: wire.Placeholder,
		HelpText:    wire.HelpText,
		Rules:       rulesFromWire(wire.Type, wire.Rules),
	}
	return nil
}

func rulesFromWire(t FieldType, wire *wireRule) Rules {
	if wire == nil {
		return nil
	}
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeEmail:
		rules := TextRules{
			MinLength: wire.MinLength,
			MaxLength: wire.MaxLength,
			Pattern:   wire.Pattern,
		}
		if rules == (TextRules{}) {
			return nil
		}
		return rules
	case FieldTypeNumber:
		rules := NumberRules{Min: wire.Min, Max: wire.Max}
		if wire.Integer != nil {
			rules.Integer = *wire.Integer
		}
		if rules.Min == nil && rules.Max == nil && !rules.Integer {
			return nil
		}
		return rules
	case FieldTypeSelect:
		if wire.Options == nil {
			return nil
		}
		opts := make([]Option, len(wire.Options))
		for i, opt := range wire.Options {
			opts[i] = Option{Label: opt.Label, Value: opt.Value}
		}
		return SelectRules{Options: opts}
	default:
		// date, checkbox, and unrecognised types carry no rules.
		return nil
	}
}
