package model

import "regexp"

// Rules is the tagged constraint variant attached to a field. Exactly one
// concrete type exists per constraint family, so invalid combinations (say,
// select options on a number field) are unrepresentable in memory. The wire
// format remains the historical flat "rules" bag; the JSON codec in this
// package is the only place that interprets it.
type Rules interface {
	// AppliesTo reports whether the variant is meaningful for the given
	// field type. Consumers must treat a mismatching variant — typically left
	// behind by a type change — as absent.
	AppliesTo(t FieldType) bool
}

// TextRules constrains text, textarea, and email fields.
type TextRules struct {
	MinLength *int
	MaxLength *int
	// Pattern is the string form of a regular expression, tested unanchored
	// against the full value. An uncompilable pattern is no constraint.
	Pattern string
}

// AppliesTo implements Rules.
func (TextRules) AppliesTo(t FieldType) bool {
	return t == FieldTypeText || t == FieldTypeTextarea || t == FieldTypeEmail
}

// CompilePattern compiles the pattern, returning ok=false when the rule has
// no pattern or the pattern does not compile. Both validator and projector
// fail open on the error case; err is exposed so the authoring surface can
// report it.
func (r TextRules) CompilePattern() (re *regexp.Regexp, ok bool, err error) {
	if r.Pattern == "" {
		return nil, false, nil
	}
	re, err = regexp.Compile(r.Pattern)
	if err != nil {
		return nil, false, err
	}
	return re, true, nil
}

// NumberRules constrains number fields. Min and Max are inclusive bounds.
type NumberRules struct {
	Min     *float64
	Max     *float64
	Integer bool
}

// AppliesTo implements Rules.
func (NumberRules) AppliesTo(t FieldType) bool {
	return t == FieldTypeNumber
}

// Option is one choice of a select field. Value is the submitted datum and
// must be unique within the field; Label is the caption.
type Option struct {
	Label string
	Value string
}

// SelectRules constrains select fields with an ordered option list.
type SelectRules struct {
	Options []Option
}

// AppliesTo implements Rules.
func (SelectRules) AppliesTo(t FieldType) bool {
	return t == FieldTypeSelect
}

// Values returns the option values in declaration order.
func (r SelectRules) Values() []string {
	if len(r.Options) == 0 {
		return []string{}
	}
	out := make([]string, len(r.Options))
	for i, opt := range r.Options {
		out[i] = opt.Value
	}
	return out
}

// TextRules returns the text constraint variant when present and applicable
// to the field's own type.
func (f Field) TextRules() (TextRules, bool) {
	rules, ok := f.Rules.(TextRules)
	if !ok || !rules.AppliesTo(f.Type) {
		return TextRules{}, false
	}
	return rules, true
}

// NumberRules returns the numeric constraint variant when present and
// applicable to the field's own type.
func (f Field) NumberRules() (NumberRules, bool) {
	rules, ok := f.Rules.(NumberRules)
	if !ok || !rules.AppliesTo(f.Type) {
		return NumberRules{}, false
	}
	return rules, true
}

// SelectRules returns the option list variant when present and applicable to
// the field's own type.
func (f Field) SelectRules() (SelectRules, bool) {
	rules, ok := f.Rules.(SelectRules)
	if !ok || !rules.AppliesTo(f.Type) {
		return SelectRules{}, false
	}
	return rules, true
}

func cloneRules(rules Rules) Rules {
	switch r := rules.(type) {
	case TextRules:
		out := r
		if r.MinLength != nil {
			v := *r.MinLength
			out.MinLength = &v
		}
		if r.MaxLength != nil {
			v := *r.MaxLength
			out.MaxLength = &v
		}
		return out
	case NumberRules:
		out := r
		if r.Min != nil {
			v := *r.Min
			out.Min = &v
		}
		if r.Max != nil {
			v := *r.Max
			out.Max = &v
		}
		return out
	case SelectRules:
		out := r
		if r.Options != nil {
			out.Options = append([]Option(nil), r.Options...)
		}
		return out
	default:
		return rules
	}
}
