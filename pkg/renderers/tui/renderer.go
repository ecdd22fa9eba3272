// Package tui fills a form definition interactively in the terminal. Prompts
// are driven through a PromptDriver seam (survey by default); values collect
// into a render.Session and rejected submissions re-prompt only the fields
// that failed.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validate"
)

// noneOption is offered on optional selects so the user can leave the field
// empty.
const noneOption = "(none)"

type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	maxAttempts  int
	validator    *validate.Validator
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the TUI renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		maxAttempts:  3,
		validator:    validate.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatForm:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// Render runs the fill loop until a submission is accepted, the attempt
// budget runs out, or the user aborts. The returned payload is the accepted
// value set in the configured output format.
func (r *Renderer) Render(ctx context.Context, def model.FormDefinition, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	session := render.NewSession(def,
		render.WithValidator(r.validator),
		render.WithInitialValues(opts.Values),
	)

	if err := r.driver.Info(ctx, def.DisplayTitle()); err != nil {
		return nil, err
	}
	if def.Description != "" {
		if err := r.driver.Info(ctx, def.Description); err != nil {
			return nil, err
		}
	}

	prompt := fieldNames(def)
	for attempt := 1; ; attempt++ {
		for _, field := range def.Fields {
			if !prompt[field.Name] {
				continue
			}
			current, _ := session.Value(field.Name)
			value, err := r.promptField(ctx, field, current)
			if err != nil {
				return nil, err
			}
			if err := session.SetValue(field.Name, value); err != nil {
				return nil, err
			}
		}

		result := session.Submit()
		if result.Accepted() {
			return r.serialize(def, result.Values)
		}

		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return nil, ErrTooManyAttempts
		}

		prompt = make(map[string]bool, len(result.Errors))
		for _, field := range def.Fields {
			messages, ok := result.Errors[field.Name]
			if !ok {
				continue
			}
			prompt[field.Name] = true
			for _, message := range messages {
				if err := r.driver.Info(ctx, message); err != nil {
					return nil, err
				}
			}
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, current any) (any, error) {
	message := field.DisplayLabel()
	if field.Required {
		message += " *"
	}

	switch field.Type {
	case model.FieldTypeCheckbox:
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: current == true,
			Help:    field.HelpText,
		})
	case model.FieldTypeSelect:
		return r.promptSelect(ctx, field, message, current)
	case model.FieldTypeTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: promptDefault(current),
			Help:    field.HelpText,
		})
	default:
		return r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: promptDefault(current),
			Help:    field.HelpText,
		})
	}
}

func (r *Renderer) promptSelect(ctx context.Context, field model.Field, message string, current any) (any, error) {
	var values []string
	var labels []string
	if !field.Required {
		values = append(values, "")
		labels = append(labels, noneOption)
	}
	if rules, ok := field.SelectRules(); ok {
		for _, opt := range rules.Options {
			values = append(values, opt.Value)
			labels = append(labels, opt.Label)
		}
	}

	defaultIndex := 0
	if text := promptDefault(current); text != "" {
		for i, value := range values {
			if value == text {
				defaultIndex = i
				break
			}
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         field.HelpText,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(values) {
		return "", nil
	}
	return values[idx], nil
}

// serialize writes the accepted values in the configured format. JSON and
// pretty output follow field order so repeated runs stay comparable.
func (r *Renderer) serialize(def model.FormDefinition, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatForm:
		form := url.Values{}
		for _, field := range def.Fields {
			form.Set(field.Name, promptDefault(values[field.Name]))
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var buf bytes.Buffer
		for _, field := range def.Fields {
			fmt.Fprintf(&buf, "%s: %s\n", field.DisplayLabel(), promptDefault(values[field.Name]))
		}
		return buf.Bytes(), nil
	default:
		var buf bytes.Buffer
		buf.WriteString("{\n")
		for i, field := range def.Fields {
			name, err := json.Marshal(field.Name)
			if err != nil {
				return nil, fmt.Errorf("tui: marshal field name: %w", err)
			}
			value, err := json.Marshal(values[field.Name])
			if err != nil {
				return nil, fmt.Errorf("tui: marshal value for %q: %w", field.Name, err)
			}
			buf.WriteString("  ")
			buf.Write(name)
			buf.WriteString(": ")
			buf.Write(value)
			if i < len(def.Fields)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString("}\n")
		return buf.Bytes(), nil
	}
}

func fieldNames(def model.FormDefinition) map[string]bool {
	out := make(map[string]bool, len(def.Fields))
	for _, field := range def.Fields {
		out[field.Name] = true
	}
	return out
}

func promptDefault(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
