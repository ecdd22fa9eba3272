// Package formkit generates forms from declarative definitions: validation,
// JSON Schema projection, standalone component export, and HTML/TUI
// rendering, all driven by the same field model.
package formkit

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/renderers/react"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/validate"
)

// FormDefinition aliases the field model's definition type for callers that
// only import the root package.
type FormDefinition = model.FormDefinition

// Field aliases the field model's field type.
type Field = model.Field

// RenderOptions describes per-request overrides renderers can use to prefill
// values, surface validation errors, or apply a theme.
type RenderOptions = render.RenderOptions

// Result is the outcome of one session submission attempt.
type Result = render.Result

// ToJSONSchema projects the definition into an indented JSON Schema
// (draft 2020-12) document. Output is byte-identical for an unchanged
// definition.
func ToJSONSchema(def FormDefinition) ([]byte, error) {
	return schema.Project(def).Indent()
}

// ToComponentSource emits standalone React component source for the
// definition.
func ToComponentSource(def FormDefinition) []byte {
	return react.New().Source(def)
}

// Validate checks the values against the definition and returns per-field
// messages keyed by field name. An empty map means the submission would be
// accepted.
func Validate(def FormDefinition, values map[string]any) map[string][]string {
	return validate.New().Form(def, values)
}

// NewSession starts a headless form session over the definition.
func NewSession(def FormDefinition, options ...render.SessionOption) *render.Session {
	return render.NewSession(def, options...)
}

// NewRegistry builds a renderer registry preloaded with the built-in
// renderers: html, react, and tui.
func NewRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("formkit: configure html renderer: %w", err)
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(react.New()); err != nil {
		return nil, err
	}
	if err := registry.Register(tui.New()); err != nil {
		return nil, err
	}
	return registry, nil
}

// Generate renders the definition with the named built-in renderer. It is the
// simplest entry point for callers that just want output bytes.
func Generate(ctx context.Context, def FormDefinition, rendererName string, opts RenderOptions) ([]byte, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, def, opts)
}

// EmbeddedTemplates exposes the built-in HTML page templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
