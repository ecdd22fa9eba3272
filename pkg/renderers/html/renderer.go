// Package html renders a form definition into a complete HTML page. Controls
// mirror the definition's rules as native constraint attributes and the page
// reflects any values and validation errors handed over through the render
// options.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	action           string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAction sets the form's submit action URL. Defaults to "#".
func WithAction(action string) Option {
	return func(cfg *config) {
		if action != "" {
			cfg.action = action
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	action    string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), action: "#"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, action: cfg.action}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full page. Field markup is assembled in Go and handed
// to the page template pre-escaped; everything else is escaped by the
// template engine.
func (r *Renderer) Render(ctx context.Context, def model.FormDefinition, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	fields := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		fields = append(fields, buildFieldMarkup(field, opts.Values[field.Name], opts.Errors[field.Name]))
	}

	themeCtx := buildThemeContext(opts.Theme)

	result, err := r.templates.RenderTemplate("templates/page.tmpl", map[string]any{
		"title":          def.DisplayTitle(),
		"description":    def.Description,
		"action":         r.action,
		"fields":         fields,
		"theme_name":     themeCtx.Name,
		"theme_variant":  themeCtx.Variant,
		"theme_style":    themeCtx.CSSVarsStyle,
		"stylesheet_url": themeCtx.StylesheetURL,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}
