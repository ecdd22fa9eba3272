package tui

import "github.com/goliatone/go-formkit/pkg/validate"

// OutputFormat controls how accepted values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits an application/json payload in field order.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatForm emits an application/x-www-form-urlencoded payload.
	OutputFormatForm OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithMaxAttempts bounds how many rejected submissions the fill loop will
// tolerate before giving up. Zero or negative means unlimited.
func WithMaxAttempts(attempts int) Option {
	return func(r *Renderer) {
		r.maxAttempts = attempts
	}
}

// WithValidator injects a shared validator, typically one carrying a pattern
// reporter.
func WithValidator(v *validate.Validator) Option {
	return func(r *Renderer) {
		if v != nil {
			r.validator = v
		}
	}
}
