package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the definition pipeline.
type RenderOptions struct {
	// Values pre-populates rendered controls keyed by field name.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field name. Renderers map
	// these into inline chrome next to the offending control.
	Errors map[string][]string
	// Theme carries resolved theme tokens and CSS variables for renderers
	// that support them. Nil selects the built-in chrome.
	Theme *theme.RendererConfig
}
