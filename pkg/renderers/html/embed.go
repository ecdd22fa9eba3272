package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle so callers can render the
// built-in page layout or use it as a starting point for overrides.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
