// Package template defines the seam between markup renderers and the
// template engine that backs them. Renderers depend on the interface only;
// the default pongo2-backed implementation lives in the pongo subpackage.
package template

import "io"

// TemplateRenderer executes named or inline templates against a data
// context. Implementations must be safe for concurrent use.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
