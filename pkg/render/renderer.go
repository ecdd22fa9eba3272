// Package render defines the artifact renderer contract and the submission
// state machine shared by interactive renderers.
package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Renderer converts a form definition into one output artifact (HTML, JSX,
// schema JSON, a filled-in submission, ...). Renderers only read the
// definition; they never mutate it.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, def model.FormDefinition, options RenderOptions) ([]byte, error)
}
