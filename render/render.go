// Package render defines the interface for rendering a loaded chat export
// into various output formats.
package render

import (
	"io"

	"github.com/sonnes/sandesh/core"
)

// Renderer writes an export to the given writer in a specific format.
type Renderer interface {
	Render(w io.Writer, e *core.Export) error
}
