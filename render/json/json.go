// Package json renders exports as JSON (serializes the message model as-is).
package json

import (
	"encoding/json"
	"io"

	"github.com/sonnes/sandesh/core"
)

// Renderer renders an export to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

// New creates a JSON Renderer with pretty-printing enabled.
func New() *Renderer {
	return &Renderer{Indent: true}
}

// Render writes the export as a single JSON document to w.
func (r *Renderer) Render(w io.Writer, e *core.Export) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(e)
}
