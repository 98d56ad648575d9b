// Package reader defines the interface for parsing chat export documents
// into the structured message model.
package reader

import "github.com/sonnes/sandesh/core"

// Reader parses export-specific documents into a core.Export.
type Reader interface {
	// ReadFile parses a single export document at the given path.
	ReadFile(path string) (*core.Export, error)

	// ReadDir parses every document of an export directory and merges the
	// results into one ordered message list. An export with no qualifying
	// documents or no extractable messages yields an Export with zero
	// messages and a nil error; the caller decides how to present that.
	ReadDir(dir string) (*core.Export, error)
}
