// Package html renders exports as standalone HTML pages styled with
// Tailwind CSS v4 (CDN). Link previews are filled in client-side from the
// serve command's metadata endpoint when one is available.
package html

import (
	"embed"
	"html/template"
	"io"

	"github.com/sonnes/sandesh/core"
	"github.com/sonnes/sandesh/link"
)

//go:embed templates/*.html
var content embed.FS

// Renderer renders an export to a standalone HTML page.
type Renderer struct {
	tmpl *template.Template

	// MetadataEndpoint, when non-empty, is the URL prefix the page queries
	// for link previews (e.g. "/api/metadata?url="). Empty disables the
	// client-side preview script; static renders stay self-contained.
	MetadataEndpoint string
}

// New creates an HTML Renderer.
func New() *Renderer {
	tmpl := template.Must(
		template.New("page.html").ParseFS(content, "templates/*.html"),
	)
	return &Renderer{tmpl: tmpl}
}

// pageData is the top-level template data passed to page.html.
type pageData struct {
	Export           *core.Export
	Query            string
	Messages         []messageData
	Total            int // message count before filtering
	MetadataEndpoint string
}

// messageData pairs a message with the parsed descriptors of its links.
type messageData struct {
	Message core.Message
	Links   []link.Descriptor
}

// Render writes the export as a complete HTML page to w.
func (r *Renderer) Render(w io.Writer, e *core.Export) error {
	return r.RenderFiltered(w, e, "")
}

// RenderFiltered writes the page showing only messages matching query.
// The full message count stays visible so a filtered view reads as such.
func (r *Renderer) RenderFiltered(w io.Writer, e *core.Export, query string) error {
	msgs := core.Filter(e.Messages, query)
	data := pageData{
		Export:           e,
		Query:            query,
		Messages:         make([]messageData, 0, len(msgs)),
		Total:            len(e.Messages),
		MetadataEndpoint: r.MetadataEndpoint,
	}
	for _, m := range msgs {
		md := messageData{Message: m}
		for _, raw := range m.Links {
			md.Links = append(md.Links, link.Parse(raw))
		}
		data.Messages = append(data.Messages, md)
	}
	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}
