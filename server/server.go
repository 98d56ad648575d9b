// Package server provides a local HTTP server for browsing a loaded export
// with live search and asynchronous link previews.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sonnes/sandesh/core"
	"github.com/sonnes/sandesh/link"
	"github.com/sonnes/sandesh/linkmeta"
	htmlrender "github.com/sonnes/sandesh/render/html"
)

// metadataPrefix is the URL prefix the rendered page queries for previews.
const metadataPrefix = "/api/metadata?url="

// Server serves one loaded export. Messages are immutable for the server's
// lifetime; only the metadata cache carries mutable state.
type Server struct {
	export   *core.Export
	cache    *linkmeta.Cache
	renderer *htmlrender.Renderer
}

// New creates a Server for the given export and metadata cache.
func New(export *core.Export, cache *linkmeta.Cache) *Server {
	renderer := htmlrender.New()
	renderer.MetadataEndpoint = metadataPrefix
	return &Server{export: export, cache: cache, renderer: renderer}
}

// Handler returns the route table:
//
//	GET /                  browse page, optional ?q= filter
//	GET /api/messages      filtered messages as JSON, optional ?q=
//	GET /api/metadata      link preview for ?url=
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/messages", s.handleMessages)
	mux.HandleFunc("GET /api/metadata", s.handleMetadata)
	return mux
}

// Preload warms the metadata cache for every distinct message link without
// blocking. Outcomes are discarded; the browse page picks them up on fetch.
func (s *Server) Preload() {
	seen := make(map[string]bool)
	var urls, domains []string
	for _, m := range s.export.Messages {
		for _, raw := range m.Links {
			if seen[raw] {
				continue
			}
			seen[raw] = true
			urls = append(urls, raw)
			domains = append(domains, link.Parse(raw).Domain)
		}
	}
	s.cache.Preload(urls, domains)
}

func (s *Server) handleIndex(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query().Get("q")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.RenderFiltered(w, s.export, q); err != nil {
		slog.Error("render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleMessages(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query().Get("q")
	msgs := core.Filter(s.export.Messages, q)
	if msgs == nil {
		msgs = []core.Message{}
	}
	writeJSON(w, map[string]any{
		"total":    len(s.export.Messages),
		"messages": msgs,
	})
}

// handleMetadata resolves a link preview through the cache. A missing or
// failed preview is still a 200 with a null metadata field — the fetch
// outcome is never an HTTP error.
func (s *Server) handleMetadata(w http.ResponseWriter, req *http.Request) {
	rawURL := req.URL.Query().Get("url")
	if rawURL == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return
	}

	meta := s.cache.Get(req.Context(), rawURL, link.Parse(rawURL).Domain)
	writeJSON(w, map[string]any{
		"url":      rawURL,
		"metadata": meta,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
