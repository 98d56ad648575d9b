// Package telegram reads Telegram HTML chat exports (messages*.html files).
package telegram

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sonnes/sandesh/core"
	"github.com/sonnes/sandesh/markup"
)

// Reader extracts structured messages from Telegram export documents.
type Reader struct {
	// Parser overrides the markup parser. Nil means the default
	// x/net/html-backed parser.
	Parser markup.Parser
}

// ReadFile parses a single export document.
func (r *Reader) ReadFile(path string) (*core.Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export file: %w", err)
	}

	msgs := r.Extract(string(data))
	return &core.Export{
		Name:     filepath.Base(path),
		Files:    1,
		Messages: core.Merge([][]core.Message{msgs}),
	}, nil
}

// ReadDir parses every .html document in dir, in file-name order
// (messages.html sorts before messages1.html), and merges the results.
// Unreadable documents are skipped; an export with no messages is returned
// as-is with a nil error.
func (r *Reader) ReadDir(dir string) (*core.Export, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read export directory: %w", err)
	}

	var docs [][]core.Message
	files := 0
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".html") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, de.Name()))
		if err != nil {
			continue
		}
		files++
		docs = append(docs, r.Extract(string(data)))
	}

	return &core.Export{
		Name:     filepath.Base(dir),
		Files:    files,
		Messages: core.Merge(docs),
	}, nil
}

// Extract walks one parsed document and emits every qualifying message.
// It never fails: documents with no message nodes yield an empty slice, and
// a node missing expected children is extracted with defaults or skipped.
func (r *Reader) Extract(document string) []core.Message {
	root, err := r.parser().Parse(document)
	if err != nil {
		return nil
	}

	var msgs []core.Message
	// Candidates carry both classes; service messages ("message service")
	// are excluded by construction.
	for _, node := range root.FindAll("message default") {
		msg, ok := extractMessage(node)
		if !ok {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func (r *Reader) parser() markup.Parser {
	if r.Parser != nil {
		return r.Parser
	}
	return markup.NewParser()
}

// extractMessage maps one candidate node to a Message. Candidates whose text
// content is empty are dropped even when they carry media or links; this
// pipeline only surfaces messages with visible text. Callers that want
// media-only entries must not get them "fixed" in here.
func extractMessage(node markup.Node) (core.Message, bool) {
	textNode := node.Find("text")
	if textNode == nil {
		return core.Message{}, false
	}
	text := textNode.Text()
	if text == "" {
		return core.Message{}, false
	}

	id := node.Attr("id")
	if id == "" {
		id = synthesizeID()
	}

	fromName := core.UnknownSender
	if n := node.Find("from_name"); n != nil {
		if name := n.Text(); name != "" {
			fromName = name
		}
	}

	var timestamp string
	if n := node.Find("date"); n != nil {
		timestamp = n.Attr("title")
		if timestamp == "" {
			timestamp = n.Text()
		}
	}

	links := webLinks(textNode.Anchors())

	var (
		hasMedia   bool
		mediaTitle string
		mediaType  = core.MediaNone
	)
	if media := node.Find("media_file"); media != nil {
		hasMedia = true
		if n := media.Find("title"); n != nil {
			mediaTitle = n.Text()
		}
		if mediaTitle == "" {
			mediaTitle = media.Attr("title")
		}
		mediaType = core.MediaTypeFor(mediaTitle)
	}

	return core.Message{
		ID:         id,
		FromName:   fromName,
		Text:       text,
		Timestamp:  timestamp,
		MediaType:  mediaType,
		MediaTitle: mediaTitle,
		Links:      links,
		IsLinkOnly: core.LinkOnly(text, links),
		HasMedia:   hasMedia,
	}, true
}

// webLinks keeps only http and https hrefs, preserving order. Other schemes
// (ftp, mailto, tg) are dropped silently.
func webLinks(hrefs []string) []string {
	var out []string
	for _, href := range hrefs {
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			out = append(out, href)
		}
	}
	return out
}

// synthesizeID builds a best-effort unique fallback ID for nodes without an
// id attribute. Collisions are vanishingly unlikely, not impossible.
func synthesizeID() string {
	return fmt.Sprintf("msg-%d-%04d", time.Now().UnixNano(), rand.IntN(10000))
}
