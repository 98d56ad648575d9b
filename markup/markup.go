// Package markup wraps HTML parsing behind a small queryable-tree interface
// so consumers stay free of any particular parsing library's shape.
package markup

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Node is one element in a parsed document tree, supporting the queries the
// message extractor needs: attribute lookup, text content, class-based
// descendant search, and anchor collection.
type Node interface {
	// Attr returns the value of the named attribute, or "" when absent.
	Attr(key string) string

	// Text returns the concatenated text content of the subtree, trimmed.
	Text() string

	// Find returns the first descendant carrying every class in the
	// space-separated list, or nil when none matches.
	Find(classes string) Node

	// FindAll returns every descendant carrying every class in the
	// space-separated list, in document order.
	FindAll(classes string) []Node

	// Anchors returns the href of every <a> descendant, in document order.
	// Anchors with no href are skipped.
	Anchors() []string
}

// Parser turns a raw markup document into a queryable Node tree.
type Parser interface {
	Parse(document string) (Node, error)
}

// NewParser returns the default Parser, built on golang.org/x/net/html.
// It is tolerant the way browsers are: malformed markup yields a best-effort
// tree rather than an error.
func NewParser() Parser {
	return htmlParser{}
}

type htmlParser struct{}

func (htmlParser) Parse(document string) (Node, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil, err
	}
	return htmlNode{root}, nil
}

type htmlNode struct {
	n *html.Node
}

func (h htmlNode) Attr(key string) string {
	for _, a := range h.n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (h htmlNode) Text() string {
	var b strings.Builder
	collectText(h.n, &b)
	return strings.TrimSpace(b.String())
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func (h htmlNode) Find(classes string) Node {
	want := strings.Fields(classes)
	found := findAll(h.n, want, 1)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func (h htmlNode) FindAll(classes string) []Node {
	want := strings.Fields(classes)
	return findAll(h.n, want, -1)
}

// findAll walks the subtree below root in document order collecting elements
// that carry all wanted classes. limit < 0 means unbounded. The root itself
// is never a match, mirroring descendant-only query semantics.
func findAll(root *html.Node, want []string, limit int) []Node {
	var out []Node
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && hasClasses(c, want) {
				out = append(out, htmlNode{c})
				if limit > 0 && len(out) >= limit {
					return true
				}
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
	return out
}

func hasClasses(n *html.Node, want []string) bool {
	if len(want) == 0 {
		return false
	}
	var classAttr string
	for _, a := range n.Attr {
		if a.Key == "class" {
			classAttr = a.Val
			break
		}
	}
	have := strings.Fields(classAttr)
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}
	return true
}

func (h htmlNode) Anchors() []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					out = append(out, a.Val)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(h.n)
	return out
}
