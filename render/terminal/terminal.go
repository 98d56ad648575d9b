// Package terminal renders exports as ANSI-colored message cards.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/sonnes/sandesh/core"
	"github.com/sonnes/sandesh/link"
)

const defaultWidth = 100

// Renderer pretty-prints an export as message cards to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the export as ANSI-colored message cards to w.
func (r *Renderer) Render(w io.Writer, e *core.Export) error {
	width := r.termWidth()

	writeHeader(w, e)
	for _, msg := range e.Messages {
		writeMessage(w, msg, width)
	}

	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// writeHeader renders the export metadata block.
func writeHeader(w io.Writer, e *core.Export) {
	title := e.Name
	if title == "" {
		title = "Chat export"
	}
	fmt.Fprintln(w, styleTitle.Render(title))

	meta := fmt.Sprintf("%d messages", len(e.Messages))
	if e.Files > 1 {
		meta += fmt.Sprintf("  %d files", e.Files)
	}
	fmt.Fprintln(w, styleMeta.Render(meta))
}

// writeSeparator renders a horizontal rule.
func writeSeparator(w io.Writer, width int) {
	n := min(width, 72)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", n)))
}

// writeMessage renders a single message card: sender badge, timestamp, text,
// media line, and one line per link.
func writeMessage(w io.Writer, msg core.Message, width int) {
	contentWidth := width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	writeSeparator(w, width)

	header := senderBadge(msg.FromName)
	if msg.Timestamp != "" {
		header += "    " + styleMeta.Render(msg.Timestamp)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, " "+header)

	// Link-only messages carry no prose worth repeating; the link line
	// below already shows the URL.
	if !msg.IsLinkOnly {
		for _, line := range strings.Split(msg.Text, "\n") {
			fmt.Fprintln(w, "  "+truncate(line, contentWidth))
		}
	}

	if msg.HasMedia {
		name := msg.MediaTitle
		if name == "" {
			name = "attachment"
		}
		mediaLine := styleMediaName.Render("◆ " + name)
		if msg.MediaType != core.MediaNone {
			mediaLine += " " + styleMediaType.Render("("+string(msg.MediaType)+")")
		}
		fmt.Fprintln(w, "  "+mediaLine)
	}

	for _, raw := range msg.Links {
		d := link.Parse(raw)
		linkLine := styleLink.Render("→ " + d.Domain)
		if d.Path != "" {
			pathWidth := contentWidth - lipgloss.Width("→ "+d.Domain)
			linkLine += styleLinkPath.Render(truncate(d.Path, pathWidth))
		}
		fmt.Fprintln(w, "  "+linkLine)
	}
}

func senderBadge(name string) string {
	if name == core.UnknownSender {
		return styleUnknownBadge.Render(name)
	}
	return styleSenderBadge.Render(name)
}

// truncate shortens text to maxWidth, appending "..." if needed.
func truncate(s string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	s = strings.TrimRight(s, " \t")

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
