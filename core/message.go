// Package core defines the structured message model — the normalized
// representation of a chat export that the reader produces and all renderers
// consume.
package core

import "strings"

// Export is the top-level container for one loaded chat export. An export may
// span several source documents; Messages holds the merged, ordered result.
type Export struct {
	Name     string    `json:"name,omitempty"` // export directory or file name
	Files    int       `json:"files"`          // number of source documents
	Messages []Message `json:"messages"`
}

// Message is a single chat entry. Messages are immutable after extraction;
// ID is the sole identity for dedup and delete operations.
type Message struct {
	ID         string    `json:"id"`
	FromName   string    `json:"from_name"`
	Text       string    `json:"text"`
	Timestamp  string    `json:"timestamp,omitempty"` // raw source format, not parsed
	MediaType  MediaType `json:"media_type"`
	MediaTitle string    `json:"media_title,omitempty"`
	Links      []string  `json:"links,omitempty"` // in order of appearance
	IsLinkOnly bool      `json:"is_link_only"`
	HasMedia   bool      `json:"has_media"`
}

// UnknownSender is the FromName used when the source has no sender node.
const UnknownSender = "Unknown"

// MediaType classifies a media attachment by its title's file extension.
type MediaType string

const (
	MediaPDF   MediaType = "pdf"
	MediaZip   MediaType = "zip"
	MediaImage MediaType = "image"
	MediaFile  MediaType = "file"
	MediaNone  MediaType = "none"
)

var imageSuffixes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

// MediaTypeFor derives a MediaType from a media title by case-insensitive
// suffix matching. Content is never sniffed. An empty title yields MediaNone;
// a title with no recognized suffix yields MediaFile.
func MediaTypeFor(title string) MediaType {
	if title == "" {
		return MediaNone
	}
	lower := strings.ToLower(title)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return MediaPDF
	case strings.HasSuffix(lower, ".zip"), strings.HasSuffix(lower, ".rar"):
		return MediaZip
	}
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return MediaImage
		}
	}
	return MediaFile
}

// LinkOnly reports whether text consists of nothing but the single extracted
// link. True only when exactly one link is present and the trimmed text
// equals it, ignoring internal whitespace.
func LinkOnly(text string, links []string) bool {
	if len(links) != 1 {
		return false
	}
	trimmed := strings.TrimSpace(text)
	link := links[0]
	if trimmed == link {
		return true
	}
	return stripSpace(trimmed) == stripSpace(link)
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
