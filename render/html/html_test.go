package html

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sonnes/sandesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExport() *core.Export {
	return &core.Export{
		Name:  "family-chat",
		Files: 2,
		Messages: []core.Message{
			{
				ID:        "message9",
				FromName:  "Alice",
				Text:      "check this out: https://example.com/a?x=1",
				Timestamp: "05.01.2024 10:00:12",
				Links:     []string{"https://example.com/a?x=1"},
			},
			{
				ID:         "message8",
				FromName:   "Bob",
				Text:       "numbers attached",
				HasMedia:   true,
				MediaTitle: "report.pdf",
				MediaType:  core.MediaPDF,
			},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf, sampleExport()))
	out := buf.String()

	assert.Contains(t, out, "family-chat")
	assert.Contains(t, out, "2 messages")
	assert.Contains(t, out, `id="message9"`)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "/a?x=1")
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "(pdf)")
	assert.Contains(t, out, "@tailwindcss/browser@4")

	// Static render: no preview script without an endpoint.
	assert.NotContains(t, out, "querySelectorAll")
}

func TestRenderEscapesMarkup(t *testing.T) {
	e := &core.Export{
		Messages: []core.Message{
			{ID: "message1", FromName: "Mallory", Text: `<script>alert("x")</script>`},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf, e))
	assert.NotContains(t, buf.String(), `<script>alert`)
}

func TestRenderFiltered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().RenderFiltered(&buf, sampleExport(), "report"))
	out := buf.String()

	assert.Contains(t, out, "1 of 2 messages")
	assert.Contains(t, out, `id="message8"`)
	assert.NotContains(t, out, `id="message9"`)
}

func TestRenderNoMatches(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().RenderFiltered(&buf, sampleExport(), "zzz"))
	assert.Contains(t, buf.String(), "No messages found.")
}

func TestRenderWithMetadataEndpoint(t *testing.T) {
	r := New()
	r.MetadataEndpoint = "/api/metadata?url="

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, sampleExport()))
	out := buf.String()

	assert.Contains(t, out, "data-preview-url")
	assert.True(t, strings.Contains(out, "api/metadata"))
}
