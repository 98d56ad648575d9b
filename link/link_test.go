package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Descriptor
	}{
		{
			name: "simple https",
			raw:  "https://example.com/a/b",
			want: Descriptor{URL: "https://example.com/a/b", Domain: "example.com", Path: "/a/b", Protocol: "https:"},
		},
		{
			name: "query and fragment kept in path",
			raw:  "https://example.com/search?q=go#top",
			want: Descriptor{URL: "https://example.com/search?q=go#top", Domain: "example.com", Path: "/search?q=go#top", Protocol: "https:"},
		},
		{
			name: "port stripped from domain",
			raw:  "http://localhost:8080/x",
			want: Descriptor{URL: "http://localhost:8080/x", Domain: "localhost", Path: "/x", Protocol: "http:"},
		},
		{
			name: "bare host no path",
			raw:  "https://example.com",
			want: Descriptor{URL: "https://example.com", Domain: "example.com", Path: "", Protocol: "https:"},
		},
		{
			name: "plain words fall back",
			raw:  "not a url",
			want: Descriptor{URL: "not a url", Domain: "not a url", Path: "", Protocol: "http:"},
		},
		{
			name: "schemeless host falls back",
			raw:  "example.com/a",
			want: Descriptor{URL: "example.com/a", Domain: "example.com/a", Path: "", Protocol: "http:"},
		},
		{
			name: "empty string falls back",
			raw:  "",
			want: Descriptor{URL: "", Domain: "", Path: "", Protocol: "http:"},
		},
		{
			name: "control characters fall back",
			raw:  "https://exa mple.com/\x7f",
			want: Descriptor{URL: "https://exa mple.com/\x7f", Domain: "https://exa mple.com/\x7f", Path: "", Protocol: "http:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw))
			// Pure: a second call yields the identical descriptor.
			assert.Equal(t, Parse(tt.raw), Parse(tt.raw))
		})
	}
}
