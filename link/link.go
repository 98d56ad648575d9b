// Package link decomposes raw URL strings into display-friendly parts.
package link

import "net/url"

// DefaultProtocol is reported for strings that cannot be parsed as URLs.
const DefaultProtocol = "http:"

// Descriptor holds the display parts of a URL. It is recomputed on demand
// and never persisted; the raw URL string remains the identity everywhere.
type Descriptor struct {
	URL      string `json:"url"`
	Domain   string `json:"domain"`
	Path     string `json:"path"`     // includes query and fragment
	Protocol string `json:"protocol"` // scheme with trailing colon, e.g. "https:"
}

// Parse splits raw into protocol, domain, and path. It is total: any string
// that fails strict URL parsing (or parses without a host) becomes its own
// Domain with an empty Path and the default protocol. It never errors and
// performs no I/O.
func Parse(raw string) Descriptor {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return Descriptor{
			URL:      raw,
			Domain:   raw,
			Path:     "",
			Protocol: DefaultProtocol,
		}
	}

	path := u.Path
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		path += "#" + u.Fragment
	}

	return Descriptor{
		URL:      raw,
		Domain:   u.Hostname(),
		Path:     path,
		Protocol: u.Scheme + ":",
	}
}
