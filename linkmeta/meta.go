package linkmeta

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// metaFields collects the candidate tags found while walking a page.
type metaFields struct {
	ogTitle       string
	ogDescription string
	ogImage       string
	ogSiteName    string

	twitterTitle       string
	twitterDescription string
	twitterImage       string

	htmlTitle       string
	htmlDescription string
}

// parseMetadata extracts preview metadata from an HTML page. Per field the
// priority is Open Graph, then Twitter card, then generic HTML; first
// non-empty wins. SiteName falls back to the caller-supplied domain. A
// relative image URL is resolved against pageURL; if that resolution fails
// the image is dropped rather than surfaced broken.
func parseMetadata(r io.Reader, pageURL, domain string) *Metadata {
	root, err := html.Parse(r)
	if err != nil {
		return nil
	}

	var f metaFields
	collectMeta(root, &f)

	meta := &Metadata{
		Title:       firstNonEmpty(f.ogTitle, f.twitterTitle, f.htmlTitle),
		Description: firstNonEmpty(f.ogDescription, f.twitterDescription, f.htmlDescription),
		Image:       firstNonEmpty(f.ogImage, f.twitterImage),
		SiteName:    firstNonEmpty(f.ogSiteName, domain),
	}

	if meta.Image != "" && !strings.HasPrefix(meta.Image, "http") {
		meta.Image = resolveImage(pageURL, meta.Image)
	}
	return meta
}

func collectMeta(n *html.Node, f *metaFields) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "meta":
			recordMetaTag(n, f)
		case "title":
			if f.htmlTitle == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				f.htmlTitle = strings.TrimSpace(n.FirstChild.Data)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectMeta(c, f)
	}
}

func recordMetaTag(n *html.Node, f *metaFields) {
	var property, name, content string
	for _, a := range n.Attr {
		switch a.Key {
		case "property":
			property = a.Val
		case "name":
			name = a.Val
		case "content":
			content = a.Val
		}
	}
	if content == "" {
		return
	}

	switch property {
	case "og:title":
		setFirst(&f.ogTitle, content)
	case "og:description":
		setFirst(&f.ogDescription, content)
	case "og:image":
		setFirst(&f.ogImage, content)
	case "og:site_name":
		setFirst(&f.ogSiteName, content)
	}

	switch name {
	case "twitter:title":
		setFirst(&f.twitterTitle, content)
	case "twitter:description":
		setFirst(&f.twitterDescription, content)
	case "twitter:image":
		setFirst(&f.twitterImage, content)
	case "description":
		setFirst(&f.htmlDescription, content)
	}
}

// setFirst keeps the first occurrence of a tag; duplicates are ignored.
func setFirst(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveImage makes a relative image URL absolute against the page URL.
// Returns "" when either URL fails to parse.
func resolveImage(pageURL, image string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(image)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
