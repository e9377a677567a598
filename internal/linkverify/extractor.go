// Package linkverify checks that local links in generated pages point at
// files that exist.
package linkverify

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/makeshared/sitewinder/internal/foundation/errors"
	"github.com/makeshared/sitewinder/internal/linkrewrite"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL       string // The URL or path
	Text      string // Link text, alt text or rel
	Tag       string // HTML tag (a, img, script, link, etc.)
	Attribute string // Attribute containing the link (href, src, etc.)
	IsLocal   bool   // True if the link points into the site
	Element   int    // Position of the element in document order
}

// urlAttributes lists, per element, the attributes that carry URLs.
var urlAttributes = map[string][]string{
	"a":      {"href"},
	"link":   {"href"},
	"area":   {"href"},
	"base":   {"href"},
	"img":    {"src", "srcset"},
	"audio":  {"src"},
	"video":  {"src", "poster"},
	"script": {"src"},
	"source": {"src", "srcset"},
	"iframe": {"src"},
	"embed":  {"src"},
	"track":  {"src"},
	"object": {"data"},
	"form":   {"action"},
}

// ExtractLinks extracts all links from an HTML file.
func ExtractLinks(htmlPath string) ([]*Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").WithContext("path", htmlPath).Build()
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()

	return ExtractLinksFromReader(file)
}

// ExtractLinksFromReader extracts all links from an HTML reader.
func ExtractLinksFromReader(r io.Reader) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").Build()
	}

	var links []*Link
	var element int

	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			element++
			links = append(links, extractElementLinks(n, element)...)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}

	extract(doc)
	return links, nil
}

// extractElementLinks extracts links from a single HTML element. Every
// candidate of a srcset becomes its own link.
func extractElementLinks(n *html.Node, element int) []*Link {
	var links []*Link
	for _, attr := range urlAttributes[n.Data] {
		val := getAttr(n, attr)
		if val == "" {
			continue
		}
		urls := []string{val}
		if attr == "srcset" {
			urls = srcsetURLs(val)
		}
		for _, u := range urls {
			links = append(links, &Link{
				URL:       u,
				Text:      linkText(n),
				Tag:       n.Data,
				Attribute: attr,
				IsLocal:   linkrewrite.IsLocal(u),
				Element:   element,
			})
		}
	}
	return links
}

func srcsetURLs(srcset string) []string {
	var urls []string
	for _, candidate := range strings.Split(srcset, ",") {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			urls = append(urls, fields[0])
		}
	}
	return urls
}

func linkText(n *html.Node) string {
	switch n.Data {
	case "a":
		return extractText(n)
	case "img", "area":
		return getAttr(n, "alt")
	case "link":
		return getAttr(n, "rel")
	}
	return ""
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// extractText extracts text content from an HTML node and its children.
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}

	return strings.TrimSpace(text.String())
}

// ShouldVerifyLink reports whether link points at a file that can be checked.
func ShouldVerifyLink(link *Link) bool {
	if link.URL == "" || !link.IsLocal {
		return false
	}
	// <base href> changes resolution of the other links; it is not a target itself.
	return link.Tag != "base"
}
