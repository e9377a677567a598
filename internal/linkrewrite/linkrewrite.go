// Package linkrewrite makes every local URL in rendered HTML relative to the
// file it is emitted into.
//
// Rewriting is attribute-pattern based rather than a full HTML parse: it looks
// at href, src, data, poster, action and srcset attributes on the elements
// that carry URLs.
package linkrewrite

import (
	"path/filepath"
	"regexp"
	"strings"
)

var nonLocalPrefixes = []string{
	"http://", "https://", "//", "#", "mailto:", "tel:", "data:", "javascript:",
}

// IsLocal reports whether url refers to content inside the site.
func IsLocal(url string) bool {
	for _, p := range nonLocalPrefixes {
		if strings.HasPrefix(url, p) {
			return false
		}
	}
	return true
}

// RelativeLink converts target into a link relative to the directory of
// docPath. Targets starting with "/" are resolved against root; anything else
// is taken as a filesystem path as-is. When no relative path can be computed
// (a relative target, for instance) the original target is returned encoded.
func RelativeLink(target, docPath, root string) string {
	abs := target
	if rest, ok := strings.CutPrefix(target, "/"); ok {
		abs = filepath.Join(root, filepath.FromSlash(rest))
	}
	if !filepath.IsAbs(abs) {
		return EncodePath(target)
	}

	rel, err := filepath.Rel(filepath.Dir(docPath), abs)
	if err != nil {
		return EncodePath(target)
	}
	if rel == "." {
		return "./"
	}
	return EncodePath(filepath.ToSlash(rel))
}

// Rewriter rewrites the local links of documents under Root.
type Rewriter struct {
	Root string
}

type attrPattern struct {
	re     *regexp.Regexp
	srcset bool
}

// Each pattern captures the text before the URL, the URL, and the rest of the tag.
var patterns = []attrPattern{
	{re: regexp.MustCompile(`(<(?:a|link|area|base)\s+[^>]*href\s*=\s*["'])([^"']+)(["'][^>]*>)`)},
	{re: regexp.MustCompile(`(<(?:img|audio|video|script|source|iframe|embed|track)\s+[^>]*src\s*=\s*["'])([^"']+)(["'][^>]*>)`)},
	{re: regexp.MustCompile(`(<(?:object|embed)\s+[^>]*data\s*=\s*["'])([^"']+)(["'][^>]*>)`)},
	{re: regexp.MustCompile(`(<video\s+[^>]*poster\s*=\s*["'])([^"']+)(["'][^>]*>)`)},
	{re: regexp.MustCompile(`(<form\s+[^>]*action\s*=\s*["'])([^"']+)(["'][^>]*>)`)},
	{re: regexp.MustCompile(`(<(?:img|source)\s+[^>]*srcset\s*=\s*["'])([^"']+)(["'][^>]*>)`), srcset: true},
}

// Rewrite returns html with every local URL attribute made relative to
// docPath, the absolute path of the file html will be written to. Non-local
// URLs are left byte-for-byte unchanged.
func (r Rewriter) Rewrite(html, docPath string) string {
	for _, p := range patterns {
		html = p.re.ReplaceAllStringFunc(html, func(m string) string {
			sub := p.re.FindStringSubmatch(m)
			before, url, after := sub[1], sub[2], sub[3]
			var rewritten string
			if p.srcset {
				rewritten = r.rewriteSrcset(url, docPath)
			} else if IsLocal(url) {
				rewritten = RelativeLink(url, docPath, r.Root)
			} else {
				return m
			}
			return before + rewritten + after
		})
	}
	return html
}

// rewriteSrcset rewrites the URL of each comma-separated candidate and keeps
// its width/density descriptor. Only a srcset with no local candidate is
// returned byte for byte. Once one candidate is local, every candidate
// (non-local ones included) is rebuilt as "url descriptor" and the list is
// joined with ", ", so their original spacing is not kept.
func (r Rewriter) rewriteSrcset(srcset, docPath string) string {
	candidates := strings.Split(srcset, ",")
	local := false
	for i, c := range candidates {
		fields := strings.Fields(c)
		if len(fields) == 0 {
			continue
		}
		if IsLocal(fields[0]) {
			fields[0] = RelativeLink(fields[0], docPath, r.Root)
			local = true
		}
		candidates[i] = strings.Join(fields, " ")
	}
	if !local {
		return srcset
	}
	return strings.Join(candidates, ", ")
}
