// Package markup implements the template language: include expansion,
// placeholder substitution, tag clouds and the tag page listing block.
//
// Tokens are written in braces and are whitespace-insensitive inside them:
//
//	{ include "/partials/header.html" }
//	{ title }  { date }  { author }  { current_year }
//	{ group "/partials/nav.html" }
//	{ prev.title } { prev.path } { next.title } { next.path }
//	{ tags '<a href="{ tag.page.link }" style="font-size: { tag.page.link_size }px">{ tag.page.title }</a>' }
//	{ pages '<a href="{ page.link }">{ page.title }</a>' }
//
// Substitution is purely textual and happens in a fixed order; later steps see
// the text produced by earlier ones.
package markup

import "regexp"

var (
	reInclude     = regexp.MustCompile(`\{\s*include\s+"(?P<path>[^"]+)"\s*\}`)
	reTitle       = regexp.MustCompile(`\{\s*title\s*\}`)
	reDate        = regexp.MustCompile(`\{\s*date\s*\}`)
	reAuthor      = regexp.MustCompile(`\{\s*author\s*\}`)
	reCurrentYear = regexp.MustCompile(`\{\s*current_year\s*\}`)
	reGroup       = regexp.MustCompile(`\{\s*group\s+"(?P<path>[^"]+)"\s*\}`)
	rePrevTitle   = regexp.MustCompile(`\{\s*prev\.title\s*\}`)
	rePrevPath    = regexp.MustCompile(`\{\s*prev\.path\s*\}`)
	reNextTitle   = regexp.MustCompile(`\{\s*next\.title\s*\}`)
	reNextPath    = regexp.MustCompile(`\{\s*next\.path\s*\}`)

	// Block markup runs to the last "' }" on the line.
	reTags        = regexp.MustCompile(`\{\s*tags\s+'(?P<markup>.*)'\s*\}`)
	reTagLink     = regexp.MustCompile(`\{\s*tag\.page\.link\s*\}`)
	reTagLinkSize = regexp.MustCompile(`\{\s*tag\.page\.link_size\s*\}`)
	reTagTitle    = regexp.MustCompile(`\{\s*tag\.page\.title\s*\}`)

	rePages     = regexp.MustCompile(`\{\s*pages\s+'(?P<markup>.*)'\s*\}`)
	rePageLink  = regexp.MustCompile(`\{\s*page\.link\s*\}`)
	rePageTitle = regexp.MustCompile(`\{\s*page\.title\s*\}`)
)

// submatch returns the named capture group of the single match m.
func submatch(re *regexp.Regexp, m, name string) string {
	sub := re.FindStringSubmatch(m)
	if sub == nil {
		return ""
	}
	return sub[re.SubexpIndex(name)]
}

// replaceFirst replaces the leftmost match of re in s with the literal repl.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}

// replaceAllFunc is regexp.ReplaceAllStringFunc with an error short-circuit:
// once fn fails, remaining matches are left as-is and the first error returned.
func replaceAllFunc(re *regexp.Regexp, s string, fn func(match string) (string, error)) (string, error) {
	var firstErr error
	out := re.ReplaceAllStringFunc(s, func(m string) string {
		if firstErr != nil {
			return m
		}
		r, err := fn(m)
		if err != nil {
			firstErr = err
			return m
		}
		return r
	})
	return out, firstErr
}
