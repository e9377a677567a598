package markup

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/makeshared/sitewinder/internal/foundation"
	"github.com/makeshared/sitewinder/internal/foundation/errors"
	"github.com/makeshared/sitewinder/internal/metadata"
)

// noNeighborPath is emitted for { prev.path } / { next.path } when there is no
// such page, so the surrounding markup never ends up with an empty href.
const noNeighborPath = "#"

// Neighbor is the part of an adjacent page that prev/next tokens can show.
// Path is the neighbor's site-root path.
type Neighbor struct {
	Title string
	Path  string
}

// NeighborOf snapshots m for use as a prev/next reference.
func NeighborOf(m metadata.Metadata) Neighbor {
	return Neighbor{Title: m.Title, Path: m.Path}
}

// TagEntry is one tag of the site-wide tag cloud.
type TagEntry struct {
	Name  string
	Path  string // site-root path of the tag page, "" when no tag page exists
	Count int    // number of pages carrying the tag
}

// LinkSize is the tag cloud font weight: 11 plus the tagged page count, capped at 18.
func LinkSize(count int) int {
	return 11 + min(count, 7)
}

// RenderContext holds everything substitution needs for one page.
type RenderContext struct {
	Meta        metadata.Metadata
	Prev        foundation.Option[Neighbor]
	Next        foundation.Option[Neighbor]
	Tags        []TagEntry // tag-name order
	CurrentYear string

	// Root and Reader serve { group "<path>" }.
	Root   string
	Reader Reader

	// Link turns a site-root path into a link relative to the page being
	// rendered. Nil leaves paths unchanged.
	Link func(sitePath string) string
}

func (rc *RenderContext) link(sitePath string) string {
	if rc.Link == nil {
		return sitePath
	}
	return rc.Link(sitePath)
}

type step struct {
	name  string
	apply func(body string, rc *RenderContext) (string, error)
}

// literal replaces every match of re with a value taken from the context.
func literal(re *regexp.Regexp, value func(rc *RenderContext) string) func(string, *RenderContext) (string, error) {
	return func(body string, rc *RenderContext) (string, error) {
		return re.ReplaceAllLiteralString(body, value(rc)), nil
	}
}

// steps run in this exact order.
var steps = []step{
	{"title", literal(reTitle, func(rc *RenderContext) string { return rc.Meta.Title })},
	{"date", literal(reDate, func(rc *RenderContext) string { return metadata.FormatDate(rc.Meta.Date) })},
	{"author", literal(reAuthor, func(rc *RenderContext) string { return rc.Meta.Author })},
	{"current_year", literal(reCurrentYear, func(rc *RenderContext) string { return rc.CurrentYear })},
	{"group", substituteGroup},
	{"prev.title", literal(rePrevTitle, func(rc *RenderContext) string { return neighborTitle(rc.Prev) })},
	{"prev.path", literal(rePrevPath, func(rc *RenderContext) string { return neighborPath(rc, rc.Prev) })},
	{"next.title", literal(reNextTitle, func(rc *RenderContext) string { return neighborTitle(rc.Next) })},
	{"next.path", literal(reNextPath, func(rc *RenderContext) string { return neighborPath(rc, rc.Next) })},
	{"tags", repeatTagMarkup},
	{"tag.page", fillTagCloud},
}

// Substitute resolves every placeholder in body. Tokens without data become
// empty text; only a missing group include fails.
func Substitute(body string, rc RenderContext) (string, error) {
	for _, s := range steps {
		var err error
		body, err = s.apply(body, &rc)
		if err != nil {
			return "", err
		}
	}
	return body, nil
}

// substituteGroup inlines the referenced file for grouped pages and drops the
// directive otherwise. The inlined text is not substituted again.
func substituteGroup(body string, rc *RenderContext) (string, error) {
	return replaceAllFunc(reGroup, body, func(m string) (string, error) {
		if rc.Meta.Group.IsNone() {
			return "", nil
		}
		ref := submatch(reGroup, m, "path")
		path := IncludePath(rc.Root, ref)
		text, err := rc.Reader.ReadText(path)
		if err != nil {
			return "", errors.WrapError(err, errors.CategoryInclude, "group include target not found").
				Fatal().
				WithContext("include", ref).
				WithContext("path", path).
				Build()
		}
		return text, nil
	})
}

func neighborTitle(n foundation.Option[Neighbor]) string {
	if v, ok := n.Get(); ok {
		return v.Title
	}
	return ""
}

func neighborPath(rc *RenderContext, n foundation.Option[Neighbor]) string {
	if v, ok := n.Get(); ok {
		return rc.link(v.Path)
	}
	return noNeighborPath
}

// repeatTagMarkup expands each { tags '<markup>' } block into one copy of
// markup per known tag; fillTagCloud then gives each copy its values.
func repeatTagMarkup(body string, rc *RenderContext) (string, error) {
	return reTags.ReplaceAllStringFunc(body, func(m string) string {
		return strings.Repeat(submatch(reTags, m, "markup"), len(rc.Tags))
	}), nil
}

// fillTagCloud consumes the first remaining link, size and title token for
// each tag in turn.
func fillTagCloud(body string, rc *RenderContext) (string, error) {
	for _, tag := range rc.Tags {
		body = replaceFirst(reTagLink, body, rc.link(tag.Path))
		body = replaceFirst(reTagLinkSize, body, strconv.Itoa(LinkSize(tag.Count)))
		body = replaceFirst(reTagTitle, body, tag.Name)
	}
	return body, nil
}

// ExpandTagTemplate turns the tag template into the source of one tag page:
// { title } becomes the tag name and each { pages '<markup>' } block becomes
// markup repeated for every page, in the given order, with { page.link } set
// to the page's site-root path and { page.title } to its title.
//
// Links stay site-root paths here; the page's final link rewrite makes them
// relative.
func ExpandTagTemplate(tmpl, tag string, pages []metadata.Metadata) string {
	contents := reTitle.ReplaceAllLiteralString(tmpl, tag)

	m := rePages.FindStringSubmatch(contents)
	if m == nil {
		return contents
	}
	block := m[rePages.SubexpIndex("markup")]

	var listing strings.Builder
	for _, p := range pages {
		entry := rePageLink.ReplaceAllLiteralString(block, p.Path)
		entry = rePageTitle.ReplaceAllLiteralString(entry, p.Title)
		listing.WriteString(entry)
	}
	return rePages.ReplaceAllLiteralString(contents, listing.String())
}
