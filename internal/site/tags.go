package site

import (
	"log/slog"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/makeshared/sitewinder/internal/logfields"
	"github.com/makeshared/sitewinder/internal/markup"
	"github.com/makeshared/sitewinder/internal/metadata"
)

// SynthesizeTagPages builds one listing page per indexed tag from the tag
// template and files it as an ungrouped page. Each page sits beside the tag
// template, named after the lowercased tag, and lists the tagged pages newest
// first. The tag's Path is set to the new page's site path.
func SynthesizeTagPages(env Env, ix *Index, templatePath, template string) ([]*Page, error) {
	lower := cases.Lower(language.Und)
	dir := filepath.Dir(templatePath)
	seen := make(map[string]string)

	var pages []*Page
	for _, name := range ix.TagNames() {
		tp := ix.tags[name]
		metadata.SortNewestFirst(tp.Meta)

		path := filepath.Join(dir, lower.String(name)+env.PageExt)
		if other, dup := seen[path]; dup {
			env.logger().Warn("Tags share a tag page; the later one overwrites it",
				logfields.Tag(name),
				logfields.Template(path),
				slog.String("previous_tag", other))
		}
		seen[path] = name

		text := markup.ExpandTagTemplate(template, name, tp.Meta)
		page, err := NewPage(env, path, MemorySource{Text: text})
		if err != nil {
			return nil, withContext(err, "tag", name)
		}
		tp.Path = page.meta.Path
		ix.addUngrouped(page)
		pages = append(pages, page)
	}
	return pages, nil
}
