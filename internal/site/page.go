// Package site turns a directory of page templates into a generated site:
// it loads pages, indexes them by group and tag, synthesizes tag pages and
// renders every page through includes, substitution and link rewriting.
package site

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/makeshared/sitewinder/internal/foundation"
	"github.com/makeshared/sitewinder/internal/foundation/errors"
	"github.com/makeshared/sitewinder/internal/linkrewrite"
	"github.com/makeshared/sitewinder/internal/logfields"
	"github.com/makeshared/sitewinder/internal/markup"
	"github.com/makeshared/sitewinder/internal/metadata"
	"github.com/makeshared/sitewinder/internal/sitefs"
)

// Env carries the values shared by every page of one run.
type Env struct {
	Root        string // absolute site root
	CurrentYear string // computed once per run
	FS          sitefs.FS
	PageExt     string // page template suffix, used to name tag pages
	OutputExt   string
	Logger      *slog.Logger
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// TemplateSource says where a page's template text comes from.
type TemplateSource interface {
	load(fs sitefs.FS, templatePath string) (string, error)
}

// FileSource reads the template from its path.
type FileSource struct{}

func (FileSource) load(fs sitefs.FS, templatePath string) (string, error) {
	return fs.ReadText(templatePath)
}

// MemorySource supplies template text directly, for synthesized pages.
type MemorySource struct {
	Text string
}

func (s MemorySource) load(sitefs.FS, string) (string, error) {
	return s.Text, nil
}

// Page is one template on its way to becoming one output file.
type Page struct {
	env        Env
	template   string
	outputPath string
	synthetic  bool
	meta       metadata.Metadata
	body       string
}

// NewPage loads the template at templatePath from src and parses its header.
// The output path is the template path with the output extension; the site
// path recorded in the metadata is fixed here.
func NewPage(env Env, templatePath string, src TemplateSource) (*Page, error) {
	outputPath := strings.TrimSuffix(templatePath, filepath.Ext(templatePath)) + env.OutputExt
	rel, err := filepath.Rel(env.Root, outputPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, errors.InternalError("template outside site root").
			WithCause(err).
			WithContext("template", templatePath).
			WithContext("root", env.Root).
			Build()
	}

	raw, err := src.load(env.FS, templatePath)
	if err != nil {
		return nil, withContext(err, "template", templatePath)
	}

	_, synthetic := src.(MemorySource)
	p := &Page{
		env:        env,
		template:   templatePath,
		outputPath: outputPath,
		synthetic:  synthetic,
		meta:       metadata.New("/" + filepath.ToSlash(rel)),
	}

	body, warnings, err := metadata.Parse(raw, &p.meta)
	if err != nil {
		return nil, withContext(err, "template", templatePath)
	}
	for _, w := range warnings {
		line, _ := w.Context().Get("line")
		key, _ := w.Context().Get("key")
		env.logger().Warn("Ignoring metadata line",
			logfields.Template(templatePath),
			slog.Any(logfields.KeyLine, line),
			slog.Any(logfields.KeyKey, key),
			slog.String("reason", w.Message()),
			slog.String("category", string(w.Category())))
	}
	p.body = body
	return p, nil
}

// Meta returns a copy of the page metadata.
func (p *Page) Meta() metadata.Metadata { return p.meta.Clone() }

// TemplatePath is the file the page was loaded from, or would have been for
// synthesized pages.
func (p *Page) TemplatePath() string { return p.template }

// OutputPath is the absolute path the page is written to.
func (p *Page) OutputPath() string { return p.outputPath }

// Synthetic reports whether the page was built in memory (a tag page).
func (p *Page) Synthetic() bool { return p.synthetic }

// Body is the page text: the template body before Render, HTML after.
func (p *Page) Body() string { return p.body }

// Render expands includes, substitutes placeholders and rewrites local links,
// in that order. prev and next are the page's group neighbors and tags the
// read-only tag cloud snapshot.
func (p *Page) Render(ctx context.Context, prev, next foundation.Option[markup.Neighbor], tags []markup.TagEntry) error {
	expander := markup.Expander{Root: p.env.Root, Reader: p.env.FS}
	body, err := expander.Expand(ctx, p.body)
	if err != nil {
		return withContext(err, "page", p.meta.Path)
	}

	body, err = markup.Substitute(body, markup.RenderContext{
		Meta:        p.meta,
		Prev:        prev,
		Next:        next,
		Tags:        tags,
		CurrentYear: p.env.CurrentYear,
		Root:        p.env.Root,
		Reader:      p.env.FS,
		Link:        p.relativeLink,
	})
	if err != nil {
		return withContext(err, "page", p.meta.Path)
	}

	p.body = linkrewrite.Rewriter{Root: p.env.Root}.Rewrite(body, p.outputPath)
	return nil
}

func (p *Page) relativeLink(sitePath string) string {
	return linkrewrite.RelativeLink(sitePath, p.outputPath, p.env.Root)
}

// Write stores the page body at its output path.
func (p *Page) Write() error {
	if err := p.env.FS.WriteText(p.outputPath, p.body); err != nil {
		return withContext(err, "page", p.meta.Path)
	}
	return nil
}

// withContext adds key to a classified error; anything else is wrapped as a
// render error.
func withContext(err error, key, value string) error {
	if ce, ok := errors.AsClassified(err); ok {
		return ce.WithContext(key, value)
	}
	return errors.RenderError("render page").
		WithCause(err).
		WithContext(key, value).
		Build()
}
