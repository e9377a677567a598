package site

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/makeshared/sitewinder/internal/config"
	"github.com/makeshared/sitewinder/internal/foundation/errors"
	"github.com/makeshared/sitewinder/internal/linkverify"
	"github.com/makeshared/sitewinder/internal/logfields"
	"github.com/makeshared/sitewinder/internal/markup"
	"github.com/makeshared/sitewinder/internal/metrics"
	"github.com/makeshared/sitewinder/internal/sitefs"
)

// Generator runs one full build of the site under Config.Root.
// Zero-valued FS, Recorder, Logger and Now fall back to the OS file system,
// no metrics, slog.Default and time.Now.
type Generator struct {
	Config   *config.Config
	FS       sitefs.FS
	Recorder metrics.Recorder
	Logger   *slog.Logger
	Now      func() time.Time
}

// Result describes a finished build.
type Result struct {
	Pages       int      // template pages
	TagPages    int      // synthesized tag pages
	Written     []string // output files, in render order
	BrokenLinks []linkverify.BrokenLink
}

type job struct {
	index int
	Placement
}

// Run loads every page template, indexes the pages, synthesizes tag pages
// and renders and writes every page. With build.workers above 1 pages render
// concurrently; the index is read-only by then.
func (g *Generator) Run(ctx context.Context) (res *Result, err error) {
	if g.Config == nil {
		return nil, errors.ConfigError("generator has no configuration").Build()
	}
	fs := g.FS
	if fs == nil {
		fs = sitefs.OS{}
	}
	rec := g.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := g.Now
	if now == nil {
		now = time.Now
	}

	start := time.Now()
	defer func() {
		rec.ObserveBuildDuration(time.Since(start))
		rec.IncBuildOutcome(outcome(ctx, res, err))
	}()

	cfg := g.Config
	env := Env{
		Root:        cfg.Root,
		CurrentYear: strconv.Itoa(now().Year()),
		FS:          fs,
		PageExt:     cfg.Site.PageExtension,
		OutputExt:   cfg.Site.OutputExtension,
		Logger:      logger,
	}
	logger.Info("Generating site", logfields.Root(cfg.Root), logfields.Workers(cfg.Build.Workers))

	ix, res, err := g.load(ctx, env)
	if err != nil {
		return nil, err
	}
	rec.SetTags(len(ix.TagNames()))

	var jobs []job
	for _, key := range ix.GroupKeys() {
		for _, pl := range ix.Neighbors(key) {
			jobs = append(jobs, job{index: len(jobs), Placement: pl})
		}
	}
	res.Written = make([]string, len(jobs))
	if err := g.render(ctx, env, rec, jobs, ix.Snapshot(), res.Written); err != nil {
		return nil, err
	}

	if cfg.Build.VerifyLinks {
		if err := g.verify(ctx, logger, rec, res); err != nil {
			return res, err
		}
	}

	logger.Info("Site generated",
		logfields.Count(len(res.Written)),
		slog.Int("tag_pages", res.TagPages),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return res, nil
}

// load reads every page template and the first tag template into an index.
func (g *Generator) load(ctx context.Context, env Env) (*Index, *Result, error) {
	cfg := g.Config
	templates, err := env.FS.Enumerate(cfg.Root, cfg.Site.PageExtension)
	if err != nil {
		return nil, nil, err
	}
	tagTemplates, err := env.FS.Enumerate(cfg.Root, cfg.Site.TagExtension)
	if err != nil {
		return nil, nil, err
	}

	ix := NewIndex()
	for _, path := range templates {
		if err := ctx.Err(); err != nil {
			return nil, nil, canceled(err)
		}
		page, err := NewPage(env, path, FileSource{})
		if err != nil {
			return nil, nil, err
		}
		ix.Add(page)
	}
	res := &Result{Pages: len(templates)}

	if len(tagTemplates) == 0 {
		return ix, res, nil
	}
	tagTemplate := tagTemplates[0]
	for _, ignored := range tagTemplates[1:] {
		env.logger().Warn("Ignoring additional tag template", logfields.Template(ignored), slog.String("using", tagTemplate))
	}
	text, err := env.FS.ReadText(tagTemplate)
	if err != nil {
		return nil, nil, withContext(err, "template", tagTemplate)
	}
	tagPages, err := SynthesizeTagPages(env, ix, tagTemplate, text)
	if err != nil {
		return nil, nil, err
	}
	res.TagPages = len(tagPages)
	return ix, res, nil
}

func (g *Generator) render(ctx context.Context, env Env, rec metrics.Recorder, jobs []job, tags []markup.TagEntry, written []string) error {
	workers := g.Config.Build.Workers
	if workers <= 1 {
		for _, j := range jobs {
			if err := ctx.Err(); err != nil {
				return canceled(err)
			}
			if err := g.renderOne(ctx, env, rec, j, tags, written); err != nil {
				return err
			}
		}
		return nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, j := range jobs {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return canceled(err)
			}
			return g.renderOne(egCtx, env, rec, j, tags, written)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return canceled(err)
	}
	return nil
}

// renderOne renders and writes one page. Each job owns its page and its slot
// in written.
func (g *Generator) renderOne(ctx context.Context, env Env, rec metrics.Recorder, j job, tags []markup.TagEntry, written []string) error {
	p := j.Page
	env.logger().Info("Generating page", logfields.Page(p.meta.Path))

	start := time.Now()
	if err := p.Render(ctx, j.Prev, j.Next, tags); err != nil {
		return err
	}
	if err := p.Write(); err != nil {
		return err
	}

	kind := metrics.KindPage
	if p.Synthetic() {
		kind = metrics.KindTag
	}
	rec.ObservePageRender(kind, time.Since(start))
	rec.IncPages(kind)
	written[j.index] = p.outputPath
	return nil
}

func (g *Generator) verify(ctx context.Context, logger *slog.Logger, rec metrics.Recorder, res *Result) error {
	report, err := linkverify.Verify(ctx, g.Config.Root, res.Written)
	if err != nil {
		return err
	}
	res.BrokenLinks = report.Broken
	rec.IncBrokenLinks(len(report.Broken))
	for _, b := range report.Broken {
		logger.Warn("Broken link",
			logfields.Output(b.Page),
			logfields.URL(b.URL),
			slog.String("target", b.Target))
	}
	logger.Debug("Links verified", slog.Int("files", report.Files), logfields.Count(report.Links))

	if len(report.Broken) > 0 && g.Config.Build.FailOnBrokenLinks {
		return errors.ValidationError("generated pages contain broken links").
			WithContext("count", len(report.Broken)).
			Build()
	}
	return nil
}

func canceled(err error) error {
	return errors.RenderError("generation canceled").WithCause(err).Build()
}

func outcome(ctx context.Context, res *Result, err error) metrics.BuildOutcome {
	switch {
	case ctx.Err() != nil:
		return metrics.OutcomeCanceled
	case err != nil:
		return metrics.OutcomeFailed
	case res != nil && len(res.BrokenLinks) > 0:
		return metrics.OutcomeWarning
	default:
		return metrics.OutcomeSuccess
	}
}
