package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/makeshared/sitewinder/internal/config"
	"github.com/makeshared/sitewinder/internal/logfields"
	"github.com/makeshared/sitewinder/internal/metrics"
	"github.com/makeshared/sitewinder/internal/site"
	"github.com/makeshared/sitewinder/internal/sitefs"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Root        string `arg:"" name:"root" help:"Site root directory containing page templates"`
	Workers     int    `short:"w" help:"Pages rendered in parallel (overrides build.workers)"`
	VerifyLinks bool   `name:"verify-links" help:"Check local links in the generated pages"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile after the run"`

	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

func (g *GenerateCmd) Run(global *Global, cli *CLI) error {
	ctx := context.Background()
	if global != nil && global.Context != nil {
		ctx = global.Context
	}
	stdout, stderr := g.writers()

	cfg, err := config.Load(g.Root)
	if err != nil {
		return err
	}
	g.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cli.configureLogging(stderr, cfg)

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		rec = prom
	}

	gen := &site.Generator{Config: cfg, FS: sitefs.OS{}, Recorder: rec, Logger: logger}
	res, runErr := gen.Run(ctx)

	if prom != nil {
		if err := prom.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Output(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	_, _ = fmt.Fprintf(stdout, "Generated %d pages (%d tag pages) under %s\n", len(res.Written), res.TagPages, cfg.Root)
	if n := len(res.BrokenLinks); n > 0 {
		_, _ = fmt.Fprintf(stdout, "%d broken links\n", n)
	}
	return nil
}

// applyFlags layers command-line overrides over file and environment values.
func (g *GenerateCmd) applyFlags(cfg *config.Config) {
	if g.Workers != 0 {
		cfg.Build.Workers = g.Workers
	}
	if g.VerifyLinks {
		cfg.Build.VerifyLinks = true
	}
	if g.MetricsFile != "" {
		cfg.Metrics.Textfile = g.MetricsFile
	}
}

func (g *GenerateCmd) writers() (io.Writer, io.Writer) {
	stdout, stderr := g.stdout, g.stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}
