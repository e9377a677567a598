package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/makeshared/sitewinder/cmd/sitewinder/commands"
	"github.com/makeshared/sitewinder/internal/foundation/errors"
	"github.com/makeshared/sitewinder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name(version.Name),
		kong.Description("Generate a static site from page templates."),
		kong.UsageOnError(),
		kong.Vars{"version": version.About()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := parser.Run(&commands.Global{Context: ctx}, cli)
	stop()

	if err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		os.Exit(adapter.Report(err))
	}
}
