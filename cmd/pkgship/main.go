package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pkgship/cmd/pkgship/commands"
	"git.home.luguber.info/inful/pkgship/internal/errors"
	"git.home.luguber.info/inful/pkgship/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("pkgship"),
		kong.Description("Selective multi-package publisher: builds and uploads the monorepo packages affected by a revision."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	global := &commands.Global{Logger: slog.Default()}
	err := ctx.Run(global, &cli)

	adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
	adapter.HandleError(err)
}
