package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"
)

const usageText = `openapi - Swagger 2.0 document tool

Usage:
  openapi validate [files]               Validate documents against the Swagger 2.0 schema
  openapi dump [-format f] [files]       Re-encode documents as json or yaml
  openapi get <pointer> [files]          Print the value at a JSON pointer
  openapi types                          List the generated types
  openapi patch [-check] <patch> <file>  Apply an RFC 6902 JSON Patch
  openapi roundtrip [files]              Load and dump documents and diff the result

Files ending in .yaml or .yml are read as YAML, anything else as JSON.
"-" reads JSON from standard input.`

// MainConfig holds the options shared by every subcommand.
type MainConfig struct {
	Verbose bool `cli:"name=v aliases=verbose desc='log debug output to stderr'"`
	Plain   bool `cli:"name=plain desc='never color output'"`

	Main *cli.Command
}

// Root returns the root command.
func Root() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "openapi").
		WithSynopsis("openapi [opts] command [opts]").
		WithDescription(usageText).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mainRun(cfg, cc, args)
		}).
		WithSubs(
			ValidateCommand(cfg),
			DumpCommand(cfg),
			GetCommand(cfg),
			TypesCommand(cfg),
			PatchCommand(cfg),
			RoundtripCommand(cfg))
}

func mainRun(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(cfg.Verbose))
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
