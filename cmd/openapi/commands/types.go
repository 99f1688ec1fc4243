package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/scott-cotton/cli"

	"github.com/globality-corp/openapi"
	"github.com/globality-corp/openapi/model"
)

type typesConfig struct {
	*cli.Command
	*MainConfig
}

// TypesCommand returns the types subcommand.
func TypesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &typesConfig{MainConfig: mainCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "types").
		WithSynopsis("types - list the generated types").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *typesConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: types takes no arguments", cli.ErrUsage)
	}
	return listTypes(cc.Out, openapi.Types())
}

func listTypes(w io.Writer, sys *model.System) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tKIND\tREF\n")
	root := sys.Root()
	fmt.Fprintf(tw, "%s\t%s\t%s\n", root.Name(), root.Kind(), root.Ref())
	for _, t := range sys.Registry().Types() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name(), t.Kind(), t.Ref())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, warning := range sys.Warnings() {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}
