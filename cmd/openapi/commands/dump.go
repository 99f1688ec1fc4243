package commands

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

type dumpConfig struct {
	*cli.Command
	*MainConfig
	Format string `cli:"name=format aliases=f desc='output format: json or yaml (default: same as input)'"`
}

// DumpCommand returns the dump subcommand.
func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &dumpConfig{MainConfig: mainCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "dump").
		WithSynopsis("dump [-format json|yaml] [files] - re-encode documents").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *dumpConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, name := range filesOrStdin(args) {
		if err := dumpOne(cc.Out, cc.In, name, cfg.Format); err != nil {
			return err
		}
	}
	return nil
}

func dumpOne(w io.Writer, in io.Reader, name, format string) error {
	doc, c, err := loadDoc(in, name)
	if err != nil {
		return err
	}
	out, err := outputCodec(format, c)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return out.Encode(w, doc)
}
