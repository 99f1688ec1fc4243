package commands

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/globality-corp/openapi"
)

type patchConfig struct {
	*cli.Command
	*MainConfig
	Check  bool   `cli:"name=check aliases=c desc='validate the patched document'"`
	Format string `cli:"name=format aliases=f desc='output format: json or yaml (default: same as input)'"`
}

// PatchCommand returns the patch subcommand.
func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &patchConfig{MainConfig: mainCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "patch").
		WithSynopsis("patch [-check] <patch-file> <file> - apply a JSON Patch").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *patchConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires a patch file and a document", cli.ErrUsage)
	}
	return patchOne(cc.Out, cc.In, args[0], args[1], cfg.Check, cfg.Format)
}

func patchOne(w io.Writer, in io.Reader, patchName, docName string, check bool, format string) error {
	ops, err := readFile(in, patchName)
	if err != nil {
		return err
	}
	doc, c, err := loadDoc(in, docName)
	if err != nil {
		return err
	}
	out, err := outputCodec(format, c)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	patched, err := openapi.Patch(doc, ops)
	if err != nil {
		return err
	}
	if check {
		if err := patched.Validate(); err != nil {
			return fmt.Errorf("patched %s: %w", docName, err)
		}
	}
	return out.Encode(w, patched)
}
