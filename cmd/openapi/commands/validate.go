package commands

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/globality-corp/openapi/model"
)

type validateConfig struct {
	*cli.Command
	*MainConfig
	Quiet bool `cli:"name=q aliases=quiet desc='only print invalid documents'"`
}

// ValidateCommand returns the validate subcommand.
func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &validateConfig{MainConfig: mainCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "validate").
		WithAliases("v").
		WithSynopsis("validate [-q] [files] - validate documents").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *validateConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	pal := newPalette(cc.Out, cfg.Plain)
	failed := 0
	for _, name := range filesOrStdin(args) {
		if !validateOne(cc.Out, cc.In, name, cfg.Quiet, pal) {
			failed++
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// validateOne reports on one document and returns whether it is valid.
func validateOne(w io.Writer, in io.Reader, name string, quiet bool, pal *palette) bool {
	doc, _, err := loadDoc(in, name)
	if err != nil {
		fmt.Fprintf(w, "%s: %s\n", pal.bad("%s", "error"), err)
		return false
	}
	err = doc.Validate()
	if err == nil {
		if !quiet {
			fmt.Fprintf(w, "%s: %s\n", name, pal.ok("%s", "valid"))
		}
		return true
	}
	iss, ok := model.AsIssues(err)
	if !ok {
		fmt.Fprintf(w, "%s: %s: %s\n", name, pal.bad("%s", "error"), err)
		return false
	}
	fmt.Fprintf(w, "%s: %s (%d issues)\n", name, pal.bad("%s", "invalid"), len(iss))
	for _, is := range iss {
		fmt.Fprintf(w, "  %s %s %s\n", pal.path("%s", is.Path), pal.dim("%s", is.Code), is.Message)
	}
	return false
}
