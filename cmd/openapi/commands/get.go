package commands

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/globality-corp/openapi/codec"
	"github.com/globality-corp/openapi/model"
)

type getConfig struct {
	*cli.Command
	*MainConfig
	TypeOnly bool   `cli:"name=type aliases=t desc='print the generated type name only'"`
	Format   string `cli:"name=format aliases=f desc='output format: json or yaml (default json)'"`
}

// GetCommand returns the get subcommand.
func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &getConfig{MainConfig: mainCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "get").
		WithSynopsis("get [-type] <pointer> [files] - print the value at a JSON pointer").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *getConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a JSON pointer", cli.ErrUsage)
	}
	ptr := args[0]
	out, err := outputCodec(cfg.Format, codec.JSON())
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, name := range filesOrStdin(args[1:]) {
		if err := getOne(cc.Out, cc.In, name, ptr, cfg.TypeOnly, out); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", name, ptr, err)
		}
	}
	return nil
}

// getOne prints the value at ptr. Untyped values report their type as "-".
func getOne(w io.Writer, in io.Reader, name, ptr string, typeOnly bool, out codec.Codec) error {
	doc, _, err := loadDoc(in, name)
	if err != nil {
		return err
	}
	v, err := doc.Lookup(ptr)
	if err != nil {
		return err
	}
	if typeOnly {
		typeName := "-"
		if tv, ok := v.(model.Value); ok {
			typeName = tv.Type().Name()
		}
		_, err := fmt.Fprintln(w, typeName)
		return err
	}
	return out.Encode(w, model.Plain(v))
}
