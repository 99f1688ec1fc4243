package commands

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/globality-corp/openapi/codec"
)

type roundtripConfig struct {
	*cli.Command
	*MainConfig
}

// RoundtripCommand returns the roundtrip subcommand.
func RoundtripCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &roundtripConfig{MainConfig: mainCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "roundtrip").
		WithAliases("rt").
		WithSynopsis("roundtrip [files] - load and dump documents and diff the result").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *roundtripConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	pal := newPalette(cc.Out, cfg.Plain)
	changed := 0
	for _, name := range filesOrStdin(args) {
		same, err := roundtripOne(cc.Out, cc.In, name, pal)
		if err != nil {
			return err
		}
		if !same {
			changed++
		}
	}
	if changed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// roundtripOne compares the canonical JSON rendering of the input with that
// of the loaded and re-dumped document.
func roundtripOne(w io.Writer, in io.Reader, name string, pal *palette) (bool, error) {
	data, err := readFile(in, name)
	if err != nil {
		return false, err
	}
	doc, c, err := loadBytes(data, name)
	if err != nil {
		return false, err
	}
	raw, err := c.Decode(bytes.NewReader(data))
	if err != nil {
		return false, err
	}
	before, err := canonical(raw)
	if err != nil {
		return false, err
	}

	var dumped bytes.Buffer
	if err := c.Encode(&dumped, doc); err != nil {
		return false, err
	}
	reloaded, err := c.Decode(&dumped)
	if err != nil {
		return false, fmt.Errorf("re-reading %s: %w", name, err)
	}
	after, err := canonical(reloaded)
	if err != nil {
		return false, err
	}

	if before == after {
		fmt.Fprintf(w, "%s: %s\n", name, pal.ok("%s", "identical"))
		return true, nil
	}
	fmt.Fprintf(w, "%s: %s\n", name, pal.bad("%s", "changed"))
	writeLineDiff(w, before, after, pal)
	return false, nil
}

func canonical(v any) (string, error) {
	var buf bytes.Buffer
	if err := codec.JSON().Encode(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeLineDiff(w io.Writer, before, after string, pal *palette) {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		prefix, paint := "  ", pal.dim
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "- ", pal.bad
		case diffpatch.DiffInsert:
			prefix, paint = "+ ", pal.ok
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(w, paint("%s%s", prefix, line))
		}
	}
}
