package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/globality-corp/openapi"
	"github.com/globality-corp/openapi/codec"
	"github.com/globality-corp/openapi/model"
)

// readFile reads name, or in when name is "-".
func readFile(in io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(name)
}

// loadDoc loads a document with the codec its name implies.
func loadDoc(in io.Reader, name string) (*model.Object, codec.Codec, error) {
	data, err := readFile(in, name)
	if err != nil {
		return nil, nil, err
	}
	return loadBytes(data, name)
}

// loadBytes loads data read from name.
func loadBytes(data []byte, name string) (*model.Object, codec.Codec, error) {
	c := openapi.CodecFor(name)
	doc, err := openapi.LoadWith(bytes.NewReader(data), openapi.Options{Codec: c})
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return doc, c, nil
}

// outputCodec resolves a -format value, falling back to def.
func outputCodec(format string, def codec.Codec) (codec.Codec, error) {
	if format == "" {
		return def, nil
	}
	c, ok := codec.ByName(format)
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	return c, nil
}

func filesOrStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

type palette struct {
	ok, bad, path, dim func(string, ...any) string
}

// newPalette colors output written to a terminal unless plain is set.
func newPalette(w io.Writer, plain bool) *palette {
	enabled := false
	if f, ok := w.(*os.File); ok && !plain {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	return &palette{
		ok:   mk(color.FgGreen),
		bad:  mk(color.FgRed, color.Bold),
		path: mk(color.FgCyan),
		dim:  mk(color.Faint),
	}
}
