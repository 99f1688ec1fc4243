package openapi

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/globality-corp/openapi/codec"
	"github.com/globality-corp/openapi/model"
	"github.com/globality-corp/openapi/schemas"
)

// RootName is the name of the document root type.
const RootName = "Swagger"

var (
	typesOnce sync.Once
	types     *model.System
)

// Types returns the process-wide type system generated from the embedded
// Swagger 2.0 schema. It panics if the embedded schema cannot be used.
func Types() *model.System {
	typesOnce.Do(func() {
		doc, err := schemas.Swagger()
		if err != nil {
			panic(err)
		}
		sys, err := model.Generate(doc, model.Options{RootName: RootName})
		if err != nil {
			panic(fmt.Errorf("openapi: generating types: %w", err))
		}
		types = sys
	})
	return types
}

// Options selects the codec used by LoadWith and DumpWith.
type Options struct {
	// Codec defaults to codec.JSON().
	Codec codec.Codec
}

func (o Options) codec() codec.Codec {
	if o.Codec == nil {
		return codec.JSON()
	}
	return o.Codec
}

// CodecFor picks a codec by file extension.
func CodecFor(filename string) codec.Codec {
	return codec.ForPath(filename)
}

// Load decodes a JSON document from r.
func Load(r io.Reader) (*model.Object, error) {
	return LoadWith(r, Options{})
}

// Loads decodes a JSON document from s.
func Loads(s string) (*model.Object, error) {
	return Load(strings.NewReader(s))
}

// LoadWith decodes a document with the configured codec and wraps it as the
// root type. Codec errors are returned unchanged.
func LoadWith(r io.Reader, opts Options) (*model.Object, error) {
	v, err := Types().Root().Load(r, opts.codec())
	if err != nil {
		return nil, err
	}
	return v.(*model.Object), nil
}

// Dump writes v to w as JSON.
func Dump(v model.Value, w io.Writer) error {
	return DumpWith(v, w, Options{})
}

// Dumps renders v as JSON.
func Dumps(v model.Value) (string, error) {
	var buf bytes.Buffer
	if err := Dump(v, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DumpWith writes v with the configured codec.
func DumpWith(v model.Value, w io.Writer, opts Options) error {
	return opts.codec().Encode(w, v)
}

// New returns an object of the named type holding fields. The map is adopted
// as the object's storage. name may be RootName or any generated object type,
// for example "Info" or "PathItem".
func New(name string, fields map[string]any) (*model.Object, error) {
	t, ok := Types().Type(name)
	if !ok {
		return nil, fmt.Errorf("openapi: unknown type %q", name)
	}
	if t.Kind() != model.KindObject {
		return nil, fmt.Errorf("openapi: %s is a %s type, not an object", name, t.Kind())
	}
	if fields == nil {
		fields = map[string]any{}
	}
	v, err := t.New(fields)
	if err != nil {
		return nil, err
	}
	return v.(*model.Object), nil
}
