package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/globality-corp/openapi/internal/pointer"
)

// DuplicatePolicy controls what decoding does with repeated object keys.
type DuplicatePolicy int

const (
	// DuplicateIgnore keeps the last value.
	DuplicateIgnore DuplicatePolicy = iota
	// DuplicateError fails with a *DuplicateKeyError.
	DuplicateError
)

// DuplicateKeyError reports a repeated key. Path points at the object holding
// it.
type DuplicateKeyError struct {
	Path string
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("codec: duplicate key %q at %s", e.Key, e.Path)
}

// ErrTrailingData is returned when input continues after the first document.
var ErrTrailingData = errors.New("codec: unexpected data after top-level value")

// JSONOption configures the JSON codec.
type JSONOption func(*jsonCodec)

// JSONDuplicates sets the duplicate key policy. The default is DuplicateIgnore.
func JSONDuplicates(p DuplicatePolicy) JSONOption {
	return func(c *jsonCodec) { c.dup = p }
}

// JSONIndent sets the indentation used by Encode. An empty indent produces
// compact output. The default is two spaces.
func JSONIndent(indent string) JSONOption {
	return func(c *jsonCodec) { c.indent = indent }
}

type jsonCodec struct {
	dup    DuplicatePolicy
	indent string
}

// JSON returns the JSON codec. Numbers decode as json.Number so integer
// precision survives a round trip.
func JSON(opts ...JSONOption) Codec {
	c := &jsonCodec{indent: "  "}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *jsonCodec) Name() string { return "json" }

func (c *jsonCodec) Decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	d := &jsonDecoder{dec: dec, dup: c.dup}
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	v, err := d.value(tok, pointer.Root())
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return v, nil
}

func (c *jsonCodec) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if c.indent != "" {
		enc.SetIndent("", c.indent)
	}
	return enc.Encode(v)
}

type jsonDecoder struct {
	dec *json.Decoder
	dup DuplicatePolicy
}

func (d *jsonDecoder) value(tok any, at pointer.Ref) (any, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return d.object(at)
		case '[':
			return d.array(at)
		}
		return nil, fmt.Errorf("codec: unexpected %q at %s", rune(v), at)
	case json.Number:
		return v, nil
	case float64:
		return json.Number(fmt.Sprint(v)), nil
	case string, bool, nil:
		return v, nil
	default:
		return nil, fmt.Errorf("codec: unexpected token %T at %s", tok, at)
	}
}

func (d *jsonDecoder) object(at pointer.Ref) (map[string]any, error) {
	m := make(map[string]any)
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, eof(err)
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return m, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("codec: expected object key at %s, got %v", at, tok)
		}
		if _, seen := m[key]; seen && d.dup == DuplicateError {
			return nil, &DuplicateKeyError{Path: at.String(), Key: key}
		}
		vt, err := d.dec.Token()
		if err != nil {
			return nil, eof(err)
		}
		v, err := d.value(vt, at.Field(key))
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
}

func (d *jsonDecoder) array(at pointer.Ref) ([]any, error) {
	arr := []any{}
	for i := 0; ; i++ {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, eof(err)
		}
		if delim, ok := tok.(json.Delim); ok && delim == ']' {
			return arr, nil
		}
		v, err := d.value(tok, at.Index(i))
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// eof turns a clean EOF inside a container into io.ErrUnexpectedEOF.
func eof(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
