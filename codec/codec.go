// Package codec converts between document text and the plain value model:
// map[string]any, []any, string, json.Number, bool and nil.
//
// Codec errors are returned as produced by the underlying library, except for
// the typed errors declared here.
package codec

import (
	"io"
	"path/filepath"
	"strings"
)

// Codec decodes and encodes one text format.
type Codec interface {
	Name() string
	Decode(r io.Reader) (any, error)
	// Encode writes v. Values implementing json.Marshaler or yaml.Marshaler
	// are encoded through those methods.
	Encode(w io.Writer, v any) error
}

// ForPath picks a codec from a file name's extension: YAML for .yaml and
// .yml, JSON otherwise.
func ForPath(name string) Codec {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML()
	default:
		return JSON()
	}
}

// ByName returns the codec called name ("json" or "yaml").
func ByName(name string) (Codec, bool) {
	switch strings.ToLower(name) {
	case "json":
		return JSON(), true
	case "yaml", "yml":
		return YAML(), true
	default:
		return nil, false
	}
}
