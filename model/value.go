package model

import (
	"github.com/goccy/go-json"
)

// Value is the capability set shared by every container variant.
type Value interface {
	// Type returns the generated type the instance belongs to.
	Type() *Type
	// Validate checks the current structure against the type's schema
	// fragment, resolving every $ref against the full schema document.
	Validate() error
	// Dump returns a plain deep copy: map[string]any, []any or string at the
	// top, with nested containers degraded the same way.
	Dump() any
	MarshalJSON() ([]byte, error)
	MarshalYAML() (any, error)
}

var (
	_ Value = (*Object)(nil)
	_ Value = (*Array)(nil)
	_ Value = (*String)(nil)
)

// Plain returns a plain deep copy of a tree that may mix containers and raw
// values. Scalars are returned as-is.
func Plain(v any) any {
	switch x := v.(type) {
	case *Object:
		return plainMap(x.fields)
	case *Array:
		return plainSlice(x.items)
	case *String:
		return x.value
	case map[string]any:
		return plainMap(x)
	case []any:
		return plainSlice(x)
	default:
		return v
	}
}

func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Plain(v)
	}
	return out
}

func plainSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = Plain(v)
	}
	return out
}

func marshalPlain(v Value) ([]byte, error) {
	return json.Marshal(v.Dump())
}
