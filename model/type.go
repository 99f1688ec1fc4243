package model

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/globality-corp/openapi/codec"
)

// Kind is the container variant of a generated type.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is a container type bound to one schema fragment. The binding never
// changes after generation.
type Type struct {
	name   string
	kind   Kind
	ref    string
	schema map[string]any
	sys    *System

	patterns []patternProperty

	validator *gojsonschema.Schema // guarded by sys.mu
}

type patternProperty struct {
	source string
	re     *regexp.Regexp
	schema any
}

func (s *System) newType(name string, kind Kind, ref string, fragment map[string]any) *Type {
	t := &Type{name: name, kind: kind, ref: ref, schema: fragment, sys: s}
	if kind == KindObject {
		t.patterns = s.compilePatterns(name, fragment)
	}
	return t
}

// compilePatterns compiles patternProperties in lexicographic order. Patterns
// that fail to compile never match.
func (s *System) compilePatterns(name string, fragment map[string]any) []patternProperty {
	pp, ok := fragment["patternProperties"].(map[string]any)
	if !ok || len(pp) == 0 {
		return nil
	}
	sources := make([]string, 0, len(pp))
	for p := range pp {
		sources = append(sources, p)
	}
	sort.Strings(sources)
	out := make([]patternProperty, 0, len(sources))
	for _, p := range sources {
		re, err := regexp.Compile(p)
		if err != nil {
			s.warnf("type %s: ignoring invalid pattern %q: %v", name, p, err)
			continue
		}
		out = append(out, patternProperty{source: p, re: re, schema: pp[p]})
	}
	return out
}

// Name returns the generated type name (for example "PathItem").
func (t *Type) Name() string { return t.name }

// Kind returns the container variant.
func (t *Type) Kind() Kind { return t.kind }

// Ref returns the URI fragment of the bound schema fragment inside the full
// schema document ("#" for the root type).
func (t *Type) Ref() string { return t.ref }

// Schema returns the bound schema fragment. It is shared and must not be
// mutated.
func (t *Type) Schema() map[string]any { return t.schema }

// System returns the type system the type belongs to.
func (t *Type) System() *System { return t.sys }

func (t *Type) String() string { return t.name }

// New wraps raw as an instance of t. Maps and slices are adopted as backing
// storage, not copied. Values that are already instances are shallow-copied
// into a new instance of t. A raw value whose shape does not fit the kind
// yields an error matching ErrShapeMismatch.
func (t *Type) New(raw any) (Value, error) {
	switch t.kind {
	case KindObject:
		switch v := raw.(type) {
		case map[string]any:
			if v == nil {
				v = map[string]any{}
			}
			return &Object{typ: t, fields: v}, nil
		case *Object:
			fields := make(map[string]any, len(v.fields))
			for k, f := range v.fields {
				fields[k] = f
			}
			return &Object{typ: t, fields: fields}, nil
		}
	case KindArray:
		switch v := raw.(type) {
		case []any:
			if v == nil {
				v = []any{}
			}
			return &Array{typ: t, items: v}, nil
		case *Array:
			return &Array{typ: t, items: append([]any{}, v.items...)}, nil
		}
	case KindString:
		switch v := raw.(type) {
		case string:
			return &String{typ: t, value: v}, nil
		case *String:
			return &String{typ: t, value: v.value}, nil
		}
	}
	return nil, fmt.Errorf("model: cannot use %T as %s (%s): %w", raw, t.name, t.kind, ErrShapeMismatch)
}

// Load decodes one document from r with c (codec.JSON() when nil) and wraps
// it as an instance of t. Codec errors are returned unchanged.
func (t *Type) Load(r io.Reader, c codec.Codec) (Value, error) {
	if c == nil {
		c = codec.JSON()
	}
	raw, err := c.Decode(r)
	if err != nil {
		return nil, err
	}
	return t.New(raw)
}

// Loads is Load over a string.
func (t *Type) Loads(s string, c codec.Codec) (Value, error) {
	return t.Load(strings.NewReader(s), c)
}

// Empty returns a new instance with no entries (or the empty string).
func (t *Type) Empty() Value {
	switch t.kind {
	case KindArray:
		return &Array{typ: t, items: []any{}}
	case KindString:
		return &String{typ: t}
	default:
		return &Object{typ: t, fields: map[string]any{}}
	}
}

// propertySchema resolves the fragment governing key: properties first, then
// the first matching patternProperties entry, then additionalProperties, which
// defaults to true (unconstrained).
func (t *Type) propertySchema(key string) any {
	if props, ok := t.schema["properties"].(map[string]any); ok {
		if s, ok := props[key]; ok && s != nil {
			return s
		}
	}
	for _, p := range t.patterns {
		if p.re.MatchString(key) {
			return p.schema
		}
	}
	if ap, ok := t.schema["additionalProperties"]; ok && ap != nil {
		return ap
	}
	return true
}

// itemSchema resolves the fragment governing the element at index i. A single
// items fragment applies to every element; a tuple applies per index, with
// additionalItems past its end.
func (t *Type) itemSchema(i int) any {
	switch items := t.schema["items"].(type) {
	case map[string]any:
		return items
	case []any:
		if i < len(items) {
			return items[i]
		}
		if ai, ok := t.schema["additionalItems"]; ok && ai != nil {
			return ai
		}
	}
	return true
}

// materialize returns the typed equivalent of a raw slot value governed by
// fragment, or v itself when no generated type applies or the shape does not
// fit.
func (t *Type) materialize(fragment any, v any) (Value, bool) {
	target := t.sys.registry.Lookup(fragment)
	if target == nil {
		return nil, false
	}
	w, err := target.New(v)
	if err != nil {
		return nil, false
	}
	return w, true
}
