package model

import (
	"log/slog"
	"sort"

	"github.com/globality-corp/openapi/naming"
)

// Registry maps reference identifiers ("#/definitions/<name>") to generated
// types. It is populated during generation and read-only afterwards; reads are
// safe from multiple goroutines once generation has returned.
type Registry struct {
	types  map[string]*Type
	logger *slog.Logger
}

// NewRegistry returns an empty registry. A nil logger uses slog.Default().
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{types: make(map[string]*Type), logger: logger}
}

// Register stores t under naming.DefinitionRef(t.Name()) and returns t. The
// first registration for an identifier wins.
func (r *Registry) Register(t *Type) *Type {
	ref := naming.DefinitionRef(t.Name())
	if existing, ok := r.types[ref]; ok && existing != t {
		r.logger.Error("duplicate type registration ignored", "ref", ref, "type", t.Name(), "kept", existing.Name())
		return t
	}
	r.types[ref] = t
	return t
}

// Lookup returns the generated type a reference fragment points to. Any other
// fragment, or a reference to a definition without a generated type, yields
// nil: the value is treated as a plain value.
func (r *Registry) Lookup(fragment any) *Type {
	ref, ok := referenceOf(fragment)
	if !ok {
		return nil
	}
	return r.types[ref]
}

// Get returns the type registered under ref.
func (r *Registry) Get(ref string) (*Type, bool) {
	t, ok := r.types[ref]
	return t, ok
}

// Types returns all registered types sorted by name.
func (r *Registry) Types() []*Type {
	out := make([]*Type, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.types) }

// referenceOf extracts the reference identifier of a reference fragment. A
// fragment is a reference when it carries a string $ref (annotations such as
// description may sit next to it), or when it is an allOf with exactly one
// such member.
func referenceOf(fragment any) (string, bool) {
	m, ok := fragment.(map[string]any)
	if !ok {
		return "", false
	}
	if ref, ok := m["$ref"].(string); ok {
		return ref, true
	}
	if all, ok := m["allOf"].([]any); ok && len(all) == 1 {
		return referenceOf(all[0])
	}
	return "", false
}
