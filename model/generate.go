package model

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"

	"github.com/globality-corp/openapi/internal/pointer"
	"github.com/globality-corp/openapi/naming"
)

// DefaultRootName names the root type when Options.RootName is empty.
const DefaultRootName = "Swagger"

// DefaultBaseURI is used when neither Options.BaseURI nor the schema's id
// provide an absolute URI for reference resolution.
const DefaultBaseURI = "http://localhost/schema.json"

// Options configures Generate.
type Options struct {
	// RootName names the root type.
	RootName string
	// BaseURI is the absolute URI the schema document is registered under for
	// $ref resolution. Defaults to the document's id without fragment.
	BaseURI string
	// Logger receives generation warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// System is the set of types generated from one schema document: the root
// type, the registry of definition types and the compiled validators. It is
// built once by Generate and read-only afterwards, except for validators that
// are compiled lazily under an internal lock.
type System struct {
	schema   map[string]any
	baseURI  string
	registry *Registry
	root     *Type
	warnings []string
	logger   *slog.Logger

	mu     sync.Mutex // guards loader, whose reference pool is not goroutine-safe
	loader *gojsonschema.SchemaLoader
}

// Generate walks the definitions of doc once and synthesizes one type per
// definition with a concrete object, array or string shape, registering each
// in the system's registry. Definitions that are references or choices ($ref,
// oneOf) are skipped; definitions with any other shape are skipped with a
// warning. The root type is generated from doc itself and must be an object.
func Generate(doc map[string]any, opts Options) (*System, error) {
	if doc == nil {
		return nil, errors.New("model: nil schema")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &System{
		schema:   doc,
		baseURI:  resolveBaseURI(doc, opts.BaseURI),
		registry: NewRegistry(logger),
		logger:   logger,
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("model: encoding schema: %w", err)
	}
	loader := gojsonschema.NewSchemaLoader()
	loader.Draft = gojsonschema.Draft4
	if err := loader.AddSchema(s.baseURI, gojsonschema.NewBytesLoader(raw)); err != nil {
		return nil, fmt.Errorf("model: registering schema %s: %w", s.baseURI, err)
	}
	s.loader = loader

	defs, _ := doc["definitions"].(map[string]any)
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.generateDefinition(name, defs[name])
	}

	rootName := opts.RootName
	if rootName == "" {
		rootName = DefaultRootName
	}
	if isChoice(doc) {
		return nil, fmt.Errorf("model: root schema is a reference or choice, not a concrete shape")
	}
	kind, ok := kindOf(doc)
	if !ok || kind != KindObject {
		return nil, fmt.Errorf("model: root schema must describe an object, got type %v", doc["type"])
	}
	s.root = s.newType(rootName, KindObject, pointer.Root().Fragment(), doc)
	logger.Debug("generated type system", "root", rootName, "types", s.registry.Len(), "warnings", len(s.warnings))
	return s, nil
}

func (s *System) generateDefinition(name string, raw any) {
	fragment, ok := raw.(map[string]any)
	if !ok {
		s.warnf("definition %q is not a schema object (%T), skipping", name, raw)
		return
	}
	if isChoice(fragment) {
		s.logger.Debug("skipping reference or choice definition", "definition", name)
		return
	}
	kind, ok := kindOf(fragment)
	if !ok {
		s.warnf("unsupported schema type %v for definition %q", fragment["type"], name)
		return
	}
	ref := pointer.Root().Field("definitions").Field(name).Fragment()
	t := s.newType(naming.TypeName(name), kind, ref, fragment)
	if key := naming.DefinitionRef(t.Name()); key != naming.DefinitionsPrefix+name {
		s.warnf("definition %q registers as %s and is unreachable by $ref", name, key)
	}
	s.registry.Register(t)
	s.logger.Debug("generated type", "type", t.Name(), "kind", kind.String(), "ref", ref)
}

// isChoice reports definitions that denote a choice between existing types
// rather than a new concrete shape.
func isChoice(fragment map[string]any) bool {
	_, ref := fragment["$ref"]
	_, oneOf := fragment["oneOf"]
	return ref || oneOf
}

// kindOf maps the declared type of a fragment to a container kind. An absent
// type means object.
func kindOf(fragment map[string]any) (Kind, bool) {
	raw, ok := fragment["type"]
	if !ok {
		return KindObject, true
	}
	switch raw {
	case "object":
		return KindObject, true
	case "array":
		return KindArray, true
	case "string":
		return KindString, true
	default:
		return 0, false
	}
}

func resolveBaseURI(doc map[string]any, configured string) string {
	base := configured
	if base == "" {
		if id, ok := doc["id"].(string); ok {
			base = id
		}
	}
	base = strings.TrimSuffix(base, "#")
	if base == "" {
		base = DefaultBaseURI
	}
	return base
}

func (s *System) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.warnings = append(s.warnings, msg)
	s.logger.Warn(msg)
}

// Root returns the root type.
func (s *System) Root() *Type { return s.root }

// Registry returns the registry of definition types.
func (s *System) Registry() *Registry { return s.registry }

// Schema returns the full schema document. It must not be mutated.
func (s *System) Schema() map[string]any { return s.schema }

// BaseURI returns the URI the schema is registered under for $ref resolution.
func (s *System) BaseURI() string { return s.baseURI }

// Warnings returns the non-fatal warnings produced during generation.
func (s *System) Warnings() []string { return append([]string(nil), s.warnings...) }

// Type returns the type with the given name: the root type or a registered
// definition type.
func (s *System) Type(name string) (*Type, bool) {
	if s.root != nil && s.root.name == name {
		return s.root, true
	}
	return s.registry.Get(naming.DefinitionRef(name))
}

// New wraps raw as an instance of the named type.
func (s *System) New(name string, raw any) (Value, error) {
	t, ok := s.Type(name)
	if !ok {
		return nil, fmt.Errorf("model: unknown type %q", name)
	}
	return t.New(raw)
}

// Load wraps an already decoded document as an instance of the root type.
func (s *System) Load(raw any) (*Object, error) {
	v, err := s.root.New(raw)
	if err != nil {
		return nil, err
	}
	return v.(*Object), nil
}
