package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/globality-corp/openapi/internal/pointer"
)

// contextSep joins validator context segments; it cannot occur in a JSON key
// decoded from text.
const contextSep = "\x00"

// compiled returns the validator for t, compiling it on first use. The
// compiled schema is a reference into the full document registered under the
// system's base URI, so every $ref inside the fragment resolves the same way
// for a sub-node as for the whole document. Failed compiles are not cached.
func (t *Type) compiled() (*gojsonschema.Schema, error) {
	s := t.sys
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.validator != nil {
		return t.validator, nil
	}
	sch, err := s.loader.Compile(gojsonschema.NewReferenceLoader(s.baseURI + t.ref))
	if err != nil {
		return nil, fmt.Errorf("model: compiling validator for %s (%s): %w", t.name, t.ref, err)
	}
	t.validator = sch
	return sch, nil
}

func (t *Type) validate(v Value) error {
	sch, err := t.compiled()
	if err != nil {
		return err
	}
	data, err := marshalPlain(v)
	if err != nil {
		return fmt.Errorf("model: encoding %s for validation: %w", t.name, err)
	}
	res, err := sch.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("model: validating %s: %w", t.name, err)
	}
	if res.Valid() {
		return nil
	}
	return &ValidationError{Type: t.name, Ref: t.ref, Issues: issuesFrom(res.Errors())}
}

func issuesFrom(errs []gojsonschema.ResultError) Issues {
	out := make(Issues, 0, len(errs))
	for _, e := range errs {
		out = append(out, Issue{
			Path:    contextPointer(e.Context()),
			Code:    e.Type(),
			Message: e.Description(),
			Value:   e.Value(),
			Params:  map[string]any(e.Details()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// contextPointer renders a validator context ("(root)", "info", "title") as a
// JSON Pointer ("/info/title").
func contextPointer(ctx *gojsonschema.JsonContext) string {
	if ctx == nil {
		return pointer.Root().String()
	}
	segs := strings.Split(ctx.String(contextSep), contextSep)
	ref := pointer.Root()
	for _, s := range segs[1:] {
		ref = ref.Field(s)
	}
	return ref.String()
}
