package model

import (
	"sort"

	"github.com/globality-corp/openapi/naming"
)

// Object is a mapping-shaped instance. Its backing map holds, per key, either
// the raw decoded value or the typed container materialized from it on first
// read.
type Object struct {
	typ    *Type
	fields map[string]any
}

func (o *Object) Type() *Type { return o.typ }

// Get returns the value at key. A raw value governed by a reference to a
// generated type is wrapped on first read and the wrapper replaces the raw
// value in its slot, so later reads return the identical instance.
func (o *Object) Get(key string) (any, error) {
	v, ok := o.fields[key]
	if !ok {
		return nil, &KeyError{Type: o.typ.name, Key: key}
	}
	if _, typed := v.(Value); typed {
		return v, nil
	}
	if w, ok := o.typ.materialize(o.typ.propertySchema(key), v); ok {
		o.fields[key] = w
		return w, nil
	}
	return v, nil
}

// GetAttr reads the key that the attribute name translates to.
func (o *Object) GetAttr(name string) (any, error) {
	key := naming.KeyName(name)
	v, err := o.Get(key)
	if err != nil {
		return nil, &AttributeError{Type: o.typ.name, Name: name, Key: key}
	}
	return v, nil
}

// SetAttr stores v under the key the attribute name translates to. The value
// is stored as given.
func (o *Object) SetAttr(name string, v any) {
	o.Set(naming.KeyName(name), v)
}

// Set stores v at key as given. Raw structures are wrapped lazily on the next
// read.
func (o *Object) Set(key string, v any) {
	o.fields[key] = v
}

func (o *Object) Has(key string) bool {
	_, ok := o.fields[key]
	return ok
}

func (o *Object) Delete(key string) {
	delete(o.fields, key)
}

// Keys returns the keys in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.fields))
	for k := range o.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (o *Object) Len() int { return len(o.fields) }

// PropertySchema returns the schema fragment governing key: the plain
// properties entry, else the first patternProperties entry whose pattern
// matches, else additionalProperties. The result is true when nothing
// constrains the key.
func (o *Object) PropertySchema(key string) any {
	return o.typ.propertySchema(key)
}

// Lookup resolves a JSON Pointer relative to o, materializing containers along
// the way.
func (o *Object) Lookup(ptr string) (any, error) {
	return Resolve(o, ptr)
}

func (o *Object) Validate() error { return o.typ.validate(o) }

func (o *Object) Dump() any { return plainMap(o.fields) }

func (o *Object) MarshalJSON() ([]byte, error) { return marshalPlain(o) }

func (o *Object) MarshalYAML() (any, error) { return o.Dump(), nil }
