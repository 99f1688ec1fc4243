package model

// Array is a sequence-shaped instance. Each slot holds the raw decoded value
// or the container materialized from it on first read.
type Array struct {
	typ   *Type
	items []any
}

func (a *Array) Type() *Type { return a.typ }

// Get returns the element at i, materializing it the way Object.Get does
// using the items fragment.
func (a *Array) Get(i int) (any, error) {
	if i < 0 || i >= len(a.items) {
		return nil, &IndexError{Type: a.typ.name, Index: i, Len: len(a.items)}
	}
	v := a.items[i]
	if _, typed := v.(Value); typed {
		return v, nil
	}
	if w, ok := a.typ.materialize(a.typ.itemSchema(i), v); ok {
		a.items[i] = w
		return w, nil
	}
	return v, nil
}

// Set replaces the element at i.
func (a *Array) Set(i int, v any) error {
	if i < 0 || i >= len(a.items) {
		return &IndexError{Type: a.typ.name, Index: i, Len: len(a.items)}
	}
	a.items[i] = v
	return nil
}

func (a *Array) Append(v ...any) {
	a.items = append(a.items, v...)
}

func (a *Array) Len() int { return len(a.items) }

func (a *Array) Validate() error { return a.typ.validate(a) }

func (a *Array) Dump() any { return plainSlice(a.items) }

func (a *Array) MarshalJSON() ([]byte, error) { return marshalPlain(a) }

func (a *Array) MarshalYAML() (any, error) { return a.Dump(), nil }
