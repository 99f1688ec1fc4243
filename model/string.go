package model

// String is a schema-constrained string instance.
type String struct {
	typ   *Type
	value string
}

func (s *String) Type() *Type { return s.typ }

func (s *String) Value() string { return s.value }

func (s *String) String() string { return s.value }

func (s *String) Validate() error { return s.typ.validate(s) }

func (s *String) Dump() any { return s.value }

func (s *String) MarshalJSON() ([]byte, error) { return marshalPlain(s) }

func (s *String) MarshalYAML() (any, error) { return s.value, nil }
