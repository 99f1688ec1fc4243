package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched with errors.Is.
var (
	ErrKeyNotFound       = errors.New("key not found")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrShapeMismatch     = errors.New("value does not match type shape")
)

// KeyError reports a missing key on an object instance.
type KeyError struct {
	Type string
	Key  string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("model: %s has no key %q", e.Type, e.Key)
}

func (e *KeyError) Unwrap() error { return ErrKeyNotFound }

// AttributeError reports a missing attribute. Key is the translated wire key
// that was looked up.
type AttributeError struct {
	Type string
	Name string
	Key  string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("model: %s has no attribute %q (key %q)", e.Type, e.Name, e.Key)
}

func (e *AttributeError) Unwrap() error { return ErrAttributeNotFound }

// IndexError reports an index outside an array instance.
type IndexError struct {
	Type  string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("model: index %d out of range for %s of length %d", e.Index, e.Type, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// Issue is a single schema violation.
type Issue struct {
	Path    string // JSON Pointer of the offending instance location (for example: /info/title).
	Code    string // Validator error type (for example: required, enum, number_one_of).
	Message string
	Value   any            // Offending value as seen by the validator.
	Params  map[string]any // Structured details reported by the validator.
}

// Issues is a collection of schema violations that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s: %s", it.Code, it.Path, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// ValidationError is returned by Validate when an instance does not conform to
// the schema fragment of its type.
type ValidationError struct {
	Type   string
	Ref    string
	Issues Issues
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model: %s is invalid: %s", e.Type, e.Issues.Error())
}

func (e *ValidationError) Unwrap() error { return e.Issues }

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
