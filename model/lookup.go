package model

import (
	"fmt"
	"strconv"

	"github.com/globality-corp/openapi/internal/pointer"
)

// Resolve walks the JSON Pointer ptr from v. Containers are traversed with
// Get, so typed values are materialized along the path; raw maps and slices
// below an untyped slot are walked as they are.
func Resolve(v any, ptr string) (any, error) {
	cur := v
	at := pointer.Root()
	for _, tok := range pointer.Split(ptr) {
		var err error
		switch x := cur.(type) {
		case *Object:
			cur, err = x.Get(tok)
			at = at.Field(tok)
		case map[string]any:
			var ok bool
			if cur, ok = x[tok]; !ok {
				err = &KeyError{Type: "object", Key: tok}
			}
			at = at.Field(tok)
		case *Array:
			at = at.Field(tok)
			var i int
			if i, err = index(tok); err == nil {
				cur, err = x.Get(i)
			}
		case []any:
			at = at.Field(tok)
			var i int
			if i, err = index(tok); err == nil {
				if i >= len(x) {
					err = &IndexError{Type: "array", Index: i, Len: len(x)}
				} else {
					cur = x[i]
				}
			}
		default:
			return nil, fmt.Errorf("model: cannot descend into %T at %s", cur, at)
		}
		if err != nil {
			return nil, fmt.Errorf("model: resolving %q at %s: %w", ptr, at, err)
		}
	}
	return cur, nil
}

func index(tok string) (int, error) {
	i, err := strconv.Atoi(tok)
	if err != nil || i < 0 || (len(tok) > 1 && tok[0] == '0') {
		return 0, fmt.Errorf("invalid array index %q: %w", tok, ErrIndexOutOfRange)
	}
	return i, nil
}
