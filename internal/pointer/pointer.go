// Package pointer builds and splits RFC 6901 JSON Pointers.
package pointer

import (
	"strconv"
	"strings"
)

// Ref is an immutable JSON Pointer under construction. The zero value is the
// document root.
type Ref struct {
	parts []string
}

// Root returns the pointer to the document root.
func Root() Ref { return Ref{} }

// Field appends an object member to the pointer.
func (r Ref) Field(name string) Ref {
	return Ref{parts: append(append([]string{}, r.parts...), Escape(name))}
}

// Index appends an array index to the pointer.
func (r Ref) Index(i int) Ref {
	return Ref{parts: append(append([]string{}, r.parts...), strconv.Itoa(i))}
}

// String renders the pointer. The root renders as "/".
func (r Ref) String() string {
	if len(r.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(r.parts, "/")
}

// Fragment renders the pointer as a URI fragment ("#", "#/definitions/info").
func (r Ref) Fragment() string {
	if len(r.parts) == 0 {
		return "#"
	}
	return "#/" + strings.Join(r.parts, "/")
}

// Escape encodes '~' and '/' in a reference token.
func Escape(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
}

// Unescape reverses Escape.
func Unescape(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}

// Split returns the unescaped reference tokens of p. Both "" and "/" address
// the root; a leading '#' is accepted so URI fragments can be passed as is.
func Split(p string) []string {
	p = strings.TrimPrefix(p, "#")
	if p == "" || p == "/" {
		return nil
	}
	p = strings.TrimPrefix(p, "/")
	raw := strings.Split(p, "/")
	out := make([]string, len(raw))
	for i, t := range raw {
		out[i] = Unescape(t)
	}
	return out
}
