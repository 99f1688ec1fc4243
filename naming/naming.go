// Package naming translates between wire-format keys, attribute names and
// generated type names.
//
//	AttributeName("basePath")   == "base_path"
//	KeyName("base_path")        == "basePath"
//	TypeName("pathItem")        == "PathItem"
//	DefinitionRef("PathItem")   == "#/definitions/pathItem"
//
// KeyName(AttributeName(k)) == k holds for lower camel case keys such as the
// property names of the Swagger 2.0 schema. It is not guaranteed for arbitrary
// strings (for example "x-foo" comes back as "xFoo").
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefinitionsPrefix is the reference prefix of schema definitions.
const DefinitionsPrefix = "#/definitions/"

// AttributeName converts a wire key into a snake_case attribute name.
func AttributeName(key string) string {
	tokens := tokenize(key)
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}
	return strings.Join(tokens, "_")
}

// KeyName converts an attribute name back into a lower camel case wire key.
// Input that is already camel case is returned unchanged.
func KeyName(attr string) string {
	return lowerFirst(camelize(attr))
}

// TypeName converts a schema definition name into a type name.
func TypeName(definition string) string {
	return upperFirst(camelize(definition))
}

// DefinitionRef converts a type name into its reference identifier.
func DefinitionRef(typeName string) string {
	return DefinitionsPrefix + lowerFirst(camelize(typeName))
}

// DefinitionName extracts the definition name from a reference identifier. It
// reports false when ref does not point into the definitions section.
func DefinitionName(ref string) (string, bool) {
	if !strings.HasPrefix(ref, DefinitionsPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, DefinitionsPrefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// camelize drops underscores and upper-cases the rune following each one.
func camelize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upper := false
	for i, r := range s {
		if r == '_' && i+1 < len(s) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// tokenize splits a camelCase, PascalCase or separated identifier into words.
// Examples:
//   - "basePath" -> ["base", "Path"]
//   - "XMLName" -> ["XML", "Name"]
//   - "oauth2Scopes" -> ["oauth2", "Scopes"]
//   - "x-foo" -> ["x", "foo"]
func tokenize(s string) []string {
	if s == "" {
		return nil
	}
	var tokens []string
	var current strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}
		if i > 0 && startsToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether a new word begins at runes[i].
func startsToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}
	// lower or digit to upper: "basePath", "oauth2Scopes"
	if !unicode.IsUpper(prev) {
		return true
	}
	// end of an acronym: "XMLName" splits before 'N'
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
