// Package schemas embeds the Swagger 2.0 JSON Schema document.
package schemas

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/globality-corp/openapi/codec"
)

//go:embed v2.0/schema.json
var swaggerV2 []byte

// SwaggerJSON returns a copy of the raw Swagger 2.0 schema text.
func SwaggerJSON() []byte {
	return bytes.Clone(swaggerV2)
}

// Swagger decodes the Swagger 2.0 schema. Every call returns a fresh tree.
func Swagger() (map[string]any, error) {
	v, err := codec.JSON(codec.JSONDuplicates(codec.DuplicateError)).Decode(bytes.NewReader(swaggerV2))
	if err != nil {
		return nil, fmt.Errorf("schemas: decoding swagger 2.0 schema: %w", err)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemas: swagger 2.0 schema is %T, not an object", v)
	}
	return doc, nil
}
