package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/globality-corp/openapi/naming"
	"github.com/globality-corp/openapi/schemas"
)

func TestAttributeName(t *testing.T) {
	cases := map[string]string{
		"basePath":            "base_path",
		"swagger":             "swagger",
		"operationId":         "operation_id",
		"termsOfService":      "terms_of_service",
		"securityDefinitions": "security_definitions",
		"$ref":                "$ref",
		"x-internal-id":       "x_internal_id",
		"XMLName":             "xml_name",
		"oauth2Scopes":        "oauth2_scopes",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, naming.AttributeName(in), in)
	}
}

func TestKeyName(t *testing.T) {
	cases := map[string]string{
		"base_path":        "basePath",
		"basePath":         "basePath",
		"swagger":          "swagger",
		"terms_of_service": "termsOfService",
		"$ref":             "$ref",
		"x_foo":            "xFoo",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, naming.KeyName(in), in)
	}
}

func TestTypeNameAndDefinitionRef(t *testing.T) {
	cases := []struct {
		definition string
		typeName   string
	}{
		{"info", "Info"},
		{"pathItem", "PathItem"},
		{"jsonReference", "JsonReference"},
		{"oauth2ImplicitSecurity", "Oauth2ImplicitSecurity"},
		{"mediaTypeList", "MediaTypeList"},
	}
	for _, c := range cases {
		assert.Equal(t, c.typeName, naming.TypeName(c.definition))
		assert.Equal(t, "#/definitions/"+c.definition, naming.DefinitionRef(c.typeName))
	}
}

func TestDefinitionName(t *testing.T) {
	name, ok := naming.DefinitionName("#/definitions/pathItem")
	assert.True(t, ok)
	assert.Equal(t, "pathItem", name)

	_, ok = naming.DefinitionName("#/properties/info")
	assert.False(t, ok)
	_, ok = naming.DefinitionName("http://json-schema.org/draft-04/schema#/properties/title")
	assert.False(t, ok)
}

// Every property name and definition name of the embedded Swagger schema must
// survive translation in both directions.
func TestRoundTripOverSwaggerSchema(t *testing.T) {
	doc, err := schemas.Swagger()
	if err != nil {
		t.Fatal(err)
	}
	keys := map[string]struct{}{}
	collectPropertyNames(doc, keys)
	assert.NotEmpty(t, keys)
	for k := range keys {
		assert.Equal(t, k, naming.KeyName(naming.AttributeName(k)), "key %q", k)
	}

	defs, _ := doc["definitions"].(map[string]any)
	for name := range defs {
		assert.Equal(t, naming.DefinitionsPrefix+name, naming.DefinitionRef(naming.TypeName(name)), "definition %q", name)
	}
}

func collectPropertyNames(node any, into map[string]struct{}) {
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			if props, ok := v.(map[string]any); ok && k == "properties" {
				for name := range props {
					into[name] = struct{}{}
				}
			}
			collectPropertyNames(v, into)
		}
	case []any:
		for _, v := range n {
			collectPropertyNames(v, into)
		}
	}
}
