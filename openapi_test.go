package openapi_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globality-corp/openapi"
	"github.com/globality-corp/openapi/codec"
	"github.com/globality-corp/openapi/model"
)

func examples(t *testing.T) []string {
	t.Helper()
	paths, err := filepath.Glob("testdata/examples/*")
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	return paths
}

func loadFile(t *testing.T, path string) (*model.Object, []byte) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := openapi.LoadWith(bytes.NewReader(data), openapi.Options{Codec: openapi.CodecFor(path)})
	require.NoError(t, err)
	return doc, data
}

func attr(t *testing.T, o *model.Object, name string) any {
	t.Helper()
	v, err := o.GetAttr(name)
	require.NoError(t, err, name)
	return v
}

func requireType(t *testing.T, want string, v any) {
	t.Helper()
	tv, ok := v.(model.Value)
	require.Truef(t, ok, "want %s, got %T", want, v)
	require.Equal(t, want, tv.Type().Name())
}

func TestLoad_TypedNavigation(t *testing.T) {
	for _, path := range examples(t) {
		t.Run(filepath.Base(path), func(t *testing.T) {
			doc, _ := loadFile(t, path)
			requireType(t, openapi.RootName, doc)

			info := attr(t, doc, "info")
			requireType(t, "Info", info)
			requireType(t, "License", attr(t, info.(*model.Object), "license"))

			consumes := attr(t, doc, "consumes")
			requireType(t, "MediaTypeList", consumes)
			first, err := consumes.(*model.Array).Get(0)
			require.NoError(t, err)
			requireType(t, "MimeType", first)
			assert.Equal(t, "application/json", first.(*model.String).Value())

			paths := attr(t, doc, "paths")
			requireType(t, "Paths", paths)
			keys := paths.(*model.Object).Keys()
			require.NotEmpty(t, keys)
			item, err := paths.(*model.Object).Get(keys[0])
			require.NoError(t, err)
			requireType(t, "PathItem", item)

			snake := attr(t, doc, "base_path")
			camel := attr(t, doc, "basePath")
			assert.NotNil(t, snake)
			assert.Equal(t, snake, camel)

			assert.NoError(t, doc.Validate())
			assert.NoError(t, info.(model.Value).Validate())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, path := range examples(t) {
		t.Run(filepath.Base(path), func(t *testing.T) {
			c := openapi.CodecFor(path)
			doc, data := loadFile(t, path)
			want, err := c.Decode(bytes.NewReader(data))
			require.NoError(t, err)

			// Materialize part of the tree so the dump mixes typed and raw values.
			_, err = doc.Lookup("/info/license")
			require.NoError(t, err)
			_, err = doc.Lookup("/consumes/0")
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, openapi.DumpWith(doc, &buf, openapi.Options{Codec: c}))
			got, err := c.Decode(&buf)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			text, err := openapi.Dumps(doc)
			require.NoError(t, err)
			asJSON, err := codec.JSON().Decode(strings.NewReader(text))
			require.NoError(t, err)
			if diff := cmp.Diff(want, asJSON); diff != "" {
				t.Fatalf("json rendering mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := openapi.Loads(`{"swagger": `)
	require.Error(t, err)

	_, err = openapi.Loads(`[]`)
	assert.True(t, errors.Is(err, model.ErrShapeMismatch))

	_, err = openapi.LoadWith(strings.NewReader("a: [1"), openapi.Options{Codec: codec.YAML()})
	require.Error(t, err)
}

func TestValidate_IncompleteDocuments(t *testing.T) {
	empty, err := openapi.New(openapi.RootName, nil)
	require.NoError(t, err)
	iss, ok := model.AsIssues(empty.Validate())
	require.True(t, ok)
	var missing []string
	for _, is := range iss {
		if is.Code == "required" {
			missing = append(missing, is.Params["property"].(string))
		}
	}
	sort.Strings(missing)
	assert.Equal(t, []string{"info", "paths", "swagger"}, missing)

	info, err := openapi.New("Info", nil)
	require.NoError(t, err)
	var verr *model.ValidationError
	require.True(t, errors.As(info.Validate(), &verr))
	assert.Equal(t, "#/definitions/info", verr.Ref)

	doc, err := openapi.Loads(`{"swagger": "2.0", "info": {"title": "Hello", "version": "1.0.0"}}`)
	require.NoError(t, err)
	iss, ok = model.AsIssues(doc.Validate())
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, "required", iss[0].Code)
	assert.Equal(t, "paths", iss[0].Params["property"])
	assert.Equal(t, "/", iss[0].Path)

	doc.SetAttr("paths", map[string]any{
		"/hello": map[string]any{
			"get": map[string]any{
				"responses": map[string]any{
					"200": map[string]any{"description": "Returns hello"},
				},
			},
		},
	})
	assert.NoError(t, doc.Validate())

	doc.SetAttr("paths", map[string]any{"hello": map[string]any{}})
	iss, ok = model.AsIssues(doc.Validate())
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, "additional_property_not_allowed", iss[0].Code)
	assert.Equal(t, "/paths", iss[0].Path)
	assert.Equal(t, "hello", iss[0].Params["property"])
}

func TestValidate_TypesThenDocument(t *testing.T) {
	info, err := openapi.New("Info", map[string]any{"title": "Hello", "version": "1.0.0"})
	require.NoError(t, err)
	require.NoError(t, info.Validate())

	contact, err := openapi.New("Contact", map[string]any{"email": "api@example.com"})
	require.NoError(t, err)
	require.NoError(t, contact.Validate())

	doc, err := openapi.Loads(`{"swagger": "2.0", "info": {"title": "Hello", "version": "1.0.0"}, "paths": {}}`)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	require.NoError(t, info.Validate())
}

func TestTypeLoads_NonRootFromYAML(t *testing.T) {
	infoType, ok := openapi.Types().Type("Info")
	require.True(t, ok)
	v, err := infoType.Loads("title: Dated\nversion: 2024-01-02\n", codec.YAML())
	require.NoError(t, err)
	requireType(t, "Info", v)
	version, err := v.(*model.Object).GetAttr("version")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", version)
	assert.NoError(t, v.Validate())

	item, ok := openapi.Types().Type("PathItem")
	require.True(t, ok)
	v, err = item.Loads(`{"get": {"responses": {"200": {"description": "ok"}}}}`, nil)
	require.NoError(t, err)
	op, err := v.(*model.Object).Get("get")
	require.NoError(t, err)
	requireType(t, "Operation", op)
	assert.NoError(t, v.Validate())
}

func response(t *testing.T, description, ref string) *model.Object {
	t.Helper()
	r, err := openapi.New("Response", map[string]any{"description": description})
	require.NoError(t, err)
	if ref != "" {
		schema, err := openapi.New("JsonReference", map[string]any{"$ref": "#/definitions/" + ref})
		require.NoError(t, err)
		r.SetAttr("schema", schema)
	}
	return r
}

func TestNew_CRUDConstruction(t *testing.T) {
	sys := openapi.Types()

	info, err := openapi.New("Info", map[string]any{"title": "Example", "version": "1.0.0"})
	require.NoError(t, err)
	mediaTypes, err := sys.New("MediaTypeList", []any{"application/json"})
	require.NoError(t, err)

	doc, err := openapi.New(openapi.RootName, map[string]any{"swagger": "2.0"})
	require.NoError(t, err)
	doc.SetAttr("info", info)
	doc.SetAttr("base_path", "/api")
	doc.SetAttr("consumes", mediaTypes)
	doc.SetAttr("produces", mediaTypes)

	definitions, err := openapi.New("Definitions", map[string]any{
		"Error": map[string]any{
			"required":   []any{"message"},
			"properties": map[string]any{"message": map[string]any{"type": "string"}},
		},
		"Person": map[string]any{
			"required": []any{"id", "name"},
			"properties": map[string]any{
				"id":   map[string]any{"type": "string"},
				"name": map[string]any{"type": "string"},
			},
		},
	})
	require.NoError(t, err)
	doc.SetAttr("definitions", definitions)

	list, err := openapi.New("Operation", map[string]any{
		"description": "Search the collection of people",
		"operationId": "get_person_list",
		"parameters": []any{
			map[string]any{"name": "index", "in": "query", "type": "integer", "description": "Pagination start index"},
		},
	})
	require.NoError(t, err)
	responses, err := openapi.New("Responses", nil)
	require.NoError(t, err)
	responses.Set("200", response(t, "Success", "Person"))
	responses.Set("default", response(t, "Unexpected Error", "Error"))
	list.SetAttr("responses", responses)

	created := response(t, "Created a new person", "Person")
	created.SetAttr("headers", map[string]any{
		"Location": map[string]any{"type": "string", "description": "URI of created person"},
	})
	create, err := openapi.New("Operation", map[string]any{
		"operationId": "create_person",
		"parameters": []any{
			map[string]any{"name": "person", "in": "body", "schema": map[string]any{"$ref": "#/definitions/Person"}},
		},
		"responses": map[string]any{"201": created},
	})
	require.NoError(t, err)

	remove, err := openapi.New("Operation", map[string]any{
		"operationId": "delete_person",
		"parameters": []any{
			map[string]any{"name": "personId", "in": "path", "required": true, "type": "string"},
		},
		"responses": map[string]any{
			"204": response(t, "Success", ""),
			"404": response(t, "Not Found", "Error"),
		},
	})
	require.NoError(t, err)

	collection, err := openapi.New("PathItem", map[string]any{"get": list, "post": create})
	require.NoError(t, err)
	instance, err := openapi.New("PathItem", map[string]any{"delete": remove})
	require.NoError(t, err)
	paths, err := openapi.New("Paths", map[string]any{"/person": collection})
	require.NoError(t, err)
	paths.Set("/person/{personId}", instance)
	doc.SetAttr("paths", paths)

	require.NoError(t, doc.Validate())
	require.NoError(t, collection.Validate())

	got, err := doc.Lookup("/paths/~1person/get")
	require.NoError(t, err)
	assert.Same(t, list, got)

	params, err := doc.Lookup("/paths/~1person/get/parameters")
	require.NoError(t, err)
	requireType(t, "ParametersList", params)

	text, err := openapi.Dumps(doc)
	require.NoError(t, err)
	back, err := openapi.Loads(text)
	require.NoError(t, err)
	assert.NoError(t, back.Validate())
	assert.Equal(t, doc.Dump(), back.Dump())
}

func TestNew_Errors(t *testing.T) {
	_, err := openapi.New("NoSuchType", nil)
	assert.Error(t, err)
	_, err = openapi.New("MimeType", nil)
	assert.Error(t, err)
}

func TestPatch(t *testing.T) {
	doc, _ := loadFile(t, "testdata/examples/petstore.json")

	patched, err := openapi.Patch(doc, []byte(`[
		{"op": "replace", "path": "/info/title", "value": "Patched Petstore"},
		{"op": "add", "path": "/info/x-audience", "value": "internal"}
	]`))
	require.NoError(t, err)
	title, err := patched.Lookup("/info/title")
	require.NoError(t, err)
	assert.Equal(t, "Patched Petstore", title)
	assert.NoError(t, patched.Validate())

	original, err := doc.Lookup("/info/title")
	require.NoError(t, err)
	assert.Equal(t, "Swagger Petstore", original)

	broken, err := openapi.Patch(doc, []byte(`[{"op": "remove", "path": "/paths"}]`))
	require.NoError(t, err)
	assert.Error(t, broken.Validate())

	_, err = openapi.Patch(doc, []byte(`{"op": "remove"}`))
	assert.Error(t, err)
	_, err = openapi.Patch(doc, []byte(`[{"op": "remove", "path": "/missing"}]`))
	assert.Error(t, err)
}

func TestTypes_ConcurrentUse(t *testing.T) {
	doc, data := loadFile(t, "testdata/examples/petstore.json")
	require.NoError(t, doc.Validate())

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := openapi.Load(bytes.NewReader(data))
			if err != nil {
				errs[i] = err
				return
			}
			if openapi.Types() != d.Type().System() {
				errs[i] = errors.New("different type system")
				return
			}
			v, err := d.Lookup("/paths/~1pets/get")
			if err != nil {
				errs[i] = err
				return
			}
			errs[i] = v.(model.Value).Validate()
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Empty(t, openapi.Types().Warnings())
}
