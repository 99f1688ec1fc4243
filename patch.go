package openapi

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-json"

	"github.com/globality-corp/openapi/model"
)

// Patch applies an RFC 6902 JSON Patch to doc and loads the result as a new
// root document. doc is not modified.
func Patch(doc model.Value, patch []byte) (*model.Object, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("openapi: decoding patch: %w", err)
	}
	src, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(src)
	if err != nil {
		return nil, fmt.Errorf("openapi: applying patch: %w", err)
	}
	return Load(bytes.NewReader(out))
}
