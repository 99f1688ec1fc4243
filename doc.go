// Package openapi loads, navigates, validates and writes Swagger 2.0 documents
// through a typed object model generated at startup from the Swagger 2.0 JSON
// Schema.
//
// A loaded document is a *model.Object of the root type Swagger. Nested values
// come back typed on first access:
//
//	doc, err := openapi.Loads(text)
//	info, _ := doc.GetAttr("info")               // *model.Object of type Info
//	base, _ := doc.GetAttr("base_path")          // same as doc.Get("basePath")
//	err = info.(*model.Object).Validate()        // validates the sub-node alone
//	out, _ := openapi.Dumps(doc)
//
// The type system behind Types is generated once per process and is safe for
// concurrent use. Documents are not.
package openapi
