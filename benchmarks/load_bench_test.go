package benchmarks_test

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/globality-corp/openapi"
	"github.com/globality-corp/openapi/codec"
	"github.com/globality-corp/openapi/model"
)

// ---- Helpers ----

func readExample(tb testing.TB, name string) []byte {
	tb.Helper()
	data, err := os.ReadFile("../testdata/examples/" + name)
	if err != nil {
		tb.Fatalf("read %s: %v", name, err)
	}
	return data
}

// generatePaths returns a valid document with n path items, each holding a
// get operation with one query parameter and two responses.
func generatePaths(n int) []byte {
	var buf bytes.Buffer
	buf.Grow(n * 256)
	buf.WriteString(`{"swagger":"2.0","info":{"title":"big","version":"1"},"paths":{`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `"/r%d":{"get":{"operationId":"op%d",`, i, i)
		buf.WriteString(`"parameters":[{"name":"q","in":"query","type":"string"}],`)
		buf.WriteString(`"responses":{"200":{"description":"ok"},"default":{"description":"error"}}}}`)
	}
	buf.WriteString(`}}`)
	return buf.Bytes()
}

func load(tb testing.TB, data []byte) *model.Object {
	tb.Helper()
	doc, err := openapi.Load(bytes.NewReader(data))
	if err != nil {
		tb.Fatal(err)
	}
	return doc
}

// ---- Decode + wrap ----

func Benchmark_Load_Petstore_JSON(b *testing.B) {
	data := readExample(b, "petstore.json")
	openapi.Types()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		load(b, data)
	}
}

func Benchmark_Load_Uber_YAML(b *testing.B) {
	data := readExample(b, "uber.yaml")
	opts := openapi.Options{Codec: codec.YAML()}
	openapi.Types()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := openapi.LoadWith(bytes.NewReader(data), opts); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Lazy traversal ----

func Benchmark_Traverse_FirstAccess(b *testing.B) {
	data := generatePaths(200)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		doc := load(b, data)
		b.StartTimer()
		for j := 0; j < 200; j++ {
			if _, err := doc.Lookup(fmt.Sprintf("/paths/~1r%d/get/responses", j)); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func Benchmark_Traverse_Memoized(b *testing.B) {
	doc := load(b, generatePaths(200))
	if _, err := doc.Lookup("/paths/~1r100/get/responses"); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := doc.Lookup("/paths/~1r100/get/responses"); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Validation ----

func Benchmark_Validate_Document(b *testing.B) {
	for _, n := range []int{1, 100} {
		b.Run(fmt.Sprintf("paths=%d", n), func(b *testing.B) {
			doc := load(b, generatePaths(n))
			if err := doc.Validate(); err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := doc.Validate(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func Benchmark_Validate_SubNode(b *testing.B) {
	doc := load(b, generatePaths(100))
	op, err := doc.Lookup("/paths/~1r50/get")
	if err != nil {
		b.Fatal(err)
	}
	v := op.(model.Value)
	if err := v.Validate(); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := v.Validate(); err != nil {
			b.Fatal(err)
		}
	}
}

// ---- Encode ----

func Benchmark_Dumps(b *testing.B) {
	doc := load(b, generatePaths(100))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := openapi.Dumps(doc); err != nil {
			b.Fatal(err)
		}
	}
}
