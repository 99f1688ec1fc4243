package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefString(t *testing.T) {
	assert.Equal(t, "/", Root().String())
	assert.Equal(t, "#", Root().Fragment())

	r := Root().Field("paths").Field("/pets/{id}").Field("get").Index(2)
	assert.Equal(t, "/paths/~1pets~1{id}/get/2", r.String())
	assert.Equal(t, "#/definitions/info", Root().Field("definitions").Field("info").Fragment())
}

func TestRefIsImmutable(t *testing.T) {
	base := Root().Field("a")
	left := base.Field("b")
	right := base.Field("c")
	assert.Equal(t, "/a/b", left.String())
	assert.Equal(t, "/a/c", right.String())
	assert.Equal(t, "/a", base.String())
}

func TestSplit(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"/", nil},
		{"#", nil},
		{"/info/title", []string{"info", "title"}},
		{"#/definitions/info", []string{"definitions", "info"}},
		{"/paths/~1pets~1{id}", []string{"paths", "/pets/{id}"}},
		{"/a~0b", []string{"a~b"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Split(c.in), c.in)
	}
}
