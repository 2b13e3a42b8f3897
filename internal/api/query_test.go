package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	var nilInt *int64
	page, search := uint(3), "bolt"
	cases := []struct {
		name   string
		params Params
		want   string
	}{
		{"nil params", nil, ""},
		{"empty values omitted", Params{"category": "", "search": "foo"}, "?search=foo"},
		{"nil omitted", Params{"supplier": nil, "category": nilInt}, ""},
		{"sorted and escaped", Params{"search": "blue widget", "limit": 20, "offset": 40}, "?limit=20&offset=40&search=blue+widget"},
		{"zero kept", Params{"offset": 0}, "?offset=0"},
		{"any nil pointer omitted", Params{"a": (*uint)(nil), "b": (*float64)(nil), "c": (*bool)(nil), "d": "x"}, "?d=x"},
		{"pointers dereferenced", Params{"page": &page, "search": &search}, "?page=3&search=bolt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Query(tc.params))
		})
	}
}
