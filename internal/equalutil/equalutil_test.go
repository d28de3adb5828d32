package equalutil_test

import (
	"testing"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/equalutil"
	"github.com/stretchr/testify/assert"
)

func TestEqualStringSets(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want bool
	}{
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "nil and empty", a: nil, b: []string{}, want: true},
		{name: "same order", a: []string{"id", "name"}, b: []string{"id", "name"}, want: true},
		{name: "different order", a: []string{"name", "id"}, b: []string{"id", "name"}, want: true},
		{name: "duplicates ignored", a: []string{"id", "id"}, b: []string{"id"}, want: true},
		{name: "different members", a: []string{"id"}, b: []string{"name"}, want: false},
		{name: "subset", a: []string{"id"}, b: []string{"id", "name"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualStringSets(tt.a, tt.b))
		})
	}
}

func TestEqualOptionalSlices(t *testing.T) {
	assert.True(t, equalutil.EqualOptionalSlices[string](nil, nil))
	assert.False(t, equalutil.EqualOptionalSlices(nil, []string{}))
	assert.True(t, equalutil.EqualOptionalSlices([]string{"a", "b"}, []string{"a", "b"}))
	assert.False(t, equalutil.EqualOptionalSlices([]string{"b", "a"}, []string{"a", "b"}))
}
