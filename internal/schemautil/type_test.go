package schemautil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaTypes(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		types    []string
		primary  string
		nullable bool
	}{
		{"string form", "integer", []string{"integer"}, "integer", false},
		{"empty string", "", nil, "", false},
		{"nullable list", []any{"string", "null"}, []string{"string", "null"}, "string", true},
		{"null first", []any{"null", "object"}, []string{"null", "object"}, "object", true},
		{"typed list", []string{"boolean"}, []string{"boolean"}, "boolean", false},
		{"missing", nil, nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.types, SchemaTypes(tt.raw))
			assert.Equal(t, tt.primary, PrimaryType(tt.raw))
			assert.Equal(t, tt.nullable, IncludesNull(tt.raw))
		})
	}
}
