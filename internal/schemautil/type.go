// Package schemautil provides the structural hashing and complexity scoring
// pass, plus helpers for the raw JSON-schema "type" keyword.
package schemautil

// NullType is the JSON schema type name that marks a nullable union.
const NullType = "null"

// SchemaTypes returns the type(s) from a raw "type" value, handling both the
// string form and the list form used for nullable unions.
//
// Examples:
//   - {"type": "string"} returns ["string"]
//   - {"type": ["string", "null"]} returns ["string", "null"]
func SchemaTypes(raw any) []string {
	switch t := raw.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}

// PrimaryType returns the first non-null type, or "" when there is none.
func PrimaryType(raw any) string {
	for _, t := range SchemaTypes(raw) {
		if t != NullType {
			return t
		}
	}
	return ""
}

// IncludesNull reports whether the list form names the null type.
func IncludesNull(raw any) bool {
	for _, t := range SchemaTypes(raw) {
		if t == NullType {
			return true
		}
	}
	return false
}
