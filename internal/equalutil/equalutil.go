// Package equalutil provides small comparison helpers shared by the
// structural equivalence checks.
package equalutil

import "slices"

// EqualStringSets reports whether a and b contain the same strings,
// ignoring order and duplicates. A nil and an empty slice are equal.
func EqualStringSets(a, b []string) bool {
	return slices.Equal(normalize(a), normalize(b))
}

// EqualOptionalSlices compares two slices where nil means "keyword absent":
// nil only equals nil, otherwise element order matters.
func EqualOptionalSlices[T comparable](a, b []T) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.Equal(a, b)
}

func normalize(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}
