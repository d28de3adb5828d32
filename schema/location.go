package schema

import "strings"

// LocationSeparator joins location segments in their string form. It matches
// the path encoding used by persisted naming files.
const LocationSeparator = "/"

// Location identifies a node by its root id followed by the property names
// leading to it. Array items do not add a segment: the items of a property
// share that property's location.
type Location []string

// ParseLocation splits s on LocationSeparator.
func ParseLocation(s string) Location {
	if s == "" {
		return nil
	}
	return strings.Split(s, LocationSeparator)
}

// String joins the segments with LocationSeparator.
func (l Location) String() string {
	return strings.Join(l, LocationSeparator)
}

// Depth returns the number of segments.
func (l Location) Depth() int { return len(l) }

// Root returns the first segment, the registry id.
func (l Location) Root() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// Last returns the final segment.
func (l Location) Last() string {
	if len(l) == 0 {
		return ""
	}
	return l[len(l)-1]
}

// Equal reports whether both locations have identical segments.
func (l Location) Equal(other Location) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (l Location) Clone() Location {
	if l == nil {
		return nil
	}
	out := make(Location, len(l))
	copy(out, l)
	return out
}
