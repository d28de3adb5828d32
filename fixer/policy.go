package fixer

import "slices"

// DefaultLabelKeyPattern constrains label map keys.
const DefaultLabelKeyPattern = `^(()|[a-z0-9A-Z]|([a-z0-9A-Z][a-z0-9A-Z\._-]{0,61}[a-z0-9A-Z]))$`

// LegacyLabelKey is the placeholder property some label objects carry instead
// of being declared as a map.
const LegacyLabelKey = "labelkey"

// Policy holds the tables the normalization rules consult.
type Policy struct {
	// FloatAllowList names the properties that keep the number type.
	FloatAllowList []string
	// WideCounters names integer properties that need a 64-bit format.
	WideCounters []string
	// DeprecatedField is the property name whose boolean is made nullable.
	DeprecatedField string
	// LabelsField is the property name rewritten into a string map.
	LabelsField string
	// LabelKeyPattern is the pattern placed on label map values.
	LabelKeyPattern string
}

// DefaultPolicy returns the tables used for the Hetzner Cloud API.
func DefaultPolicy() Policy {
	return Policy{
		FloatAllowList: []string{
			"disk_size",
			"disk",
			"image_size",
			"latitude",
			"longitude",
			"memory",
			"progress",
			"size",
		},
		WideCounters: []string{
			"included_traffic",
			"ingoing_traffic",
			"outgoing_traffic",
		},
		DeprecatedField: "deprecated",
		LabelsField:     "labels",
		LabelKeyPattern: DefaultLabelKeyPattern,
	}
}

func (p Policy) allowsFloat(name string) bool {
	return slices.Contains(p.FloatAllowList, name)
}

func (p Policy) isWideCounter(name string) bool {
	return slices.Contains(p.WideCounters, name)
}
