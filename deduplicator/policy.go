package deduplicator

import (
	"fmt"
	"strings"
)

// Mode selects where component names come from.
type Mode int

const (
	// ModeFresh derives names from the locations of each shape.
	ModeFresh Mode = iota
	// ModePinned takes names from a naming file and extracts nothing else.
	ModePinned
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeFresh:
		return "fresh"
	case ModePinned:
		return "pinned"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// SingleUsePolicy controls how components referenced at most once are
// reported. Extraction is never undone either way.
type SingleUsePolicy int

const (
	// SingleUseWarn reports every reference target used at most once.
	SingleUseWarn SingleUsePolicy = iota
	// SingleUseIgnore suppresses the report.
	SingleUseIgnore
)

// String returns a string representation of the policy.
func (p SingleUsePolicy) String() string {
	switch p {
	case SingleUseWarn:
		return "warn"
	case SingleUseIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("SingleUsePolicy(%d)", p)
	}
}

// ParseSingleUsePolicy converts "warn" or "ignore" into a policy.
func ParseSingleUsePolicy(s string) (SingleUsePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn":
		return SingleUseWarn, nil
	case "ignore":
		return SingleUseIgnore, nil
	}
	return SingleUseWarn, fmt.Errorf("unknown single-use policy %q (want warn or ignore)", s)
}

// Thresholds are the minimum values an occurrence needs for extraction
// without a pin.
type Thresholds struct {
	// MinCount is the minimum number of occurrences.
	MinCount int
	// MinComplexity is the minimum number of nodes in the shape.
	MinComplexity int
	// MinDirectChildren is the minimum number of properties.
	MinDirectChildren int
}

// DefaultThresholds extracts shapes seen at least twice with at least two
// properties.
func DefaultThresholds() Thresholds {
	return Thresholds{MinCount: 2, MinComplexity: 2, MinDirectChildren: 2}
}

func (t Thresholds) validate() error {
	if t.MinCount < 1 || t.MinComplexity < 1 || t.MinDirectChildren < 0 {
		return fmt.Errorf("thresholds out of range: count %d, complexity %d, direct children %d",
			t.MinCount, t.MinComplexity, t.MinDirectChildren)
	}
	return nil
}
