// Package severity provides the severity levels attached to pipeline
// diagnostics.
//
// Levels are ordered from least to most severe: Info < Warning < Error.
// Only Info and Warning are emitted by a successful run; Error marks the
// diagnostic recorded for a fatal condition just before the run aborts.
package severity

// Severity indicates how much attention a diagnostic deserves.
type Severity int

const (
	// SeverityInfo marks informational notices such as dropped unknown keywords.
	SeverityInfo Severity = iota

	// SeverityWarning marks lossy rewrites and policy signals, for example a
	// component that ended up referenced only once.
	SeverityWarning

	// SeverityError marks the condition that aborted a run.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s is as severe as min or more.
func (s Severity) AtLeast(min Severity) bool {
	return s >= min
}
