// Package issues provides the diagnostic record emitted by the
// canonicalization pipeline.
package issues

import (
	"fmt"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/severity"
)

// Code classifies a diagnostic.
type Code string

const (
	// CodeItemsListCollapsed: an array's items was a list and was reduced to
	// its first alternative.
	CodeItemsListCollapsed Code = "items-list-collapsed"
	// CodeForbiddenFieldRemoved: a disallowed legacy keyword was deleted.
	CodeForbiddenFieldRemoved Code = "forbidden-field-removed"
	// CodeUnknownFieldDropped: a keyword outside the supported model was ignored.
	CodeUnknownFieldDropped Code = "unknown-field-dropped"
	// CodeArrayWithoutItems: an array had no items and was scored as a leaf.
	CodeArrayWithoutItems Code = "array-without-items"
	// CodeSingleUseReference: an extracted component is referenced at most once.
	CodeSingleUseReference Code = "single-use-reference"
	// CodeDescriptionOverwritten: a pinned description replaced a merged one.
	CodeDescriptionOverwritten Code = "description-overwritten"
	// CodeStalePin: a persisted entry matched no current location.
	CodeStalePin Code = "stale-pin"
	// CodeExtractionFailed: the extraction invariant was violated.
	CodeExtractionFailed Code = "extraction-failed"
)

// Issue is a single diagnostic.
type Issue struct {
	// Code classifies the diagnostic
	Code Code
	// Path is the location the diagnostic refers to, segments joined by "/"
	Path string
	// Message is a human-readable description
	Message string
	// Severity indicates the severity level
	Severity severity.Severity
	// Context carries discarded text or hints (optional)
	Context string
}

// String returns a formatted string representation of the issue.
// Uses "✗" for errors, "⚠" for warnings and "ℹ" for info.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	result := fmt.Sprintf("%s [%s] %s: %s", symbol, i.Code, i.Path, i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// Count returns how many issues have at least the given severity.
func Count(list []Issue, min severity.Severity) int {
	n := 0
	for _, i := range list {
		if i.Severity.AtLeast(min) {
			n++
		}
	}
	return n
}
