package issues

import (
	"testing"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/severity"
	"github.com/stretchr/testify/assert"
)

func TestIssue_String(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name: "warning",
			issue: Issue{
				Code:     CodeSingleUseReference,
				Path:     "network",
				Message:  "component referenced 1 time(s)",
				Severity: severity.SeverityWarning,
			},
			want: "⚠ [single-use-reference] network: component referenced 1 time(s)",
		},
		{
			name: "with context",
			issue: Issue{
				Code:     CodeDescriptionOverwritten,
				Path:     "server",
				Message:  "pinned description replaces merged text",
				Severity: severity.SeverityWarning,
				Context:  "Server | Servers",
			},
			want: "⚠ [description-overwritten] server: pinned description replaces merged text\n    Context: Server | Servers",
		},
		{
			name:  "info",
			issue: Issue{Code: CodeUnknownFieldDropped, Path: "a/b", Message: "minimum", Severity: severity.SeverityInfo},
			want:  "ℹ [unknown-field-dropped] a/b: minimum",
		},
		{
			name:  "error",
			issue: Issue{Code: CodeExtractionFailed, Path: "a", Message: "no name", Severity: severity.SeverityError},
			want:  "✗ [extraction-failed] a: no name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}

func TestCount(t *testing.T) {
	list := []Issue{
		{Severity: severity.SeverityInfo},
		{Severity: severity.SeverityWarning},
		{Severity: severity.SeverityWarning},
	}
	assert.Equal(t, 3, Count(list, severity.SeverityInfo))
	assert.Equal(t, 2, Count(list, severity.SeverityWarning))
	assert.Equal(t, 0, Count(list, severity.SeverityError))
}
