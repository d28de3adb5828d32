// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/naming"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Count formats n followed by noun in the matching number, e.g. "1 fix" or
// "3 fixes".
func Count(n int, noun string) string {
	return fmt.Sprintf("%d %s", n, naming.Plural(noun, n))
}
