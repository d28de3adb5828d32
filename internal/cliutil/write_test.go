package cliutil_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MaximilianKoestler/hcloud-openapi/internal/cliutil"
)

func TestWritef(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{name: "single arg", format: "Mode: %s", args: []any{"fresh"}, want: "Mode: fresh"},
		{name: "no args", format: "done", want: "done"},
		{name: "mixed args", format: "%s: %d (%v)", args: []any{"Warnings", 2, true}, want: "Warnings: 2 (true)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cliutil.Writef(&buf, tt.format, tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestWritef_WriteError(t *testing.T) {
	assert.NotPanics(t, func() {
		cliutil.Writef(failingWriter{}, "lost")
	})
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 fix", cliutil.Count(1, "fix"))
	assert.Equal(t, "0 fixes", cliutil.Count(0, "fix"))
	assert.Equal(t, "2 files", cliutil.Count(2, "file"))
	assert.Equal(t, "3 entries", cliutil.Count(3, "entry"))
}
