package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "resources/schema_types.json",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "parse error in resources/schema_types.json at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrReference) {
			t.Error("ParseError should not match ErrReference")
		}
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("circular message", func(t *testing.T) {
		err := &ReferenceError{Ref: "server_response/server", IsCircular: true}
		if err.Error() != "circular reference: server_response/server" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches circular sentinel only when flagged", func(t *testing.T) {
		circular := &ReferenceError{IsCircular: true}
		plain := &ReferenceError{Message: "dangling"}

		if !errors.Is(circular, ErrCircularReference) || !errors.Is(circular, ErrReference) {
			t.Error("circular ReferenceError should match both sentinels")
		}
		if errors.Is(plain, ErrCircularReference) {
			t.Error("plain ReferenceError should not match ErrCircularReference")
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "nesting_depth", Limit: 100, Actual: 101}
	if err.Error() != "resource limit exceeded: nesting_depth (limit: 100, actual: 101)" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrResourceLimit) {
		t.Error("ResourceLimitError should match ErrResourceLimit")
	}
}

func TestExtractionError(t *testing.T) {
	err := &ExtractionError{Path: "list_servers_response/servers", Hash: "00ff", Message: "no component name allocated"}
	if err.Error() != "extraction error at list_servers_response/servers (hash 00ff): no component name allocated" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrExtraction) {
		t.Error("ExtractionError should match ErrExtraction")
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("toml: line 3")
	err := &ConfigError{Option: "thresholds.min_count", Value: 0, Message: "must be positive", Cause: cause}
	if err.Error() != "configuration error for thresholds.min_count (value: 0): must be positive: toml: line 3" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigError should match ErrConfig")
	}
}

func TestErrorChaining(t *testing.T) {
	parseErr := &ParseError{Path: "schema_types.json", Message: "bad json"}
	wrapped := fmt.Errorf("loading pins: %w", parseErr)

	var target *ParseError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should find ParseError through wrapping")
	}
	if target.Path != "schema_types.json" {
		t.Errorf("unexpected path: %s", target.Path)
	}
	if !errors.Is(wrapped, ErrParse) {
		t.Error("wrapped ParseError should match ErrParse")
	}
}
