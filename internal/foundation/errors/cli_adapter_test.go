package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

type customError struct {
	msg string
}

func (e *customError) Error() string { return e.msg }

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "config", err: ConfigError("root missing").Build(), expected: 7},
		{name: "filesystem", err: FileSystemError("unreadable").Build(), expected: 11},
		{name: "metadata", err: MetadataError("bad date").Build(), expected: 11},
		{name: "include", err: IncludeError("missing include").Build(), expected: 11},
		{name: "wrapped include", err: fmt.Errorf("page: %w", IncludeError("missing").Build()), expected: 11},
		{name: "internal", err: InternalError("bug").Build(), expected: 10},
		{name: "unclassified error", err: &customError{msg: "unknown error"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	err := IncludeError("include target not found").
		WithContext("template", "/site/post.sgpage").
		WithContext("include", "/nav.html").
		Build()

	msg := adapter.FormatError(err)
	if !strings.HasPrefix(msg, "Error: include target not found") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "template: /site/post.sgpage") || !strings.Contains(msg, "include: /nav.html") {
		t.Errorf("expected path context in %q", msg)
	}

	if got := adapter.FormatError(&customError{msg: "boom"}); got != "Error: boom" {
		t.Errorf("unexpected unclassified message %q", got)
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.Default())
	adapter.stderr = &out

	code := adapter.Report(ConfigError("root is not a directory").WithContext("path", "/tmp/x").Build())
	if code != 7 {
		t.Errorf("Report() = %d, want 7", code)
	}
	if !strings.Contains(out.String(), "root is not a directory") {
		t.Errorf("expected message on stderr, got %q", out.String())
	}
}
