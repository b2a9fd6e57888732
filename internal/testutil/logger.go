package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// NewBufferLogger returns a debug-level slog logger backed by a buffer and the buffer for assertions.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}

// AssertLogged fails the test unless every fragment appears in the buffered log output.
func AssertLogged(t testing.TB, buf *bytes.Buffer, fragments ...string) {
	t.Helper()
	out := buf.String()
	for _, f := range fragments {
		if !strings.Contains(out, f) {
			t.Fatalf("expected log to contain %q, got %s", f, out)
		}
	}
}
