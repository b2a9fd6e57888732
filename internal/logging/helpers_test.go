package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersTolerateNilLogger(t *testing.T) {
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", errors.New("boom"))
}

func TestErrorAppendsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Error(logger, "save failed", errors.New("disk full"), FieldBackend, "fs")

	out := buf.String()
	if !strings.Contains(out, "error=\"disk full\"") || !strings.Contains(out, "backend=fs") {
		t.Fatalf("expected error and backend fields, got %q", out)
	}
}

func TestOutcomeLevelsFollowError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Outcome(logger, "league operation", nil, FieldOperation, "add_team")
	if out := buf.String(); !strings.Contains(out, "level=DEBUG") || strings.Contains(out, FieldError+"=") {
		t.Fatalf("expected debug line without error, got %q", out)
	}

	buf.Reset()
	Outcome(logger, "league operation", errors.New("duplicate"), FieldOperation, "add_team")
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "error=duplicate") || !strings.Contains(out, "operation=add_team") {
		t.Fatalf("expected warn line with error, got %q", out)
	}
	Outcome(nil, "ignored", errors.New("boom"))
}
