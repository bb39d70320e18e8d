package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsHeaderAndFields(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("score identified",
		String(FieldComponent, "identify"),
		String(FieldScorekey, "S1234"),
		Int("points", 11),
	)

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Fatalf("expected level label in output, got %q", out)
	}
	if !strings.Contains(out, "[identify]") {
		t.Fatalf("expected component tag in output, got %q", out)
	}
	if !strings.Contains(out, "score identified") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "    - scorekey: S1234") {
		t.Fatalf("expected indented field line, got %q", out)
	}
	if !strings.Contains(out, "    - points: 11") {
		t.Fatalf("expected numeric field line, got %q", out)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info record below warn level to be dropped, got %q", buf.String())
	}

	logger.Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected warn record to pass, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml", OutputPaths: []string{"stdout"}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewJSONFormat(t *testing.T) {
	logger, err := New(Options{Level: "debug", Format: "json", OutputPaths: []string{"stdout"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger")
	}
}

func TestComponentLoggerTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	base := slog.New(newConsoleHandler(&buf, levelVar))

	NewComponentLogger(base, "scorewatch").Info("attempt started")
	if !strings.Contains(buf.String(), "[scorewatch]") {
		t.Fatalf("expected component tag, got %q", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected nop logger to be disabled at every level")
	}
}
