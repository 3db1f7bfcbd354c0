package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"keysync/internal/config"

	"github.com/spf13/cobra"
)

// ==================== Logger Tests ====================

func TestNew_Defaults(t *testing.T) {
	logger, err := New(config.DefaultConfig().Log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer logger.Close()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := config.LogConfig{
		Level:  "invalid",
		Format: "text",
		Output: "stderr",
	}

	if _, err := New(cfg); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestNew_FileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "keysync.log")

	cfg := config.LogConfig{
		Level:  "info",
		Format: "text",
		Output: logPath,
	}

	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("test message")
	logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if !strings.Contains(string(data), "test message") {
		t.Errorf("expected log file to contain message, got %q", data)
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}

	logger, err := NewWithWriter(config.LogConfig{Level: "debug", Format: "json"}, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Debug("file skipped", "path", "src/a.bin")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "file skipped" {
		t.Errorf("expected msg 'file skipped', got %v", record["msg"])
	}
	if record["path"] != "src/a.bin" {
		t.Errorf("expected path attribute, got %v", record["path"])
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}

	logger, err := NewWithWriter(config.LogConfig{Level: "warn", Format: "text"}, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected warn record, got %q", out)
	}
}

func TestNewWithWriter_PrettyNoColor(t *testing.T) {
	buf := &bytes.Buffer{}

	logger, err := NewWithWriter(config.LogConfig{Level: "debug", Format: "pretty", NoColor: true}, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.With("component", "walker").Warn("skipping file", "path", "x.png")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no ANSI escapes with NoColor, got %q", out)
	}
	for _, want := range []string{"WARN", "skipping file", "component", "walker", "x.png"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCharmLogLevel(t *testing.T) {
	if charmLogLevel(slog.LevelDebug) >= charmLogLevel(slog.LevelInfo) {
		t.Error("debug should map below info")
	}
	if charmLogLevel(slog.LevelWarn) >= charmLogLevel(slog.LevelError) {
		t.Error("warn should map below error")
	}
}

func TestMultiCloser(t *testing.T) {
	ok := closerFunc(func() error { return nil })
	bad := closerFunc(func() error { return errors.New("boom") })

	if err := (&multiCloser{closers: []io.Closer{ok, ok}}).Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (&multiCloser{closers: []io.Closer{ok, bad}}).Close(); err == nil {
		t.Error("expected aggregated close error")
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// ==================== Context Tests ====================

func TestCommandContext(t *testing.T) {
	cmd := &cobra.Command{Use: "sync"}
	cc := NewCommandContext(cmd, []string{"--project-dir", "web"})

	if cc.Command != "sync" {
		t.Errorf("expected command 'sync', got %q", cc.Command)
	}
	if cc.RequestID == "" {
		t.Error("expected a request ID")
	}

	ctx := WithCommandContext(context.Background(), cc)
	if got := CommandContextFrom(ctx); got != cc {
		t.Error("expected to retrieve the same command context")
	}
	if CommandContextFrom(context.Background()) != nil {
		t.Error("expected nil command context from empty context")
	}

	attrs := cc.LogAttrs()
	if len(attrs) != 5 {
		t.Errorf("expected 5 attrs including args, got %d", len(attrs))
	}
}

func TestLoggerFrom(t *testing.T) {
	l := Discard()
	ctx := WithLogger(context.Background(), l)
	if LoggerFrom(ctx) != l {
		t.Error("expected stored logger")
	}
	if LoggerFrom(context.Background()) == nil {
		t.Error("expected default logger for empty context")
	}
}

// ==================== Error Tests ====================

func TestWrapError(t *testing.T) {
	if WrapError(nil, "ignored") != nil {
		t.Error("expected nil for nil error")
	}

	base := errors.New("permission denied")
	err := WrapError(base, "write locale file")

	if !errors.Is(err, base) {
		t.Error("expected wrapped error to unwrap to base")
	}
	if err.Error() != "write locale file: permission denied" {
		t.Errorf("unexpected message %q", err.Error())
	}

	var we *WrappedError
	if !errors.As(err, &we) || !strings.Contains(we.Caller(), "logger_test.go") {
		t.Errorf("expected caller information, got %+v", we)
	}
}

func TestWithError(t *testing.T) {
	if attr := WithError(nil); attr.Key != "" {
		t.Errorf("expected empty attr for nil error, got %v", attr)
	}

	attr := WithError(WrapError(errors.New("boom"), "load"))
	if attr.Key != "error" {
		t.Errorf("expected 'error' group, got %q", attr.Key)
	}
	keys := map[string]bool{}
	for _, a := range attr.Value.Group() {
		keys[a.Key] = true
	}
	for _, want := range []string{"message", "type", "cause", "caller"} {
		if !keys[want] {
			t.Errorf("expected %q in error group", want)
		}
	}
}
