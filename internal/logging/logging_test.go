package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen(t *testing.T) {
	t.Run("creates log file in directory", func(t *testing.T) {
		dir := t.TempDir()

		logger, err := Open(dir, LevelDebug)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, "debug.log")); err != nil {
			t.Errorf("log file was not created: %v", err)
		}
	})

	t.Run("creates missing directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")

		logger, err := Open(dir, LevelInfo)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, "debug.log")); err != nil {
			t.Errorf("log file was not created: %v", err)
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger, err := Open(dir, LevelWarn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")
	logger.Close()

	content, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines at WARN level, got %d: %q", len(lines), lines)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "warn message" {
		t.Errorf("first entry msg = %v, want warn message", entry["msg"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestClose_Idempotent(t *testing.T) {
	logger, err := Open(t.TempDir(), LevelInfo)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Info("goes nowhere")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nop logger: %v", err)
	}
}
