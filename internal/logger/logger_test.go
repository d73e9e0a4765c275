package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_DefaultsToInfoLevel(t *testing.T) {
	log := New()

	if log == nil {
		t.Fatal("expected logger to be created")
	}
	if log.GetLevel() != slog.LevelInfo {
		t.Errorf("expected default level to be Info, got %v", log.GetLevel())
	}
	if log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging to be disabled by default")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // Default
		{"", slog.LevelInfo},        // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlogLogger_ImplementsInterface(t *testing.T) {
	var _ Logger = (*SlogLogger)(nil)
}

func TestSlogLogger_LogMethods(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Level: slog.LevelDebug, Output: &buf})

	tests := []struct {
		name  string
		fn    func(string, ...any)
		level string
	}{
		{"Debug", log.Debug, "DEBUG"},
		{"Info", log.Info, "INFO"},
		{"Warn", log.Warn, "WARN"},
		{"Error", log.Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("rules saved", "event_id", "1")

			output := buf.String()
			if !strings.Contains(output, tt.level) {
				t.Errorf("expected output to contain %q, got: %s", tt.level, output)
			}
			if !strings.Contains(output, "rules saved") {
				t.Errorf("expected output to contain message, got: %s", output)
			}
			if !strings.Contains(output, "event_id=1") {
				t.Errorf("expected output to contain event_id=1, got: %s", output)
			}
		})
	}
}

func TestSlogLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Level: slog.LevelInfo, Format: "JSON", Output: &buf})

	log.Info("participant checked in", "participant_id", "7")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "participant checked in" {
		t.Errorf("unexpected msg: %v", record["msg"])
	}
	if record["participant_id"] != "7" {
		t.Errorf("unexpected participant_id: %v", record["participant_id"])
	}
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Level: slog.LevelWarn, Output: &buf})

	log.Debug("debug message")
	log.Info("info message")
	if buf.Len() > 0 {
		t.Errorf("expected debug/info to be filtered at WARN level, got: %s", buf.String())
	}

	log.Warn("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Error("expected warn message to be logged")
	}
}

func TestSlogLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(Options{Level: slog.LevelError, Output: &buf})

	log.Info("hidden")
	log.SetLevel(slog.LevelDebug)
	log.Info("visible")

	if log.GetLevel() != slog.LevelDebug {
		t.Errorf("expected level to be Debug, got %v", log.GetLevel())
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Error("expected message before level change to be filtered")
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Error("expected message after level change to be logged")
	}
}

func TestSlogLogger_With_SharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithOptions(Options{Level: slog.LevelInfo, Output: &buf})
	child := parent.With("component", "sessions")

	child.Debug("hidden")
	parent.SetLevel(slog.LevelDebug)
	child.Debug("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected child to start at parent level")
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "component=sessions") {
		t.Errorf("expected child record with component attr, got: %s", out)
	}
	if child.GetLevel() != slog.LevelDebug {
		t.Errorf("expected child level to follow parent, got %v", child.GetLevel())
	}
}

func TestSlogLogger_HTTPLogging(t *testing.T) {
	log := NewWithOptions(Options{HTTPLogging: true})
	if !log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging to be enabled from options")
	}

	child := log.With("component", "http")
	log.DisableHTTPLogging()
	if child.IsHTTPLoggingEnabled() {
		t.Error("expected child to share the HTTP logging switch")
	}

	log.EnableHTTPLogging()
	if !log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging to be enabled")
	}
}
