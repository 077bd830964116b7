package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if err != nil {
			t.Errorf("ParseLevel(%q) returned error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseLevel("bogus"); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "debug" || LevelError.String() != "error" {
		t.Error("unexpected level strings")
	}
	if Level(42).String() != "unknown" {
		t.Error("out-of-range level should stringify as unknown")
	}
}

func TestGetBeforeInit(t *testing.T) {
	logger := Get("preinit")
	if logger == nil {
		t.Fatal("expected a discard logger before Init")
	}
	// Must not panic.
	logger.Info("quiet", "k", "v")
}

func TestInitAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	err := Init(Config{Level: "debug", Path: path})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = Close() }()

	logger := Get("testcomp")
	logger.Info("hello from test", "answer", 42)
	logger.Debug("debug line")

	if err := Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "hello from test") {
		t.Errorf("log file missing info line: %s", content)
	}
	if !strings.Contains(content, "testcomp") {
		t.Errorf("log file missing component prefix: %s", content)
	}
	if !strings.Contains(content, "answer=42") {
		t.Errorf("log file missing key-value pair: %s", content)
	}
}

func TestInitInvalidLevel(t *testing.T) {
	err := Init(Config{Level: "nope", Path: filepath.Join(t.TempDir(), "x.log")})
	if !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestWith(t *testing.T) {
	path := filepath.Join(t.TempDir(), "with.log")
	if err := Init(Config{Level: "info", Path: path}); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = Close() }()

	logger := Get("base").With("session", "abc123")
	logger.Info("scoped message")

	if err := Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "session=abc123") {
		t.Errorf("missing bound context: %s", data)
	}
}

func TestCloseIdempotent(t *testing.T) {
	if err := Close(); err != nil {
		t.Errorf("closing an uninitialized logger should be a no-op, got %v", err)
	}
}
