package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelWarn, &buf)

	Debug("Test", "debug message")
	Info("Test", "info message")
	Warn("Test", "warn message")
	Error("Test", errors.New("boom"), "error message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Errorf("debug message should have been filtered, got %q", out)
	}
	if strings.Contains(out, "info message") {
		t.Errorf("info message should have been filtered, got %q", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("warn message missing from output %q", out)
	}
	if !strings.Contains(out, "error message") {
		t.Errorf("error message missing from output %q", out)
	}
}

func TestSubsystemAndErrorAttributes(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelDebug, &buf)

	Error("Store", errors.New("disk full"), "save failed for %s", "conf-a")

	out := buf.String()
	if !strings.Contains(out, "subsystem=Store") {
		t.Errorf("output missing subsystem attribute: %q", out)
	}
	if !strings.Contains(out, "disk full") {
		t.Errorf("output missing error attribute: %q", out)
	}
	if !strings.Contains(out, "save failed for conf-a") {
		t.Errorf("output missing formatted message: %q", out)
	}
}

func TestFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelDebug, &buf)

	Info("Test", "loaded %d configurations from %s", 3, "/etc/conf")

	if !strings.Contains(buf.String(), "loaded 3 configurations from /etc/conf") {
		t.Errorf("formatted message missing from output %q", buf.String())
	}
}
