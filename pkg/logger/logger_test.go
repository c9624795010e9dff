package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
}

func newTestLogger(buf *bytes.Buffer, cfg Config) *Logger {
	l := New(cfg, buf)
	l.now = fixedClock
	return l
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if result := test.level.String(); result != test.expected {
			t.Errorf("Level.String() = %v, expected %v", result, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace":   TraceLevel,
		"DEBUG":   DebugLevel,
		"info":    InfoLevel,
		"warn":    WarnLevel,
		"warning": WarnLevel,
		" error ": ErrorLevel,
		"bogus":   InfoLevel,
		"":        InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerInitialization(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel, Component: "test"}); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if Default() == nil {
		t.Fatal("Initialize() did not set the default logger")
	}
	if Default().config.Component != "test" {
		t.Errorf("component = %s, want test", Default().config.Component)
	}
}

func TestLoggerPrettyFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, Config{Level: InfoLevel, Component: "exportsync"})

	l.Log(InfoLevel, "updated exports", String("package", "my-pkg"), Int("entries", 2))

	result := buf.String()
	for _, part := range []string{
		"2025-01-01 12:00:00",
		"[INFO]",
		"exportsync:",
		"updated exports",
		"{entries=2, package=my-pkg}",
	} {
		if !strings.Contains(result, part) {
			t.Errorf("output missing %q\nResult: %s", part, result)
		}
	}
	if !strings.HasSuffix(result, "\n") {
		t.Errorf("output should end with newline: %q", result)
	}
}

func TestLoggerNoOpMarker(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, Config{Level: InfoLevel, NoOp: true})

	l.Log(InfoLevel, "would write package.json")

	if !strings.Contains(buf.String(), "[NO-OP]") {
		t.Errorf("expected [NO-OP] marker, got %s", buf.String())
	}
}

func TestLoggerJSONFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, Config{Level: InfoLevel, JSON: true, Component: "test"})

	l.Log(InfoLevel, "test message", String("key", "value"))

	var parsed LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed); err != nil {
		t.Fatalf("Log() produced invalid JSON: %v\nOutput: %s", err, buf.String())
	}
	if parsed.Message != "test message" {
		t.Errorf("message = %v, expected 'test message'", parsed.Message)
	}
	if parsed.Level != "INFO" {
		t.Errorf("level = %v, expected 'INFO'", parsed.Level)
	}
	if parsed.Fields["key"] != "value" {
		t.Errorf("fields = %v", parsed.Fields)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, Config{Level: WarnLevel})

	l.Log(InfoLevel, "info message")
	l.Log(DebugLevel, "debug message")
	l.Log(WarnLevel, "warn message")
	l.Log(ErrorLevel, "error message")

	output := buf.String()
	if strings.Contains(output, "info message") || strings.Contains(output, "debug message") {
		t.Errorf("lower levels should be filtered: %s", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("higher levels should appear: %s", output)
	}
}

func TestFieldConstructors(t *testing.T) {
	if f := String("key", "value"); f.Key != "key" || f.Value != "value" {
		t.Errorf("String() = %+v", f)
	}
	if f := Int("count", 42); f.Key != "count" || f.Value != 42 {
		t.Errorf("Int() = %+v", f)
	}
	if f := Bool("enabled", true); f.Key != "enabled" || f.Value != true {
		t.Errorf("Bool() = %+v", f)
	}
	if f := Strings("entries", []string{"index", "button"}); f.Value != "index,button" {
		t.Errorf("Strings() = %+v", f)
	}
}

func TestErrField(t *testing.T) {
	f := Err(errors.New("test error"))
	if f.Key != "error" || f.Value != "test error" {
		t.Errorf("Err() = %+v", f)
	}
	if f := Err(nil); f.Value != "<nil>" {
		t.Errorf("Err(nil) = %+v", f)
	}
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	_ = Initialize(Config{Level: InfoLevel, Component: "test"})
	SetOutput(&buf)

	Info("output test message")
	Debug("hidden debug message")

	output := buf.String()
	if !strings.Contains(output, "output test message") {
		t.Errorf("SetOutput() did not redirect output correctly: %s", output)
	}
	if strings.Contains(output, "hidden debug message") {
		t.Errorf("debug message should be filtered at info level: %s", output)
	}
}

func TestFallbackLogging(t *testing.T) {
	original := defaultLogger
	defaultLogger = nil
	defer func() { defaultLogger = original }()

	// must not panic without an initialized logger
	Info("fallback info")
	Warn("fallback warn")
	Error("fallback error")
	Debug("dropped")
}
