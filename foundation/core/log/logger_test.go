// File: logger_test.go
// Title: Logger Tests
// Description: Tests for logger configuration, context fields, level
//              filtering, error logging and timers.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-10
// Modified: 2025-03-27
//
// Change History:
// - 2025-03-10 v0.1.0: Initial logger tests
// - 2025-03-27 v0.1.0: LogError severity mapping

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	mdwerror "github.com/msto63/smython/foundation/core/error"
)

func decode(t *testing.T, line []byte) map[string]interface{} {
	t.Helper()
	var data map[string]interface{}
	if err := json.Unmarshal(line, &data); err != nil {
		t.Fatalf("invalid JSON %q: %v", line, err)
	}
	return data
}

func TestNew(t *testing.T) {
	logger := New()
	if logger.GetLevel() != DefaultLevel() {
		t.Errorf("New() level = %v, want %v", logger.GetLevel(), DefaultLevel())
	}
	if logger.IsLevelEnabled(LevelDebug) {
		t.Error("debug should be disabled by default")
	}
}

func TestWithMethodsDoNotModifyOriginal(t *testing.T) {
	base := New()
	debug := base.WithLevel(LevelDebug).WithField("component", "lexer")

	if base.GetLevel() != LevelInfo {
		t.Error("WithLevel() modified the original logger")
	}
	if _, ok := base.fields["component"]; ok {
		t.Error("WithField() modified the original logger")
	}
	if debug.fields["component"] != "lexer" {
		t.Error("WithField() did not set the field")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf).WithLevel(LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
}

func TestJSONEntryContainsContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf).
		WithName("smython").
		WithRequestID("req-1").
		WithFields(Fields{"component": "parser"})

	logger.Warn("Parse failed", Fields{"line": 3, "column": 7})

	data := decode(t, buf.Bytes())
	for key, want := range map[string]interface{}{
		"level":      "warn",
		"message":    "Parse failed",
		"logger":     "smython",
		"request_id": "req-1",
		"component":  "parser",
		"line":       float64(3),
		"column":     float64(7),
	} {
		if data[key] != want {
			t.Errorf("%s = %v, want %v", key, data[key], want)
		}
	}
}

func TestCallFieldsOverrideContext(t *testing.T) {
	var buf bytes.Buffer
	New().WithOutput(&buf).WithField("file", "a.smy").Info("checked", Field("file", "b.smy"))

	if got := decode(t, buf.Bytes())["file"]; got != "b.smy" {
		t.Errorf("file = %v, want b.smy", got)
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"plain", errors.New("boom"), "error"},
		{"low", mdwerror.New("cache miss").WithSeverity(mdwerror.SeverityLow), "info"},
		{"medium", mdwerror.New("bad option").WithCode(mdwerror.CodeInvalidInput), "warn"},
		{"high", mdwerror.New("disk failure").WithCode(mdwerror.CodeIO), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New().WithOutput(&buf).WithLevel(LevelDebug).LogError(tt.err)
			if got := decode(t, buf.Bytes())["level"]; got != tt.level {
				t.Errorf("level = %v, want %s", got, tt.level)
			}
		})
	}
}

func TestLogErrorFields(t *testing.T) {
	var buf bytes.Buffer
	err := mdwerror.New("input too large").
		WithCode(mdwerror.CodeInputTooLarge).
		WithOperation("parser.Parse").
		WithDetail("length", 42)
	New().WithOutput(&buf).LogError(err)

	data := decode(t, buf.Bytes())
	if data["error_code"] != string(mdwerror.CodeInputTooLarge) {
		t.Errorf("error_code = %v", data["error_code"])
	}
	if data["error_operation"] != "parser.Parse" {
		t.Errorf("error_operation = %v", data["error_operation"])
	}
	if data["error_length"] != float64(42) {
		t.Errorf("error_length = %v", data["error_length"])
	}
	if data["message"] != "input too large" {
		t.Errorf("message = %v", data["message"])
	}
}

func TestLogErrorNil(t *testing.T) {
	var buf bytes.Buffer
	New().WithOutput(&buf).LogError(nil)
	if buf.Len() != 0 {
		t.Errorf("LogError(nil) wrote %q", buf.String())
	}
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(New().WithOutput(&buf))
	Info("from default")

	if !strings.Contains(buf.String(), "from default") {
		t.Errorf("default logger output = %q", buf.String())
	}
}

func TestConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.WithField("n", n).Info("parsed")
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for _, line := range lines {
		decode(t, []byte(line))
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithOutput(&buf).WithLevel(LevelDebug)

	timer := logger.StartTimer("parse").WithField("file", "a.smy")
	if timer.Stop() < 0 {
		t.Error("negative duration")
	}
	if timer.Stop() != 0 {
		t.Error("second Stop() should return zero")
	}

	data := decode(t, buf.Bytes())
	if data["message"] != "parse completed" || data["operation"] != "parse" || data["file"] != "a.smy" {
		t.Errorf("unexpected timer entry %v", data)
	}
	if _, ok := data["duration_ms"]; !ok {
		t.Error("duration_ms missing")
	}
}

func TestTimerStopWithError(t *testing.T) {
	var buf bytes.Buffer
	New().WithOutput(&buf).StartTimer("check").StopWithError(errors.New("3 files failed"))

	data := decode(t, buf.Bytes())
	if data["level"] != "error" || data["message"] != "check failed" {
		t.Errorf("unexpected entry %v", data)
	}
	if data["error"] != "3 files failed" || data["success"] != false {
		t.Errorf("unexpected entry %v", data)
	}
}
