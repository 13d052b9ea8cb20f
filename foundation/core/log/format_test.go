// File: format_test.go
// Title: Log Format Tests
// Description: Tests for format and level parsing and the text formatters.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-10
// Modified: 2025-03-27
//
// Change History:
// - 2025-03-10 v0.1.0: Initial format tests
// - 2025-03-27 v0.1.0: Console formatter

package log

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARN ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"", LevelInfo, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"json": FormatJSON, "Text": FormatText, "console": FormatConsole} {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", input, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil || err.Error() != "invalid log format: xml" {
		t.Errorf("ParseFormat(xml) error = %v", err)
	}
}

func testEntry() *Entry {
	e := newEntry(LevelWarn, "Parse failed")
	e.Timestamp = time.Date(2025, 3, 10, 14, 5, 9, 0, time.UTC)
	e.Logger = "smython"
	e.Fields = Fields{"line": 2, "column": 5}
	return e
}

func TestTextFormatter(t *testing.T) {
	out, err := NewTextFormatter().Format(testEntry())
	if err != nil {
		t.Fatal(err)
	}
	want := "14:05:09 [WRN] {smython} Parse failed column=5 line=2\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestTextFormatterError(t *testing.T) {
	f := NewTextFormatter()
	f.DisableTimestamp = true
	e := testEntry()
	e.Fields = nil
	e.Error = errors.New("unexpected EOF")

	out, _ := f.Format(e)
	if string(out) != "[WRN] {smython} Parse failed error=\"unexpected EOF\"\n" {
		t.Errorf("Format() = %q", out)
	}
}

func TestConsoleFormatter(t *testing.T) {
	out, err := NewConsoleFormatter().Format(testEntry())
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, "WRN") || !strings.Contains(s, "Parse failed column=5 line=2") {
		t.Errorf("Format() = %q", s)
	}
}

func TestGetFormatter(t *testing.T) {
	if _, ok := GetFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("FormatText should give a TextFormatter")
	}
	if _, ok := GetFormatter(FormatConsole).(*ConsoleFormatter); !ok {
		t.Error("FormatConsole should give a ConsoleFormatter")
	}
	if _, ok := GetFormatter(Format(42)).(*JSONFormatter); !ok {
		t.Error("unknown formats should fall back to JSON")
	}
}
