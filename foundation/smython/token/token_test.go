// File: token_test.go
// Title: Token Definition Tests
// Description: Tests for kind names, keyword lookup and position formatting.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-14
// Modified: 2025-03-14
//
// Change History:
// - 2025-03-14 v0.1.0: Initial tests

package token

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"if", IF},
		{"elif", ELIF},
		{"None", NONE},
		{"True", TRUE},
		{"False", FALSE},
		{"nonlocal", NONLOCAL},
		{"none", NAME},
		{"print", NAME},
		{"_", NAME},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Lookup(tt.input); got != tt.expected {
				t.Errorf("Lookup(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	kws := Keywords()
	if len(kws) != 33 {
		t.Fatalf("Expected 33 keywords, got %d", len(kws))
	}
	for _, kw := range kws {
		if !Lookup(kw).IsKeyword() {
			t.Errorf("Expected %q to be a keyword", kw)
		}
	}
}

func TestKindClasses(t *testing.T) {
	if !PLUSEQ.IsAugmented() || !PIPEEQ.IsAugmented() {
		t.Error("Expected augmented assignment kinds to be augmented")
	}
	if ASSIGN.IsAugmented() || EQ.IsAugmented() {
		t.Error("Expected = and == not to be augmented")
	}
	if !ELLIPSIS.IsOperator() || !DSTAREQ.IsOperator() {
		t.Error("Expected ... and **= to be operators")
	}
	if NAME.IsOperator() || IF.IsOperator() {
		t.Error("Expected NAME and if not to be operators")
	}
	if DSLASHEQ.String() != "//=" {
		t.Errorf("Expected //=, got %s", DSLASHEQ.String())
	}
	if Kind(9999).String() != "Kind(9999)" {
		t.Errorf("Unexpected name for unknown kind: %s", Kind(9999).String())
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Line: 3, Column: 7}).String(); got != "3:7" {
		t.Errorf("Expected 3:7, got %s", got)
	}
	if got := (Position{}).String(); got != "-" {
		t.Errorf("Expected -, got %s", got)
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Kind: NAME, Value: "a"}, "NAME(a)"},
		{Token{Kind: NUMBER, Value: "12"}, "NUMBER(12)"},
		{Token{Kind: STRING, Value: "a\nb"}, `STRING("a\nb")`},
		{Token{Kind: ARROW}, "->"},
		{Token{Kind: INDENT}, "INDENT"},
		{Token{Kind: LAMBDA}, "lambda"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}
