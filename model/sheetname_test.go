package model

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewSheetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Accounts", false},
		{"max length", strings.Repeat("a", 31), false},
		{"too long", strings.Repeat("a", 32), true},
		{"multibyte within limit", strings.Repeat("日", 20), false},
		{"multibyte max length", strings.Repeat("é", 31), false},
		{"multibyte too long", strings.Repeat("é", 32), true},
		{"empty", "", true},
		{"colon", "a:b", true},
		{"backslash", `a\b`, true},
		{"slash", "a/b", true},
		{"question mark", "what?", true},
		{"asterisk", "a*b", true},
		{"brackets", "[range]", true},
		{"spaces allowed", "Q1 Report", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewSheetName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewSheetName(%q) expected error, got %q", tt.input, n)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSheetName(%q) unexpected error: %v", tt.input, err)
			}
			if n.String() != tt.input {
				t.Errorf("NewSheetName(%q) = %q", tt.input, n)
			}
		})
	}
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Accounts", "Accounts"},
		{"a:b/c", "abc"},
		{"[2024] Q1?", "2024 Q1"},
		{"", "Sheet1"},
		{":[]/\\?*", "Sheet1"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31)},
		{strings.Repeat("é", 40), strings.Repeat("é", 31)},
		{strings.Repeat("日", 20), strings.Repeat("日", 20)},
	}

	for _, tt := range tests {
		got := SanitizeSheetName(tt.input)
		if got.String() != tt.want {
			t.Errorf("SanitizeSheetName(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if !utf8.ValidString(got.String()) {
			t.Errorf("SanitizeSheetName(%q) produced invalid UTF-8 %q", tt.input, got)
		}
	}
}

func TestSheetNameEqualIsCaseInsensitive(t *testing.T) {
	a := SanitizeSheetName("Summary")
	b := SanitizeSheetName("SUMMARY")
	if !a.Equal(b) {
		t.Error("expected case-insensitive equality for sheet names")
	}
	c := SanitizeSheetName("Other")
	if a.Equal(c) {
		t.Error("distinct names compared equal")
	}
}
