package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxSheetNameLength is the hard limit SpreadsheetML places on sheet names,
// counted in characters, not bytes.
const maxSheetNameLength = 31

// DefaultSheetName is used when sanitizing leaves nothing usable.
const DefaultSheetName = "Sheet1"

// invalidSheetNameChars are the characters Excel rejects in sheet names.
const invalidSheetNameChars = `:\/?*[]`

// SheetName is a validated worksheet name. The zero value is invalid; use
// NewSheetName or SanitizeSheetName.
type SheetName struct {
	value string
}

// NewSheetName validates s as a worksheet name: 1-31 characters, none of
// : \ / ? * [ ].
func NewSheetName(s string) (SheetName, error) {
	if s == "" {
		return SheetName{}, fmt.Errorf("sheet name is empty")
	}
	if utf8.RuneCountInString(s) > maxSheetNameLength {
		return SheetName{}, fmt.Errorf("sheet name %q exceeds %d characters", s, maxSheetNameLength)
	}
	if i := strings.IndexAny(s, invalidSheetNameChars); i >= 0 {
		return SheetName{}, fmt.Errorf("sheet name %q contains invalid character %q", s, s[i])
	}
	return SheetName{value: s}, nil
}

// SanitizeSheetName coerces arbitrary text into a legal worksheet name by
// stripping invalid characters and truncating to 31 characters. Empty input
// (or input that strips to nothing) yields DefaultSheetName.
func SanitizeSheetName(s string) SheetName {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(invalidSheetNameChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	clean := truncateRunes(b.String(), maxSheetNameLength)
	if clean == "" {
		clean = DefaultSheetName
	}
	return SheetName{value: clean}
}

// String returns the underlying name.
func (n SheetName) String() string {
	return n.value
}

// IsZero reports whether the name is the invalid zero value.
func (n SheetName) IsZero() bool {
	return n.value == ""
}

// Equal compares two sheet names case-insensitively, matching how Excel
// treats sheet name identity.
func (n SheetName) Equal(other SheetName) bool {
	return strings.EqualFold(n.value, other.value)
}

// truncateRunes cuts s to at most max characters on a rune boundary.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
