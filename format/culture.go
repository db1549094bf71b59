// Package format converts scalar values to and from their cell-text form
// under a configurable culture: decimal separator, true/false words, and
// candidate date layouts. The reader and writer use it when mapping typed
// records; the XML cell payloads themselves are always written in the
// invariant form the SpreadsheetML spec requires.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Default word pair for boolean cells when no mapping is configured.
const (
	DefaultTrueWord  = "true"
	DefaultFalseWord = "false"
)

// defaultDateLayouts are tried in order when parsing date text.
var defaultDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	time.RFC3339,
}

// Culture carries the formatting conventions for scalar round trips. The
// zero value behaves like Invariant().
type Culture struct {
	// Tag selects the locale for LocalizedNumber rendering.
	Tag language.Tag

	// DecimalSeparator is '.' or ','; zero means '.'.
	DecimalSeparator rune

	// DateLayouts are candidate Go time layouts tried in order by
	// ParseTime. Empty means the package defaults.
	DateLayouts []string

	// TrueWord and FalseWord render and recognize boolean cells. Empty
	// means "true"/"false".
	TrueWord  string
	FalseWord string
}

// Invariant returns the culture used when callers configure nothing: dot
// separator, true/false words, ISO-leaning date layouts.
func Invariant() Culture {
	return Culture{}
}

func (c Culture) separator() rune {
	if c.DecimalSeparator == 0 {
		return '.'
	}
	return c.DecimalSeparator
}

func (c Culture) words() (string, string) {
	t, f := c.TrueWord, c.FalseWord
	if t == "" {
		t = DefaultTrueWord
	}
	if f == "" {
		f = DefaultFalseWord
	}
	return t, f
}

func (c Culture) layouts() []string {
	if len(c.DateLayouts) > 0 {
		return c.DateLayouts
	}
	return defaultDateLayouts
}

// FormatFloat renders f deterministically with the culture's decimal
// separator. The output always round-trips through ParseFloat.
func (c Culture) FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if c.separator() != '.' {
		s = strings.Replace(s, ".", string(c.separator()), 1)
	}
	return s
}

// ParseFloat reads float text written with either the culture separator or
// a plain dot.
func (c Culture) ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if sep := c.separator(); sep != '.' {
		s = strings.Replace(s, string(sep), ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as float: %w", s, err)
	}
	return f, nil
}

// FormatInt renders i in base 10.
func (c Culture) FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// ParseInt reads integer text, tolerating a trailing zero fraction such as
// "3,0" or "3.0" that spreadsheets produce for integer-valued cells.
func (c Culture) ParseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := c.ParseFloat(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as integer: %w", s, err)
	}
	i := int64(f)
	if float64(i) != f {
		return 0, fmt.Errorf("parsing %q as integer: fractional value", s)
	}
	return i, nil
}

// LocalizedNumber renders f with the culture's locale conventions (grouping
// and separator) for display. Unlike FormatFloat the result is not meant to
// be parsed back.
func (c Culture) LocalizedNumber(f float64) string {
	return message.NewPrinter(c.Tag).Sprint(number.Decimal(f))
}

// FormatBool renders b using the configured word pair.
func (c Culture) FormatBool(b bool) string {
	t, f := c.words()
	if b {
		return t
	}
	return f
}

// ParseBool recognizes the configured word pair case-insensitively, plus
// numeric 1/0 which is how untyped boolean cells arrive.
func (c Culture) ParseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	t, f := c.words()
	switch {
	case strings.EqualFold(s, t) || s == "1":
		return true, nil
	case strings.EqualFold(s, f) || s == "0":
		return false, nil
	}
	// Fall back to the default words so "true" still parses under a
	// custom mapping.
	switch {
	case strings.EqualFold(s, DefaultTrueWord):
		return true, nil
	case strings.EqualFold(s, DefaultFalseWord):
		return false, nil
	}
	return false, fmt.Errorf("parsing %q as boolean (words %q/%q)", s, t, f)
}

// FormatTime renders t with the first configured layout.
func (c Culture) FormatTime(t time.Time) string {
	return t.Format(c.layouts()[0])
}

// ParseTime tries each candidate layout in order.
func (c Culture) ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range c.layouts() {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing %q: no date layout matched", s)
}

// FormatDuration renders d in Go's duration notation.
func (c Culture) FormatDuration(d time.Duration) string {
	return d.String()
}

// ParseDuration reads Go duration notation and the h:mm:ss clock form.
func (c Culture) ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) == 3 {
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		sec, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 == nil && err2 == nil && err3 == nil {
			return time.Duration(h)*time.Hour +
				time.Duration(m)*time.Minute +
				time.Duration(sec*float64(time.Second)), nil
		}
	}
	return 0, fmt.Errorf("parsing %q as duration", s)
}

// FormatGUID renders a GUID in canonical lowercase form.
func (c Culture) FormatGUID(id uuid.UUID) string {
	return id.String()
}

// ParseGUID reads a GUID in any form the uuid package accepts.
func (c Culture) ParseGUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing %q as GUID: %w", s, err)
	}
	return id, nil
}
