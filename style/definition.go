package style

import (
	"fmt"
	"strings"
)

// Default number format codes used by the per-type fallback chains.
const (
	DefaultDateFormat    = "yyyy-mm-dd"
	DefaultDecimalFormat = "0.00"
	DefaultIntegerFormat = "0"
)

// Definition is one immutable flat cell style: the deduplication key for
// the builder and the unit the styles part is generated from. Colors are
// hex RGB ("RRGGBB", a leading '#' or alpha prefix is tolerated); empty
// fields mean "not styled". Equality is structural.
type Definition struct {
	FontName     string
	FontColor    string
	FontSize     float64
	Bold         bool
	FillColor    string
	BorderColor  string
	NumberFormat string
}

// InvalidDefinitionError reports a Definition that cannot be emitted.
type InvalidDefinitionError struct {
	Def    Definition
	Reason string
}

func (e InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid style definition: %s", e.Reason)
}

// Validate rejects definitions that style nothing, and font attributes
// (bold, size) floating without a font name or color to attach to.
func (d Definition) Validate() error {
	hasFont := d.FontName != "" || d.FontColor != ""
	hasFillOrBorder := d.FillColor != "" || d.BorderColor != ""

	if (d.Bold || d.FontSize > 0) && !hasFont {
		return InvalidDefinitionError{Def: d, Reason: "font attributes set but both font name and font color are missing"}
	}
	if !hasFont && !hasFillOrBorder && d.NumberFormat == "" {
		return InvalidDefinitionError{Def: d, Reason: "missing both fill and border color and both font name and font color"}
	}
	return nil
}

// hasFontStyling reports whether the definition needs a non-default font
// entry.
func (d Definition) hasFontStyling() bool {
	return d.FontName != "" || d.FontColor != "" || d.FontSize > 0 || d.Bold
}

// argb normalizes a hex color to the 8-digit ARGB form styles.xml uses.
func argb(color string) string {
	c := strings.TrimPrefix(strings.ToUpper(color), "#")
	if len(c) == 6 {
		c = "FF" + c
	}
	return c
}

// CellStyle is the mutable per-cell style request the resolution policy
// produces. It is transient: constructed per cell, fed to a Builder, then
// discarded. The three format fields feed the per-type number format
// selection; only one of them ends up in the resulting Definition.
type CellStyle struct {
	FontName    string
	FontColor   string
	FontSize    float64
	Bold        bool
	FillColor   string
	BorderColor string

	DateFormat    string
	DecimalFormat string
	IntegerFormat string
}

// Definition freezes the request into a deduplication key carrying the
// given number format.
func (s *CellStyle) Definition(numberFormat string) Definition {
	return Definition{
		FontName:     s.FontName,
		FontColor:    s.FontColor,
		FontSize:     s.FontSize,
		Bold:         s.Bold,
		FillColor:    s.FillColor,
		BorderColor:  s.BorderColor,
		NumberFormat: numberFormat,
	}
}
