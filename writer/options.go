package writer

import (
	"github.com/hype-lab/sheetpack/format"
	"github.com/hype-lab/sheetpack/style"
)

// DefaultChunkSize is the number of rows encoded between cooperative
// yields in EncodeContext.
const DefaultChunkSize = 50

// Column declares one worksheet column: the header text and an optional
// per-column boolean word mapping that overrides the global one.
type Column struct {
	Name      string
	TrueWord  string
	FalseWord string
}

// Options configures a package build.
type Options struct {
	// UseSharedStrings routes string cells through the shared-string
	// table. When false every string is written inline.
	UseSharedStrings bool

	// Culture drives boolean word defaults and the fallback rendering of
	// unrecognized value types. Numeric and date cells always use
	// invariant text; the wire format is not localized.
	Culture format.Culture

	// TrueWord and FalseWord, when set, render booleans as strings
	// instead of native b-typed 1/0 cells. Column-level words take
	// precedence.
	TrueWord  string
	FalseWord string

	// Style holds the header, stripe, number-format, and selector
	// configuration.
	Style style.Options

	// ChunkSize bounds the rows encoded between cooperative yields in
	// EncodeContext. Zero means DefaultChunkSize.
	ChunkSize int
}

// DefaultOptions returns the baseline configuration: shared strings on,
// invariant culture, native boolean cells, no styling.
func DefaultOptions() Options {
	return Options{
		UseSharedStrings: true,
		Culture:          format.Invariant(),
		ChunkSize:        DefaultChunkSize,
	}
}

func (o Options) chunkSize() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return DefaultChunkSize
}

// boolWords resolves the word pair for a column: column-level first, then
// the global pair. Empty results mean native 1/0 boolean cells.
func (o Options) boolWords(col *Column) (string, string) {
	if col != nil && col.TrueWord != "" && col.FalseWord != "" {
		return col.TrueWord, col.FalseWord
	}
	if o.TrueWord != "" && o.FalseWord != "" {
		return o.TrueWord, o.FalseWord
	}
	return "", ""
}
