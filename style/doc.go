// Package style models flat cell styling (font, fill, border, number
// format) for written packages.
//
// A [Definition] is the immutable deduplication key: two cells requesting
// structurally identical styling share one cellXfs entry. The [Builder]
// assigns each unique Definition a stable index; the emitted styles part
// always reserves cellXfs index 0 for the default "no style" entry, so a
// builder index appears in a cell's s attribute as index+1 — the +1 rule is
// applied uniformly, header row included.
//
// [Resolver] implements the per-cell policy: an optional selector callback
// wins, then header styling, then alternating row fills, and finally the
// per-type number format fallbacks for date, decimal and integer values.
//
// Emission deduplicates fonts, fills and borders as independent dimensions
// and assigns custom number format ids starting at 165, the first id the
// OOXML spec reserves for user formats.
package style
