package model

// Cell is an optional string value for one spreadsheet cell. A zero Cell is
// absent; an absent cell is not the same value as a present empty string.
type Cell struct {
	String string
	Valid  bool
}

// String returns a present cell holding s.
func String(s string) Cell {
	return Cell{String: s, Valid: true}
}

// Empty returns an absent cell.
func Empty() Cell {
	return Cell{}
}

// Or returns the cell's value when present, otherwise fallback.
func (c Cell) Or(fallback string) string {
	if c.Valid {
		return c.String
	}
	return fallback
}

// IsEmpty reports whether the cell is absent or holds an empty string.
func (c Cell) IsEmpty() bool {
	return !c.Valid || c.String == ""
}
