package sml

import "strconv"

// ColumnIndex reads the leading alphabetic run of a cell reference such as
// "AB12" and returns the zero-based column index it names. The letters are
// bijective base-26: A=1 through Z=26, with no zero digit. An empty
// reference, or one with no leading letters, returns -1.
func ColumnIndex(ref string) int {
	n := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			break
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1
}

// ColumnLetters is the inverse of ColumnIndex: 0 -> "A", 25 -> "Z",
// 26 -> "AA". Negative indices return "". The conversion borrows one before
// each modulo so that Z is followed by AA, matching Excel's column naming.
func ColumnLetters(index int) string {
	if index < 0 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	n := index + 1
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// CellRef composes an "A1"-style reference from zero-based column and row
// indices.
func CellRef(col, row int) string {
	return ColumnLetters(col) + strconv.Itoa(row+1)
}

// RowNumber reads the trailing row number of a cell reference, returned
// 1-based as written. References without digits return 0.
func RowNumber(ref string) int {
	i := 0
	for i < len(ref) && !isDigit(ref[i]) {
		i++
	}
	if i == len(ref) {
		return 0
	}
	n, err := strconv.Atoi(ref[i:])
	if err != nil {
		return 0
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
