package xlsx

import (
	"fmt"
	"strconv"
)

// ColumnLetters converts a 1-based column number to its spreadsheet letter
// form: 1 -> "A", 26 -> "Z", 27 -> "AA". There is no zero symbol, so this is
// not plain base-26.
func ColumnLetters(n int) string {
	if n < 1 {
		panic("invalid column number")
	}
	var s string
	for n > 0 {
		s = string(rune((n-1)%26+'A')) + s
		n = (n - 1) / 26
	}
	return s
}

// CellRef builds an "A1"-style reference from 1-based column and row numbers.
func CellRef(col, row int) string {
	if row < 1 {
		panic("invalid row number")
	}
	return ColumnLetters(col) + strconv.Itoa(row)
}

// ParseColumnLetters is the inverse of ColumnLetters.
func ParseColumnLetters(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty column reference")
	}
	n := 0
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column reference %q", s)
		}
		n = n*26 + int(r-'A') + 1
	}
	return n, nil
}

// ParseCellRef splits an "A1"-style reference into 1-based column and row
// numbers.
func ParseCellRef(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	col, err = ParseColumnLetters(ref[:i])
	if err != nil {
		return 0, 0, err
	}
	row, err = strconv.Atoi(ref[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	return col, row, nil
}
