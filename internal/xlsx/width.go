package xlsx

import "unicode/utf8"

const (
	widthPadding = 2
	widthCap     = 45
)

// AutoWidths derives one display width per column from the text length of
// every cell in that column: len+2 capped at 45, maximum across rows. Rows
// longer than the ones seen so far extend the list; shorter rows contribute
// only to the columns they have. Cosmetic only.
func AutoWidths(rows [][]string) []float64 {
	var widths []float64
	for _, row := range rows {
		for i, text := range row {
			w := float64(utf8.RuneCountInString(text) + widthPadding)
			if w > widthCap {
				w = widthCap
			}
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}
