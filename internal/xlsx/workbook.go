package xlsx

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Workbook is an ordered collection of sheets. Sheet order is significant:
// the 1-based position of a sheet determines its sheetId, its relationship id
// and its part filename, and must not change once writing starts.
type Workbook struct {
	Creator string
	Sheets  []*Sheet

	sheetMap map[string]*Sheet
}

// Sheet holds one tab's worth of report data: a title, a header row, data
// rows of display-ready text and the conditional-format selections.
type Sheet struct {
	Title  string
	Header []string
	Rows   [][]string

	// RiskRules enables the tier text-match coloring, DiffScale the
	// percentile color scale. Rules binds both to concrete columns.
	RiskRules bool
	DiffScale bool
	Rules     RuleColumns

	workbook *Workbook
}

func NewWorkbook() *Workbook {
	return &Workbook{
		sheetMap: map[string]*Sheet{},
	}
}

// AddSheet appends a sheet with the given title and header row. Duplicate
// titles are rejected rather than deduplicated.
func (wb *Workbook) AddSheet(title string, header []string) (*Sheet, error) {
	if _, exists := wb.sheetMap[title]; exists {
		return nil, fmt.Errorf("duplicate sheet title '%s'", title)
	}

	if err := validateSheetTitle(title); err != nil {
		return nil, err
	}

	sheet := &Sheet{
		workbook: wb,
		Title:    title,
		Header:   header,
	}

	wb.Sheets = append(wb.Sheets, sheet)
	wb.sheetMap[title] = sheet

	return sheet, nil
}

// AddRow appends one data row. Missing trailing cells are simply absent;
// empty strings keep their position.
func (s *Sheet) AddRow(cells ...string) {
	s.Rows = append(s.Rows, cells)
}

// matrix returns header plus data rows, which is what the width estimator
// and the row emitter operate on.
func (s *Sheet) matrix() [][]string {
	if s.Header == nil {
		return s.Rows
	}
	m := make([][]string, 0, len(s.Rows)+1)
	m = append(m, s.Header)
	m = append(m, s.Rows...)
	return m
}

func validateSheetTitle(s string) error {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return errors.New("empty sheet title is not allowed")
	} else if n > 31 {
		return errors.New("the sheet title is too long")
	}
	if strings.HasPrefix(s, "'") || strings.HasSuffix(s, "'") {
		return errors.New("the first or last character of the sheet title can not be a single quote")
	}
	if strings.ContainsAny(s, ":\\/?*[]") {
		return errors.New("the sheet title can not contain any of the characters :\\/?*[]")
	}
	return nil
}
