// Package report builds the fixed four-sheet NBA edge workbook and publishes
// it atomically.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/willbo114-dot/hoops-edge/internal/xlsx"
)

var PicksHeaders = []string{
	"Tip (ET)",
	"Matchup (AWAY @ HOME)",
	"Market",
	"Side/Player",
	"Book",
	"Line/Price",
	"Fair (Model)",
	"Book (De-vig)",
	"Diff% / ΔLine",
	"Edge %",
	"Kelly %",
	"Risk",
	"Notes",
	"Pulled At",
}

var PropsHeaders = PicksHeaders

var GameSummaryHeaders = []string{
	"Tip (ET)",
	"Matchup",
	"Conference",
	"Projected Score",
	"Fair ML (Home)",
	"Fair ML (Away)",
	"Fair Spread",
	"Fair Total",
	"Home Card",
	"Away Card",
}

var AuditHeaders = []string{
	"Game ID",
	"Market",
	"Side",
	"Book",
	"Line",
	"Price A",
	"Price B",
	"Implied A",
	"Implied B",
	"De-vig A",
	"De-vig B",
	"Timestamp",
	"Source",
	"Books",
	"Conference",
}

// Writer publishes workbooks into OutputDir. The directory is created on
// demand.
type Writer struct {
	OutputDir string
	Creator   string
}

func NewWriter(outputDir string) *Writer {
	return &Writer{
		OutputDir: outputDir,
		Creator:   "hoops-edge",
	}
}

// Write produces NBA_<date>_<Conference>.xlsx with the fixed sheet layout:
// Picks and Player Props carry the risk-tier colors and the deviation color
// scale, Game Summary and Audit do not. Rows are display-ready strings.
// Returns the published path.
//
// The archive is written to a temporary sibling and renamed into place, so a
// failure mid-write never leaves a half-valid file at the published path.
func (w *Writer) Write(fileDate time.Time, conference string, picks, props, summary, audit [][]string) (string, error) {
	wb := xlsx.NewWorkbook()
	wb.Creator = w.Creator

	rules := xlsx.RuleColumns{
		Risk: columnIndex(PicksHeaders, "Risk"),
		Diff: columnIndex(PicksHeaders, "Diff% / ΔLine"),
	}

	sheets := []struct {
		title  string
		header []string
		rows   [][]string
		colors bool
	}{
		{"Picks", PicksHeaders, picks, true},
		{"Player Props", PropsHeaders, props, true},
		{"Game Summary", GameSummaryHeaders, summary, false},
		{"Audit", AuditHeaders, audit, false},
	}
	for _, s := range sheets {
		sh, err := wb.AddSheet(s.title, s.header)
		if err != nil {
			return "", err
		}
		sh.Rows = s.rows
		sh.RiskRules = s.colors
		sh.DiffScale = s.colors
		sh.Rules = rules
	}

	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("NBA_%s_%s.xlsx", fileDate.Format("2006-01-02"), titleCase(conference))
	final := filepath.Join(w.OutputDir, filename)
	tmp := final + "." + uuid.NewString() + ".tmp"

	if err := writeArchive(tmp, wb); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("publish workbook: %w", err)
	}
	return final, nil
}

func writeArchive(path string, wb *xlsx.Workbook) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create workbook file: %w", err)
	}

	zs := xlsx.NewZipStorage(f)
	werr := xlsx.NewWriter(zs).Write(wb)
	if werr == nil {
		werr = zs.Close()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return werr
}

// columnIndex returns the 1-based position of label in header, 0 when absent.
func columnIndex(header []string, label string) int {
	for i, h := range header {
		if h == label {
			return i + 1
		}
	}
	return 0
}

// titleCase matches the filename convention: first letter upper, rest lower
// ("east" -> "East").
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
