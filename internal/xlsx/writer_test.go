package xlsx

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

type wbDoc struct {
	Sheets []struct {
		Name    string `xml:"name,attr"`
		SheetID int    `xml:"sheetId,attr"`
		RelID   string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sheets>sheet"`
}

type relsDoc struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

func writeTestWorkbook(t *testing.T, wb *Workbook) string {
	t.Helper()
	dir := t.TempDir()
	if err := NewWriter(NewDirStorage(dir)).Write(wb); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return dir
}

func readPart(t *testing.T, dir, part string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(part)))
	if err != nil {
		t.Fatalf("read %s: %v", part, err)
	}
	return b
}

func fourSheetWorkbook(t *testing.T) *Workbook {
	t.Helper()
	wb := NewWorkbook()
	wb.Creator = "hoops-edge"
	rules := RuleColumns{Risk: 3, Diff: 2}
	for i, cfg := range []struct {
		title string
		cf    bool
	}{
		{"Picks", true},
		{"Player Props", true},
		{"Game Summary", false},
		{"Audit", false},
	} {
		sh, err := wb.AddSheet(cfg.title, []string{"Tip (ET)", "Diff% / ΔLine", "Risk"})
		if err != nil {
			t.Fatalf("AddSheet %s: %v", cfg.title, err)
		}
		sh.RiskRules = cfg.cf
		sh.DiffScale = cfg.cf
		sh.Rules = rules
		if i < 2 {
			sh.AddRow("07:30 PM", "2.1%", "Low")
			sh.AddRow("10:00 PM", "5.4%", "High")
		}
	}
	return wb
}

func TestPackageContainsExactParts(t *testing.T) {
	dir := writeTestWorkbook(t, fourSheetWorkbook(t))

	parts := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"xl/workbook.xml",
		"xl/_rels/workbook.xml.rels",
		"xl/styles.xml",
		"xl/theme/theme1.xml",
		"xl/worksheets/sheet1.xml",
		"xl/worksheets/sheet2.xml",
		"xl/worksheets/sheet3.xml",
		"xl/worksheets/sheet4.xml",
	}
	for _, p := range parts {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(p))); err != nil {
			t.Errorf("missing part %s: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "xl", "worksheets", "sheet5.xml")); err == nil {
		t.Error("unexpected extra worksheet part")
	}
}

func TestWorkbookRelationshipConsistency(t *testing.T) {
	wb := fourSheetWorkbook(t)
	dir := writeTestWorkbook(t, wb)

	var doc wbDoc
	if err := xml.Unmarshal(readPart(t, dir, "xl/workbook.xml"), &doc); err != nil {
		t.Fatalf("parse workbook.xml: %v", err)
	}
	var rels relsDoc
	if err := xml.Unmarshal(readPart(t, dir, "xl/_rels/workbook.xml.rels"), &rels); err != nil {
		t.Fatalf("parse workbook.xml.rels: %v", err)
	}

	if len(doc.Sheets) != len(wb.Sheets) {
		t.Fatalf("declared sheet count = %d, want %d", len(doc.Sheets), len(wb.Sheets))
	}

	relByID := map[string]string{}
	for _, r := range rels.Rels {
		if _, dup := relByID[r.ID]; dup {
			t.Errorf("duplicate relationship id %s", r.ID)
		}
		relByID[r.ID] = r.Target
	}

	for i, sh := range doc.Sheets {
		if sh.SheetID != i+1 {
			t.Errorf("sheet %d has sheetId %d, want dense %d", i, sh.SheetID, i+1)
		}
		if sh.Name != wb.Sheets[i].Title {
			t.Errorf("sheet %d name = %q, want %q", i, sh.Name, wb.Sheets[i].Title)
		}
		target, ok := relByID[sh.RelID]
		if !ok {
			t.Errorf("sheet %q references unresolved relationship %s", sh.Name, sh.RelID)
			continue
		}
		want := fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		if target != want {
			t.Errorf("relationship %s targets %q, want %q", sh.RelID, target, want)
		}
		if _, err := os.Stat(filepath.Join(dir, "xl", filepath.FromSlash(target))); err != nil {
			t.Errorf("relationship %s target %s not written: %v", sh.RelID, target, err)
		}
	}

	// Styles and theme take the two ids after the sheets.
	wantStyles := fmt.Sprintf("rId%d", len(wb.Sheets)+1)
	wantTheme := fmt.Sprintf("rId%d", len(wb.Sheets)+2)
	if relByID[wantStyles] != "styles.xml" {
		t.Errorf("rel %s targets %q, want styles.xml", wantStyles, relByID[wantStyles])
	}
	if relByID[wantTheme] != "theme/theme1.xml" {
		t.Errorf("rel %s targets %q, want theme/theme1.xml", wantTheme, relByID[wantTheme])
	}
}

func TestPackageRelationships(t *testing.T) {
	dir := writeTestWorkbook(t, fourSheetWorkbook(t))

	var rels relsDoc
	if err := xml.Unmarshal(readPart(t, dir, "_rels/.rels"), &rels); err != nil {
		t.Fatalf("parse .rels: %v", err)
	}
	targets := map[string]bool{}
	for _, r := range rels.Rels {
		targets[r.Target] = true
	}
	for _, want := range []string{"xl/workbook.xml", "docProps/core.xml", "docProps/app.xml"} {
		if !targets[want] {
			t.Errorf("package rels missing target %s", want)
		}
	}
	if len(rels.Rels) != 3 {
		t.Errorf("package rel count = %d, want 3", len(rels.Rels))
	}
}

func TestContentTypesCoverEveryWorksheet(t *testing.T) {
	wb := fourSheetWorkbook(t)
	dir := writeTestWorkbook(t, wb)

	ct := string(readPart(t, dir, "[Content_Types].xml"))
	for i := 1; i <= len(wb.Sheets); i++ {
		part := fmt.Sprintf("/xl/worksheets/sheet%d.xml", i)
		if !strings.Contains(ct, part) {
			t.Errorf("content types missing override for %s", part)
		}
	}
	for _, part := range []string{"/xl/workbook.xml", "/xl/styles.xml", "/xl/theme/theme1.xml", "/docProps/core.xml", "/docProps/app.xml"} {
		if !strings.Contains(ct, part) {
			t.Errorf("content types missing override for %s", part)
		}
	}
}

func TestConditionalFormattingPresence(t *testing.T) {
	wb := fourSheetWorkbook(t)
	dir := writeTestWorkbook(t, wb)

	for i := range wb.Sheets {
		sheet := string(readPart(t, dir, fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)))
		has := strings.Contains(sheet, "conditionalFormatting")
		want := i < 2
		if has != want {
			t.Errorf("sheet %d conditionalFormatting present = %v, want %v", i+1, has, want)
		}
		if want {
			if !strings.Contains(sheet, "containsText") {
				t.Errorf("sheet %d missing text-match rules", i+1)
			}
			if !strings.Contains(sheet, "colorScale") {
				t.Errorf("sheet %d missing color scale rule", i+1)
			}
		}
	}
}

func TestRiskRulesBoundToConfiguredColumn(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("Picks", []string{"A", "B", "C", "D", "E"})
	if err != nil {
		t.Fatal(err)
	}
	sh.RiskRules = true
	sh.DiffScale = true
	sh.Rules = RuleColumns{Risk: 5, Diff: 4}
	dir := writeTestWorkbook(t, wb)

	sheet := string(readPart(t, dir, "xl/worksheets/sheet1.xml"))
	if !strings.Contains(sheet, `sqref="E2:E1048576"`) {
		t.Error("risk rules not bound to column E")
	}
	if !strings.Contains(sheet, `sqref="D2:D1048576"`) {
		t.Error("diff scale not bound to column D")
	}
	if !strings.Contains(sheet, `SEARCH("Low",$E2)`) {
		t.Error("tier formula not referencing column E")
	}
}

func TestDxfIndexesResolveInStyleSheet(t *testing.T) {
	wb := fourSheetWorkbook(t)
	dir := writeTestWorkbook(t, wb)

	styles := string(readPart(t, dir, "xl/styles.xml"))
	m := regexp.MustCompile(`<dxfs[^>]*count="(\d+)"`).FindStringSubmatch(styles)
	if m == nil {
		t.Fatal("styles.xml has no dxfs count")
	}
	dxfCount := 0
	fmt.Sscanf(m[1], "%d", &dxfCount)

	sheet := string(readPart(t, dir, "xl/worksheets/sheet1.xml"))
	for _, ref := range regexp.MustCompile(`dxfId="(\d+)"`).FindAllStringSubmatch(sheet, -1) {
		id := 0
		fmt.Sscanf(ref[1], "%d", &id)
		if id >= dxfCount {
			t.Errorf("dxfId %d out of range, style sheet has %d dxfs", id, dxfCount)
		}
	}
}

func TestSheetDimension(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		rows   [][]string
		want   string
	}{
		{"header only", []string{"A", "B", "C", "D"}, nil, "A1:D1"},
		{"header plus rows", []string{"A", "B"}, [][]string{{"1", "2"}, {"3", "4"}}, "A1:B3"},
		{"no rows at all", nil, nil, "A1"},
		{"ragged rows do not widen", []string{"A", "B"}, [][]string{{"1", "2", "3"}}, "A1:B2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := NewWorkbook()
			sh, err := wb.AddSheet("Sheet", tt.header)
			if err != nil {
				t.Fatal(err)
			}
			sh.Rows = tt.rows
			dir := writeTestWorkbook(t, wb)
			sheet := string(readPart(t, dir, "xl/worksheets/sheet1.xml"))
			if !strings.Contains(sheet, fmt.Sprintf(`<dimension ref="%s"`, tt.want)) {
				t.Errorf("dimension %q not found in sheet xml", tt.want)
			}
		})
	}
}

func TestSheetLayoutElements(t *testing.T) {
	wb := fourSheetWorkbook(t)
	dir := writeTestWorkbook(t, wb)
	sheet := string(readPart(t, dir, "xl/worksheets/sheet1.xml"))

	if !strings.Contains(sheet, `state="frozen"`) || !strings.Contains(sheet, `topLeftCell="A2"`) {
		t.Error("missing frozen header pane")
	}
	if !strings.Contains(sheet, `<autoFilter ref="A1:C1"`) {
		t.Error("auto-filter not bound to the header row")
	}
	if !strings.Contains(sheet, "<cols") || !strings.Contains(sheet, `customWidth="1"`) {
		t.Error("missing computed column widths")
	}
	if !strings.Contains(sheet, `t="inlineStr"`) {
		t.Error("cells not typed as inline strings")
	}
}

func TestEmptyCellKeepsPosition(t *testing.T) {
	wb := NewWorkbook()
	sh, err := wb.AddSheet("Sheet", []string{"A", "B", "C"})
	if err != nil {
		t.Fatal(err)
	}
	sh.AddRow("x", "", "z")
	dir := writeTestWorkbook(t, wb)
	sheet := string(readPart(t, dir, "xl/worksheets/sheet1.xml"))

	// The empty middle cell is still emitted at B2.
	if !strings.Contains(sheet, `r="B2"`) {
		t.Error("empty cell dropped from its row position")
	}
}
