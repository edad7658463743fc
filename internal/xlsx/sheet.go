package xlsx

import (
	"bytes"
	"fmt"

	"github.com/adnsv/srw/xml"
)

func (w *Writer) writeSheet(sh *Sheet, idx int, rid string) error {
	relpath := fmt.Sprintf("worksheets/sheet%d.xml", idx)
	abspath := "/xl/" + relpath

	w.PartContentTypes[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	w.WorkbookRels[rid] = RelInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet",
		Target: relpath,
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("worksheet")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	rows := sh.matrix()

	// Bounding box from (1,1) to (lastRow, lastCol), lastCol taken from the
	// header row. A sheet with no rows at all is just "A1".
	lastCol := 1
	if len(rows) > 0 && len(rows[0]) > 0 {
		lastCol = len(rows[0])
	}
	dim := "A1"
	if len(rows) > 0 {
		dim = fmt.Sprintf("A1:%s", CellRef(lastCol, len(rows)))
	}
	x.OTag("+dimension").Attr("ref", dim).CTag()

	// Keep the header row visible when scrolling.
	x.OTag("+sheetViews")
	x.OTag("+sheetView")
	x.Attr("workbookViewId", 0)
	x.OTag("+pane")
	x.Attr("state", "frozen")
	x.Attr("ySplit", 1)
	x.Attr("topLeftCell", "A2")
	x.Attr("activePane", "bottomLeft")
	x.CTag() // pane
	x.CTag() // sheetView
	x.CTag() // sheetViews

	widths := AutoWidths(rows)
	if len(widths) > 0 {
		x.OTag("+cols")
		for i, wd := range widths {
			x.OTag("+col")
			x.Attr("min", i+1)
			x.Attr("max", i+1)
			x.Attr("width", fmt.Sprintf("%.2f", wd))
			x.Attr("customWidth", 1)
			x.CTag()
		}
		x.CTag()
	}

	x.OTag("+sheetData")
	for ri, row := range rows {
		x.OTag("+row").Attr("r", ri+1)
		for ci, text := range row {
			x.OTag("+c")
			x.Attr("r", CellRef(ci+1, ri+1))
			x.Attr("t", "inlineStr")
			x.OTag("is")
			x.OTag("t").String(text).CTag()
			x.CTag() // is
			x.CTag() // c
		}
		x.CTag() // row
	}
	x.CTag() // sheetData

	x.OTag("+autoFilter").Attr("ref", fmt.Sprintf("A1:%s1", ColumnLetters(lastCol))).CTag()

	if sh.RiskRules && sh.Rules.Risk > 0 {
		writeRiskRules(x, sh.Rules.Risk)
	}
	if sh.DiffScale && sh.Rules.Diff > 0 {
		writeDiffScale(x, sh.Rules.Diff)
	}

	x.CTag() // worksheet

	return w.out.WriteBlob(abspath, bb.Bytes())
}
