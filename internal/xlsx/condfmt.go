package xlsx

import (
	"fmt"

	"github.com/adnsv/srw/xml"
)

// RuleColumns binds the semantic report roles to 1-based worksheet columns.
// The builders never infer which column carries which meaning; callers derive
// these indices from their own header layout. A zero index disables the rule
// even when the sheet flag is set.
type RuleColumns struct {
	Risk int // risk-tier column
	Diff int // deviation column
}

type riskTier struct {
	Label string
	DxfID int
}

// riskTiers in declaration order. Priorities follow this order, so the first
// declared matching rule wins.
var riskTiers = []riskTier{
	{"Low", 0},
	{"Med", 1},
	{"High", 2},
}

// tierFills are the dxf fill colors, indexed by riskTiers DxfID. The style
// sheet emits them in this exact order; a DxfID outside this slice is a
// defect.
var tierFills = []string{
	"FFC6EFCE", // Low
	"FFFFEB9C", // Med
	"FFFFC7CE", // High
}

var diffScaleStops = []struct {
	Percentile string
	Color      string
}{
	{"10", "FFFFFFFF"},
	{"50", "FFFFF2CC"},
	{"90", "FFFFC000"},
}

// writeRiskRules emits one containsText rule per recognized tier over the
// whole risk column below the header.
func writeRiskRules(x *xml.Writer, col int) {
	letter := ColumnLetters(col)
	x.OTag("+conditionalFormatting")
	x.Attr("sqref", fmt.Sprintf("%s2:%s1048576", letter, letter))
	for i, tier := range riskTiers {
		x.OTag("+cfRule")
		x.Attr("type", "containsText")
		x.Attr("operator", "containsText")
		x.Attr("text", tier.Label)
		x.Attr("dxfId", tier.DxfID)
		x.Attr("priority", i+1)
		x.OTag("+formula")
		x.String(fmt.Sprintf(`NOT(ISERROR(SEARCH("%s",$%s2)))`, tier.Label, letter))
		x.CTag()
		x.CTag() // cfRule
	}
	x.CTag() // conditionalFormatting
}

// writeDiffScale emits a three-stop percentile color scale over the deviation
// column below the header.
func writeDiffScale(x *xml.Writer, col int) {
	letter := ColumnLetters(col)
	x.OTag("+conditionalFormatting")
	x.Attr("sqref", fmt.Sprintf("%s2:%s1048576", letter, letter))
	x.OTag("+cfRule")
	x.Attr("type", "colorScale")
	x.Attr("priority", len(riskTiers)+1)
	x.OTag("+colorScale")
	for _, stop := range diffScaleStops {
		x.OTag("+cfvo").Attr("type", "percentile").Attr("val", stop.Percentile).CTag()
	}
	for _, stop := range diffScaleStops {
		x.OTag("+color").Attr("rgb", stop.Color).CTag()
	}
	x.CTag() // colorScale
	x.CTag() // cfRule
	x.CTag() // conditionalFormatting
}
