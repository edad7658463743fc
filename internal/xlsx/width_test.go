package xlsx

import (
	"strings"
	"testing"
)

func TestAutoWidths(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want []float64
	}{
		{
			name: "empty input",
			rows: nil,
			want: nil,
		},
		{
			name: "header only",
			rows: [][]string{{"Tip", "Matchup"}},
			want: []float64{5, 9},
		},
		{
			name: "maximum across rows",
			rows: [][]string{
				{"Tip", "Matchup"},
				{"07:30 PM", "BOS @ NYK"},
			},
			want: []float64{10, 11},
		},
		{
			name: "long text capped at 45 and short book padded",
			rows: [][]string{
				{"Matchup", "Book"},
				{strings.Repeat("x", 60), "DK"},
			},
			want: []float64{45, 6},
		},
		{
			name: "ragged longer row extends the list",
			rows: [][]string{
				{"A"},
				{"B", "wider"},
			},
			want: []float64{3, 7},
		},
		{
			name: "empty cell keeps padding width",
			rows: [][]string{{""}},
			want: []float64{2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AutoWidths(tt.rows)
			if len(got) != len(tt.want) {
				t.Fatalf("AutoWidths() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("width[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAutoWidthsCapAndPad(t *testing.T) {
	// A 60-character matchup and a 3-character book code: 45 (capped) and 5.
	rows := [][]string{
		{strings.Repeat("m", 60), "FAN"},
	}
	got := AutoWidths(rows)
	if got[0] != 45 {
		t.Errorf("matchup width = %v, want 45", got[0])
	}
	if got[1] != 5 {
		t.Errorf("book width = %v, want 5", got[1])
	}
}
