package xlsx

import (
	"strings"
	"testing"
)

func TestAddSheetRejectsDuplicateTitle(t *testing.T) {
	wb := NewWorkbook()
	if _, err := wb.AddSheet("Picks", []string{"A"}); err != nil {
		t.Fatalf("first AddSheet: %v", err)
	}
	if _, err := wb.AddSheet("Picks", []string{"A"}); err == nil {
		t.Fatal("expected duplicate title to be rejected")
	}
	if len(wb.Sheets) != 1 {
		t.Fatalf("sheet count = %d, want 1", len(wb.Sheets))
	}
}

func TestValidateSheetTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"plain", "Picks", false},
		{"with space", "Player Props", false},
		{"non-ascii", "Übersicht", false},
		{"empty", "", true},
		{"too long", strings.Repeat("x", 32), true},
		{"max length ok", strings.Repeat("x", 31), false},
		{"leading quote", "'Picks", true},
		{"trailing quote", "Picks'", true},
		{"colon", "a:b", true},
		{"slash", "a/b", true},
		{"brackets", "a[b]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSheetTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSheetTitle(%q) error = %v, wantErr %v", tt.title, err, tt.wantErr)
			}
		})
	}
}
