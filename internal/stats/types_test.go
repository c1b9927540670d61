package stats

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		stat    TableStat
		wantErr bool
	}{
		{"valid", TableStat{"public", "t", 1000, 400, 600}, false},
		{"empty table", TableStat{"public", "t", 0, 0, 0}, false},
		{"fully wasted", TableStat{"public", "t", 1000, 1000, 0}, false},
		{"missing schema", TableStat{"", "t", 10, 0, 10}, true},
		{"missing table", TableStat{"public", "", 10, 0, 10}, true},
		{"negative size", TableStat{"public", "t", -1, 0, -1}, true},
		{"negative wasted", TableStat{"public", "t", 10, -5, 15}, true},
		{"wasted exceeds size", TableStat{"public", "t", 10, 20, -10}, true},
		{"split mismatch", TableStat{"public", "t", 1000, 400, 500}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stat.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWasteRatio(t *testing.T) {
	s := TableStat{Schema: "public", Table: "t", SizeBytes: 1000, WastedBytes: 250, UnwastedBytes: 750}
	if got := s.WasteRatio(); got != 0.25 {
		t.Errorf("WasteRatio() = %v, want 0.25", got)
	}

	empty := TableStat{Schema: "public", Table: "t"}
	if got := empty.WasteRatio(); got != 0 {
		t.Errorf("WasteRatio() on empty table = %v, want 0", got)
	}
}

func TestQualifiedName(t *testing.T) {
	s := TableStat{Schema: "sales", Table: "Orders"}
	if got := s.QualifiedName(); got != "sales.Orders" {
		t.Errorf("QualifiedName() = %q", got)
	}
}
