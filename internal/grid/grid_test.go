package grid_test

import (
	"testing"

	"github.com/Tiliavir/autoprep/internal/grid"
	"github.com/Tiliavir/autoprep/internal/model"
)

func TestSerialize(t *testing.T) {
	tests := []struct {
		name    string
		cells   []string
		columns int
		want    string
	}{
		{
			name:    "header and one row",
			cells:   []string{"Member", "Hours", "Minutes", "Alice", "01", "30"},
			columns: 3,
			want:    "Member\tHours\tMinutes\nAlice\t01\t30",
		},
		{
			name:    "short last row is not padded",
			cells:   []string{"Member", "Hours", "Minutes", "Alice", "01"},
			columns: 3,
			want:    "Member\tHours\tMinutes\nAlice\t01",
		},
		{
			name:    "single short row",
			cells:   []string{"Member"},
			columns: 3,
			want:    "Member",
		},
		{
			name:    "empty selection",
			cells:   nil,
			columns: 3,
			want:    "",
		},
		{
			name:    "empty cells are kept",
			cells:   []string{"", "00", ""},
			columns: 3,
			want:    "\t00\t",
		},
		{
			name:    "non-positive column count is one row",
			cells:   []string{"a", "b"},
			columns: 0,
			want:    "a\tb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grid.Serialize(tt.cells, tt.columns)
			if got != tt.want {
				t.Errorf("Serialize(%q, %d) = %q, want %q", tt.cells, tt.columns, got, tt.want)
			}
		})
	}
}

func TestCells(t *testing.T) {
	rows := []model.Row{
		{Member: "Alice", Hours: "01", Minutes: "30"},
		{Member: "Bob", Hours: "12", Minutes: "05"},
	}
	got := grid.Cells(rows)
	want := []string{"Member", "Hours", "Minutes", "Alice", "01", "30", "Bob", "12", "05"}
	if len(got) != len(want) {
		t.Fatalf("Cells len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Cells[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestText(t *testing.T) {
	got := grid.Text(nil)
	if got != "Member\tHours\tMinutes" {
		t.Errorf("Text(nil) = %q", got)
	}
	got = grid.Text([]model.Row{{Member: "Alice", Hours: "01", Minutes: "30"}})
	if got != "Member\tHours\tMinutes\nAlice\t01\t30" {
		t.Errorf("Text = %q", got)
	}
}
