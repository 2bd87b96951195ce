// Package grid flattens the weekly table into cells and back into the
// tab-separated text that spreadsheets accept on paste.
package grid

import (
	"strings"

	"github.com/Tiliavir/autoprep/internal/model"
)

// Columns is the width of the weekly table.
const Columns = 3

// Header is the first row of every table.
var Header = []string{"Member", "Hours", "Minutes"}

// Cells returns the header and rows as a row-major list of cell texts.
func Cells(rows []model.Row) []string {
	cells := make([]string, 0, (len(rows)+1)*Columns)
	cells = append(cells, Header...)
	for _, r := range rows {
		cells = append(cells, r.Member, r.Hours, r.Minutes)
	}
	return cells
}

// Serialize groups cells into rows of columns cells, joins each row with
// tabs and the rows with newlines. A trailing short row is emitted as is.
func Serialize(cells []string, columns int) string {
	if len(cells) == 0 {
		return ""
	}
	if columns < 1 {
		columns = len(cells)
	}
	lines := make([]string, 0, (len(cells)+columns-1)/columns)
	for i := 0; i < len(cells); i += columns {
		end := min(i+columns, len(cells))
		lines = append(lines, strings.Join(cells[i:end], "\t"))
	}
	return strings.Join(lines, "\n")
}

// Text is the clipboard text of a full table.
func Text(rows []model.Row) string {
	return Serialize(Cells(rows), Columns)
}
