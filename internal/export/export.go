// Package export writes the weekly table in file formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/Tiliavir/autoprep/internal/grid"
	"github.com/Tiliavir/autoprep/internal/model"
	"github.com/Tiliavir/autoprep/internal/timecalc"
)

// Formats lists the supported export formats.
var Formats = []string{"tsv", "csv", "json", "md", "pdf"}

// Report is what gets exported.
type Report struct {
	Range timecalc.DateRange
	Rows  []model.Row
}

// Write encodes rep in format to w.
func Write(w io.Writer, format string, rep Report) error {
	switch strings.ToLower(format) {
	case "tsv":
		_, err := io.WriteString(w, grid.Text(rep.Rows)+"\n")
		return err
	case "csv":
		return writeCSV(w, rep)
	case "json":
		return writeJSON(w, rep)
	case "md":
		return writeMarkdown(w, rep)
	case "pdf":
		return writePDF(w, rep)
	default:
		return fmt.Errorf("unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// Extension returns the file extension for format.
func Extension(format string) string {
	return "." + strings.ToLower(format)
}

func writeCSV(w io.Writer, rep Report) error {
	var b strings.Builder
	b.WriteString("member,hours,minutes,total_minutes\n")
	for _, r := range rep.Rows {
		fmt.Fprintf(&b, "%s,%s,%s,%d\n", csvEscape(r.Member), r.Hours, r.Minutes, r.TotalSeconds/60)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

type jsonReport struct {
	Week         string      `json:"week"`
	From         string      `json:"from"`
	To           string      `json:"to"`
	Members      []model.Row `json:"members"`
	TotalSeconds int64       `json:"total_seconds"`
}

func writeJSON(w io.Writer, rep Report) error {
	out := jsonReport{
		Week:    timecalc.ISOWeekLabel(rep.Range.Start),
		From:    rep.Range.Start.Format("2006-01-02"),
		To:      rep.Range.End.Format("2006-01-02"),
		Members: rep.Rows,
	}
	if out.Members == nil {
		out.Members = []model.Row{}
	}
	for _, r := range rep.Rows {
		out.TotalSeconds += r.TotalSeconds
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeMarkdown(w io.Writer, rep Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", rep.Range.Label())
	b.WriteString("| Member | Hours | Minutes | Total |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, r := range rep.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			strings.ReplaceAll(r.Member, "|", `\|`), r.Hours, r.Minutes, timecalc.FormatDuration(r.TotalSeconds))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writePDF(w io.Writer, rep Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Weekly hours "+rep.Range.Label(), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Weekly hours "+rep.Range.Label()), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := []float64{100, 40, 40}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range grid.Header {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rep.Rows {
		pdf.CellFormat(widths[0], 7, tr(r.Member), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, r.Hours, "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, r.Minutes, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return pdf.Output(w)
}
