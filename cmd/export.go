package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/autoprep/internal/console"
	"github.com/Tiliavir/autoprep/internal/export"
	"github.com/Tiliavir/autoprep/internal/timecalc"
)

var (
	exportFormat    string
	exportOutput    string
	exportRange     rangeFlags
	exportRetrieval retrievalFlags
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export last week's hours per member to a file or stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: tsv, csv, json, md, pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file; '-' for stdout (default stdout, or hours-<week>.pdf for pdf)")
	exportRange.register(exportCmd)
	exportRetrieval.register(exportCmd)
}

// exportTarget returns the file to write to, or "" for stdout.
func exportTarget(output, format string, r timecalc.DateRange) string {
	switch {
	case output == "-":
		return ""
	case output != "":
		return output
	case format == "pdf":
		return "hours-" + timecalc.ISOWeekLabel(r.Start) + export.Extension(format)
	default:
		return ""
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	rng, err := exportRange.resolve(time.Now())
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	target := exportTarget(exportOutput, exportFormat, rng)
	con := console.New(cmd.OutOrStdout(), quiet)
	out, err := retrieve(ctx, con, newService(cmd, cfg, exportRetrieval), rng)
	if err != nil {
		return err
	}

	rep := export.Report{Range: rng, Rows: out.Rows}
	if target == "" {
		return export.Write(cmd.OutOrStdout(), exportFormat, rep)
	}
	if err := writeExportFile(target, exportFormat, rep); err != nil {
		return err
	}
	con.LogSuccess("Wrote %d member(s) to %s", len(out.Rows), target)
	return nil
}

func writeExportFile(path, format string, rep export.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.Write(f, format, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
