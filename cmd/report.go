package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/autoprep/internal/console"
	"github.com/Tiliavir/autoprep/internal/export"
	"github.com/Tiliavir/autoprep/internal/grid"
)

var (
	reportFormat    string
	reportCopy      bool
	reportRange     rangeFlags
	reportRetrieval retrievalFlags
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show last week's hours per member",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "table", "Output format: table, tsv, csv, json, md")
	reportCmd.Flags().BoolVar(&reportCopy, "copy", false, "Copy the table to the clipboard as tab-separated text")
	reportRange.register(reportCmd)
	reportRetrieval.register(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportFormat == "pdf" {
		return fmt.Errorf("pdf is binary; use: autoprep export --format pdf")
	}

	rng, err := reportRange.resolve(time.Now())
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	con := console.New(cmd.OutOrStdout(), quiet)
	out, err := retrieve(ctx, con, newService(cmd, cfg, reportRetrieval), rng)
	if err != nil {
		return err
	}

	if reportFormat == "table" {
		if err := con.RenderTable(out.Rows); err != nil {
			return err
		}
	} else if err := export.Write(cmd.OutOrStdout(), reportFormat, export.Report{Range: rng, Rows: out.Rows}); err != nil {
		return err
	}

	if reportCopy {
		if err := clipboard.WriteAll(grid.Text(out.Rows)); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		con.LogSuccess("Copied!")
	}
	return nil
}
