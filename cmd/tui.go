package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/autoprep/internal/logging"
	"github.com/Tiliavir/autoprep/internal/report"
	"github.com/Tiliavir/autoprep/internal/tui"
)

var (
	tuiRange     rangeFlags
	tuiRetrieval retrievalFlags
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive screen: extract, browse and copy last week's hours",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	tuiRange.register(tuiCmd)
	tuiRetrieval.register(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Fail on bad flags before taking over the screen.
	if _, err := tuiRange.resolve(time.Now()); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if verbose {
		path, closer, err := logging.SetupFile("autoprep_debug.log", true)
		if err != nil {
			return err
		}
		defer closer.Close()
		fmt.Fprintf(cmd.ErrOrStderr(), "Logging to %s\n", path)
	} else {
		logging.Discard()
	}

	svc := newService(cmd, cfg, tuiRetrieval)
	// The range is resolved per retrieval so a screen left open over a
	// weekend picks up the new week.
	fetch := func(ctx context.Context) (report.Outcome, error) {
		rng, err := tuiRange.resolve(time.Now())
		if err != nil {
			return report.Outcome{}, err
		}
		return svc.Run(ctx, rng)
	}

	return tui.Run(tui.New("Clockify – hours per member", fetch, clipboard.WriteAll))
}
