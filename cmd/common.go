package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/autoprep/internal/clockify"
	"github.com/Tiliavir/autoprep/internal/config"
	"github.com/Tiliavir/autoprep/internal/console"
	"github.com/Tiliavir/autoprep/internal/report"
	"github.com/Tiliavir/autoprep/internal/timecalc"
)

// rangeFlags selects the reported week. Without flags it is the workweek
// before the current one.
type rangeFlags struct {
	date string
	from string
	to   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Report the workweek before the week of this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.from, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	cmd.Flags().StringVar(&f.to, "to", "", "End date (YYYY-MM-DD); defaults to today")
}

func (f rangeFlags) resolve(now time.Time) (timecalc.DateRange, error) {
	switch {
	case f.date != "" && (f.from != "" || f.to != ""):
		return timecalc.DateRange{}, errors.New("--date cannot be combined with --from or --to")

	case f.date != "":
		d, err := timecalc.ParseDate(f.date)
		if err != nil {
			return timecalc.DateRange{}, fmt.Errorf("--date: %w", err)
		}
		return timecalc.PreviousWorkweek(d), nil

	case f.from != "" || f.to != "":
		if f.from == "" {
			return timecalc.DateRange{}, errors.New("--from is required when --to is specified")
		}
		from, err := timecalc.ParseDate(f.from)
		if err != nil {
			return timecalc.DateRange{}, fmt.Errorf("--from: %w", err)
		}
		to := now
		if f.to != "" {
			if to, err = timecalc.ParseDate(f.to); err != nil {
				return timecalc.DateRange{}, fmt.Errorf("--to: %w", err)
			}
		}
		return timecalc.CustomRange(from, to)

	default:
		return timecalc.PreviousWorkweek(now), nil
	}
}

// retrievalFlags override the report section of the config file.
type retrievalFlags struct {
	bestEffort  bool
	concurrency int
}

func (f *retrievalFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.bestEffort, "best-effort", false, "Show the members that succeeded when some reports fail")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", config.DefaultConcurrency, "Number of member reports fetched in parallel")
}

func (f retrievalFlags) options(cmd *cobra.Command, cfg config.Config) []report.Option {
	policy := report.FailFast
	if cfg.Report.BestEffort {
		policy = report.BestEffort
	}
	if cmd.Flags().Changed("best-effort") {
		policy = report.FailFast
		if f.bestEffort {
			policy = report.BestEffort
		}
	}
	concurrency := cfg.Report.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = f.concurrency
	}
	return []report.Option{report.WithPolicy(policy), report.WithConcurrency(concurrency)}
}

// loadConfig reads and validates the configuration.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		path := configPath
		if path == "" {
			path, _ = config.DefaultPath()
		}
		return cfg, fmt.Errorf("%w\nSet them in %s or in the environment", err, path)
	}
	return cfg, nil
}

// newService wires the Clockify client into a report service.
func newService(cmd *cobra.Command, cfg config.Config, rf retrievalFlags) *report.Service {
	client := clockify.NewClient(cfg.ClientConfig())
	return report.NewService(client, rf.options(cmd, cfg)...)
}

// retrieve runs one retrieval with a spinner and prints the per-user notes.
func retrieve(ctx context.Context, con *console.Console, svc *report.Service, r timecalc.DateRange) (report.Outcome, error) {
	con.LogInfo("Week %s", console.BrightCyan(r.Label()))
	status := con.Status("Obtaining data…")

	out, err := svc.Run(ctx, r)
	if err != nil {
		status.Fail("Retrieval failed")
		if h := hint(err); h != "" {
			return out, fmt.Errorf("%w\n%s", err, h)
		}
		return out, err
	}
	status.Success(fmt.Sprintf("Data obtained: %d member(s)", len(out.Rows)))

	if n := len(out.Skipped); n > 0 {
		con.LogInfo("%d member(s) without tracked time", n)
	}
	for _, f := range out.Failed {
		con.LogWarning("%s: %v", console.BrightYellow(f.User.Name), f.Err)
	}
	return out, nil
}

// hint suggests a fix for common failures.
func hint(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.Is(err, clockify.ErrAuth):
		return "Hint: check the API key (" + config.EnvAPIKey + ")."
	case errors.Is(err, clockify.ErrNotFound):
		return "Hint: check the workspace id (" + config.EnvWorkspaceID + ")."
	case errors.Is(err, clockify.ErrTransient):
		return "Hint: Clockify could not be reached; try again later or raise clockify.timeout_seconds."
	default:
		return ""
	}
}
