package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var weekRange rangeFlags

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print the date range a report would cover",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rng, err := weekRange.resolve(time.Now())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, rng.Label())
		fmt.Fprintf(out, "start: %s\n", rng.StartStamp())
		fmt.Fprintf(out, "end:   %s\n", rng.EndStamp())
		fmt.Fprintf(out, "days:  %d\n", rng.Days())
		return nil
	},
}

func init() {
	weekRange.register(weekCmd)
}
