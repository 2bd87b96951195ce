package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/autoprep/internal/logging"
)

var (
	configPath string
	verbose    bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "autoprep",
	Short: "autoprep – last week's Clockify hours per member",
	Long: `autoprep fetches the tracked time of every member of a Clockify workspace
for the previous workweek (Monday to Friday) and shows it as a table that can
be copied straight into a spreadsheet.

Configuration lives in ~/.autoprep/config.json; credentials may also be given
as CLOCKIFY_API_KEY and CLOCKIFY_WORKSPACE_ID.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose)
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "C", "", "Path to a JSON, YAML, or TOML config file (default ~/.autoprep/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print the report and errors")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(weekCmd)
}
