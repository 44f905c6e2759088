package commands

import (
	"github.com/ppiankov/budget/internal/logging"
	"github.com/spf13/cobra"
)

var (
	debug   bool
	version string
	commit  string
	date    string
)

var rootCmd = &cobra.Command{
	Use:   "budget [tags...]",
	Short: "Summarise individual budget files",
	Long: `budget totals the expense records kept as one small text file per item
under a finances directory, and breaks the total down by tag.

Positional arguments filter by tag: a bare tag must be present, !tag must be
absent. Records tagged archive are hidden unless --archive is given.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(debug)
		loadDotEnv()
	},
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	registerSummaryFlags(rootCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
