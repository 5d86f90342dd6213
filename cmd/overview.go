package cmd

import (
	"github.com/sperez1989/basket/core"
	"github.com/sperez1989/basket/internal/contract"
	"github.com/spf13/cobra"
)

// overviewCmd summarizes the loaded dataset.
var overviewCmd = &cobra.Command{
	Use:   "overview [data-dir]",
	Short: "Summarize the loaded OECD dataset.",
	Long: `Load the OECD CPI and expenditure tables and print a dataset summary.

Shows the year coverage, the number of countries in the clustering, and the
COICOP categories present in the data, helping you:
- Verify a data directory before running the comparison sections
- Discover which category codes are available for --categories
- Export the filtered time series for use in other tools

Examples:
  # Summarize the data in the current directory
  basket overview

  # Summarize a specific data directory
  basket overview ./data

  # Export the filtered series rows for a few categories
  basket overview --categories CP01,CP045_0722 --output csv --output-file series.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOverview(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run overview", err)
		}
	},
}
