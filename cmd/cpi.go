package cmd

import (
	"github.com/sperez1989/basket/core"
	"github.com/sperez1989/basket/internal/contract"
	"github.com/spf13/cobra"
)

// cpiCmd compares Canada's CPI against the OECD average.
var cpiCmd = &cobra.Command{
	Use:   "cpi [data-dir]",
	Short: "Compare Canada's CPI to the OECD average per category.",
	Long: `Compare Canada's consumer price index against the OECD average for the
selected COICOP categories.

For each category the latest year inside the analysis window is used, and a
plain-language sentence states whether Canadian prices sit above, below or
very close to the OECD average. Use it to:
- Spot the categories where Canadian inflation diverges most
- Track how a category's relation to the OECD evolves across windows
- Feed per-category findings into reports and dashboards

Examples:
  # Compare food and fuel price levels
  basket cpi --categories CP01,CP045_0722

  # Restrict the window to the post-2019 years
  basket cpi --categories CP01 --from 2019

  # Export findings and render PNG line charts
  basket cpi --categories CP01,CP06 --output csv --output-file cpi.csv --charts-dir charts`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCPI(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run CPI comparison", err)
		}
	},
}
