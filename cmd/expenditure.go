package cmd

import (
	"github.com/sperez1989/basket/core"
	"github.com/sperez1989/basket/internal/contract"
	"github.com/spf13/cobra"
)

// expenditureCmd compares Canada's household spending against the OECD average.
var expenditureCmd = &cobra.Command{
	Use:   "expenditure [data-dir]",
	Short: "Compare Canada's household spending shares and growth to the OECD average.",
	Long: `Compare Canada's household expenditure against the OECD average for the
selected COICOP categories.

Looks at the final year of the analysis window and reports, per category:
- The share of household spending Canadians devote to the category
- How that share compares to the OECD average
- Whether Canadian spending on the category grew faster or slower

Examples:
  # Compare spending on food and housing
  basket expenditure --categories CP01,CP04

  # Anchor the comparison on a specific year
  basket expenditure --categories CP01 --to 2021

  # Export findings and render share/growth bar charts
  basket expenditure --categories CP01,CP06 --output json --charts-dir charts`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExpenditure(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run expenditure comparison", err)
		}
	},
}
