package cmd

import (
	"github.com/sperez1989/basket/core"
	"github.com/sperez1989/basket/internal/contract"
	"github.com/spf13/cobra"
)

// clustersCmd shows the country cluster assignments.
var clustersCmd = &cobra.Command{
	Use:   "clusters [data-dir]",
	Short: "Show the country clusters and Canada's peer group.",
	Long: `Show how the OECD countries group into spending-pattern clusters and
which countries share a cluster with Canada.

Displays the cluster sizes, the full membership table, and names Canada's
peers in plain language. No category selection is needed.

Examples:
  # Show the clusters for the current data directory
  basket clusters

  # Export the membership table
  basket clusters --output csv --output-file clusters.csv

  # Render a cluster-size bar chart
  basket clusters --charts-dir charts`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteClusters(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run cluster membership", err)
		}
	},
}
