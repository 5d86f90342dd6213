package cmd

import (
	"github.com/sperez1989/basket/core"
	"github.com/sperez1989/basket/internal/contract"
	"github.com/spf13/cobra"
)

// clusterCmd groups the cluster-relative comparison sections.
var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Compare Canada against the country cluster averages",
	Long: `Compare Canada against the average of each country cluster instead of
the single OECD-wide average.

Cluster averages keep structurally similar economies together, so the
comparison is less distorted by outliers than the OECD mean.

Subcommands:
  cpi         - Compare CPI levels per cluster
  expenditure - Compare spending shares and growth per cluster

Examples:
  # Which cluster has the highest food prices?
  basket cluster cpi --categories CP01

  # How does Canada's housing share compare to each cluster?
  basket cluster expenditure --categories CP04`,
}

// clusterCPICmd compares Canada's CPI against the cluster averages.
var clusterCPICmd = &cobra.Command{
	Use:   "cpi [data-dir]",
	Short: "Compare Canada's CPI to each cluster average per category.",
	Long: `Compare Canada's consumer price index against the average CPI of each
country cluster for the selected COICOP categories.

For each category the latest year inside the analysis window is used, and the
cluster with the highest average CPI is named alongside Canada's own level.

Examples:
  # Compare food prices across clusters
  basket cluster cpi --categories CP01

  # Export per-cluster findings and charts
  basket cluster cpi --categories CP01,CP06 --output json --charts-dir charts`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteClusterCPI(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run cluster CPI comparison", err)
		}
	},
}

// clusterExpenditureCmd compares Canada's spending against the cluster averages.
var clusterExpenditureCmd = &cobra.Command{
	Use:   "expenditure [data-dir]",
	Short: "Compare Canada's spending shares and growth to each cluster average.",
	Long: `Compare Canada's household expenditure against the average of each
country cluster for the selected COICOP categories.

Looks at the final year of the analysis window and reports Canada's share and
growth next to the cluster with the highest average share.

Examples:
  # Compare housing spending across clusters
  basket cluster expenditure --categories CP04

  # Anchor on 2021 and render per-category bar charts
  basket cluster expenditure --categories CP01,CP04 --to 2021 --charts-dir charts`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteClusterExpenditure(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run cluster expenditure comparison", err)
		}
	},
}
