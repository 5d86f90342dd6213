package cmd

import (
	"github.com/sperez1989/basket/core"
	"github.com/sperez1989/basket/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd validates a data directory without touching the cache.
var checkCmd = &cobra.Command{
	Use:   "check [data-dir]",
	Short: "Validate a data directory (fails on missing or malformed files)",
	Long: `Validate that a directory contains the expected OECD input files and that
they parse cleanly.

Designed for pipelines that refresh the data drop - fails with a non-zero
exit code when a required file is missing or malformed. The dataset cache is
bypassed so the files on disk are what gets checked.

Use cases:
- Gate a data refresh job before publishing the directory
- Diagnose a parse failure reported by a comparison section
- Confirm which optional cluster files are present

Examples:
  # Check the current directory
  basket check

  # Check a freshly downloaded drop
  basket check ./data/2026-08`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Data check failed", err)
		}
	},
}
