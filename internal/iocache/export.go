package iocache

import (
	"errors"
	"fmt"

	"github.com/sperez1989/basket/internal/parquet"
)

// ExecuteHistoryExport exports the recorded section runs to a Parquet file.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total section runs: %d\n", status.TotalRuns)

	// Retrieve all runs, newest first
	runs, err := store.ListRuns(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve section runs: %w", err)
	}

	records := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteSectionRunsParquet(records, outputFile); err != nil {
		return fmt.Errorf("failed to write section runs: %w", err)
	}
	fmt.Printf("Exported %d section runs to: %s\n", len(records), outputFile)

	return nil
}
