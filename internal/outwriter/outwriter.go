// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/sperez1989/basket/internal/contract"
	"github.com/sperez1989/basket/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteOverview prints the dataset overview using the configured output format.
func (ow *OutWriter) WriteOverview(result schema.OverviewResult, series []schema.SeriesRow, cfg *contract.Config, duration time.Duration) error {
	return PrintOverviewResult(result, series, cfg, duration)
}

// WriteCPI prints the CPI comparison findings using the configured output format.
func (ow *OutWriter) WriteCPI(result schema.CPIResult, cfg *contract.Config, duration time.Duration) error {
	return PrintCPIResult(result, cfg, duration)
}

// WriteExpenditure prints the expenditure comparison findings using the configured output format.
func (ow *OutWriter) WriteExpenditure(result schema.ExpenditureResult, cfg *contract.Config, duration time.Duration) error {
	return PrintExpenditureResult(result, cfg, duration)
}

// WriteClusters prints the cluster membership findings using the configured output format.
func (ow *OutWriter) WriteClusters(result schema.ClustersResult, cfg *contract.Config, duration time.Duration) error {
	return PrintClustersResult(result, cfg, duration)
}

// WriteClusterCPI prints the cluster CPI findings using the configured output format.
func (ow *OutWriter) WriteClusterCPI(result schema.ClusterCPIResult, cfg *contract.Config, duration time.Duration) error {
	return PrintClusterCPIResult(result, cfg, duration)
}

// WriteClusterExpenditure prints the cluster expenditure findings using the configured output format.
func (ow *OutWriter) WriteClusterExpenditure(result schema.ClusterExpResult, cfg *contract.Config, duration time.Duration) error {
	return PrintClusterExpResult(result, cfg, duration)
}
