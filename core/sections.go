package core

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sperez1989/basket/internal/chartgen"
	"github.com/sperez1989/basket/internal/contract"
	"github.com/sperez1989/basket/internal/outwriter"
	"github.com/sperez1989/basket/schema"
)

// ExecutorFunc defines the function signature for executing the dashboard sections.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteOverview loads the dataset and prints its summary. With CSV or
// Parquet output it exports the filtered time series rows instead.
func ExecuteOverview(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	ds, err := LoadDataset(cfg, mgr.GetDatasetStore())
	if err != nil {
		return err
	}

	// The overview exports every category unless a selection narrows it.
	cats := cfg.Categories
	if len(cats) == 0 {
		cats = ds.Categories()
	}
	yr := clampRange(cfg, ds)
	filtered := FilterSeries(ds.Series, cats, yr)
	result := DeriveOverview(ds)

	ow := outwriter.NewOutWriter()
	if err := ow.WriteOverview(result, filtered, cfg, time.Since(start)); err != nil {
		return err
	}
	recordRun(cfg, mgr, schema.OverviewSection, yr, len(result.Categories), start)
	return nil
}

// ExecuteCPI runs section 1: the latest-year CPI comparison per selected
// category, Canada vs the OECD average.
func ExecuteCPI(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !requireCategories(cfg) {
		return nil
	}
	ds, err := LoadDataset(cfg, mgr.GetDatasetStore())
	if err != nil {
		return err
	}

	yr := clampRange(cfg, ds)
	filtered := FilterSeries(ds.Series, cfg.Categories, yr)
	result := DeriveCPI(filtered, cfg.Categories)

	ow := outwriter.NewOutWriter()
	if err := ow.WriteCPI(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if cfg.ChartsDir != "" {
		paths, err := chartgen.RenderCPICharts(filtered, cfg.Categories, cfg.ChartsDir)
		reportCharts(paths, err)
	}
	recordRun(cfg, mgr, schema.CPISection, yr, len(result.Findings), start)
	return nil
}

// ExecuteExpenditure runs section 2: the expenditure share and growth
// comparison at the top of the selected year range.
func ExecuteExpenditure(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !requireCategories(cfg) {
		return nil
	}
	ds, err := LoadDataset(cfg, mgr.GetDatasetStore())
	if err != nil {
		return err
	}

	yr := clampRange(cfg, ds)
	filtered := FilterSeries(ds.Series, cfg.Categories, yr)
	result := DeriveExpenditure(filtered, cfg.Categories, yr)

	ow := outwriter.NewOutWriter()
	if err := ow.WriteExpenditure(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if cfg.ChartsDir != "" {
		paths, err := chartgen.RenderExpenditureCharts(result.Findings, cfg.ChartsDir)
		reportCharts(paths, err)
	}
	recordRun(cfg, mgr, schema.ExpenditureSection, yr, len(result.Findings), start)
	return nil
}

// ExecuteClusters runs section 3: cluster membership counts and Canada's
// peer countries. It needs no category selection.
func ExecuteClusters(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	ds, err := LoadDataset(cfg, mgr.GetDatasetStore())
	if err != nil {
		return err
	}

	yr := clampRange(cfg, ds)
	result := DeriveClusters(ds)

	ow := outwriter.NewOutWriter()
	if err := ow.WriteClusters(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if cfg.ChartsDir != "" {
		paths, err := chartgen.RenderClusterCountsChart(result.Counts, cfg.ChartsDir)
		reportCharts(paths, err)
	}
	recordRun(cfg, mgr, schema.ClustersSection, yr, len(result.Members), start)
	return nil
}

// ExecuteClusterCPI runs section 4: Canada's latest-year CPI against the
// cluster averages per selected category.
func ExecuteClusterCPI(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !requireCategories(cfg) {
		return nil
	}
	ds, err := LoadDataset(cfg, mgr.GetDatasetStore())
	if err != nil {
		return err
	}

	yr := clampRange(cfg, ds)
	filtered := FilterClusterSeries(ds.ClusterCPI, cfg.Categories, yr)
	result := DeriveClusterCPI(filtered, cfg.Categories)

	ow := outwriter.NewOutWriter()
	if err := ow.WriteClusterCPI(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if cfg.ChartsDir != "" {
		paths, err := chartgen.RenderClusterCPICharts(filtered, cfg.Categories, cfg.ChartsDir)
		reportCharts(paths, err)
	}
	recordRun(cfg, mgr, schema.ClusterCPISection, yr, len(result.Findings), start)
	return nil
}

// ExecuteClusterExpenditure runs section 5: Canada's latest-year expenditure
// share and growth against the cluster averages per selected category.
func ExecuteClusterExpenditure(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if !requireCategories(cfg) {
		return nil
	}
	ds, err := LoadDataset(cfg, mgr.GetDatasetStore())
	if err != nil {
		return err
	}

	yr := clampRange(cfg, ds)
	filtered := FilterClusterExpenditure(ds.ClusterExp, cfg.Categories, yr)
	result := DeriveClusterExpenditure(filtered, cfg.Categories)

	ow := outwriter.NewOutWriter()
	if err := ow.WriteClusterExpenditure(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if cfg.ChartsDir != "" && len(result.Findings) > 0 {
		paths, err := chartgen.RenderClusterExpCharts(filtered, cfg.Categories, result.Year, cfg.ChartsDir)
		reportCharts(paths, err)
	}
	recordRun(cfg, mgr, schema.ClusterExpSection, yr, len(result.Findings), start)
	return nil
}

// clampRange clamps the configured year range to the dataset bounds. An
// empty dataset leaves the configured range untouched; downstream filters
// then produce the empty-result notices.
func clampRange(cfg *contract.Config, ds *schema.Dataset) YearRange {
	minYear, ok := ds.MinYear()
	if !ok {
		return YearRange{From: cfg.FromYear, To: cfg.ToYear}
	}
	maxYear, _ := ds.MaxYear()
	return ClampYearRange(cfg.FromYear, cfg.ToYear, minYear, maxYear)
}

// requireCategories halts a category-driven section when no categories are
// selected. The halt is a warning, not an error: it mirrors an empty
// selection in an interactive filter.
func requireCategories(cfg *contract.Config) bool {
	if len(cfg.Categories) > 0 {
		return true
	}
	prefix := ""
	if cfg.UseEmojis {
		prefix = "⚠️  "
	}
	fmt.Fprintf(os.Stderr, "%sPlease select at least one COICOP category (--categories).\n", prefix)
	return false
}

// reportCharts logs the charts written and warns on render failure. Chart
// errors never fail the section; the findings were already printed.
func reportCharts(paths []string, err error) {
	for _, p := range paths {
		fmt.Fprintf(os.Stderr, "💾 Wrote chart to %s\n", p)
	}
	if err != nil {
		contract.LogWarn("rendering charts", err)
	}
}

// recordRun stores one section run in the history store. Recording failures
// are warnings: history is bookkeeping, not output.
func recordRun(cfg *contract.Config, mgr contract.CacheManager, section schema.Section, yr YearRange, findings int, start time.Time) {
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}
	record := schema.RunRecord{
		Section:    section,
		DataDir:    cfg.DataDir,
		Categories: strings.Join(cfg.Categories, ","),
		FromYear:   yr.From,
		ToYear:     yr.To,
		Findings:   findings,
		StartedAt:  start,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if _, err := store.RecordRun(record); err != nil {
		contract.LogWarn("recording run history", err)
	}
}
