package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sperez1989/basket/internal/contract"
	"github.com/sperez1989/basket/internal/parquet"
	"github.com/sperez1989/basket/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintOverviewResult outputs the dataset overview, dispatching based on the
// output format configured. CSV and Parquet export the filtered time series
// rows rather than the summary, so the overview doubles as a data exporter.
func PrintOverviewResult(result schema.OverviewResult, series []schema.SeriesRow, cfg *contract.Config, duration time.Duration) error {
	fmtShare, _ := createFormatters(contract.MaxPrecision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeriesCSV(w, series, fmtShare)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		records := parquet.ConvertSeriesRows(series)
		if err := parquet.WriteSeriesParquet(records, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOverviewTable(w, result, cfg, duration)
		}, "Wrote table")
	}
}

// writeOverviewTable generates and writes the human-readable summary.
func writeOverviewTable(w io.Writer, result schema.OverviewResult, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Countries in OECD sample: %d\n", result.CountryCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Years covered: %d to %d\n", result.MinYear, result.MaxYear); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Series rows: %d, cluster assignments: %d\n", result.SeriesRows, result.ClusterRows); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Code", "Category"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	labelWidth := getMaxTableLabelWidth(cfg, 14)
	var data [][]string
	for _, c := range result.Categories {
		data = append(data, []string{c.Code, contract.TruncateLabel(c.Label, labelWidth)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeFooter(w, cfg, duration)
}

// writeSeriesCSV writes the filtered time series rows in CSV format.
func writeSeriesCSV(w io.Writer, series []schema.SeriesRow, fmtShare func(*float64) string) error {
	header := []string{
		"year",
		"category",
		"can_cpi",
		"oecd_cpi",
		"can_exp_share",
		"oecd_exp_share",
		"can_exp_growth",
		"oecd_exp_growth",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range series {
			rec := []string{
				fmt.Sprintf("%d", r.Year),
				r.Category,
				fmtShare(r.CanCPI),
				fmtShare(r.OECDCPI),
				fmtShare(r.CanExpShare),
				fmtShare(r.OECDExpShare),
				fmtShare(r.CanExpGrowth),
				fmtShare(r.OECDExpGrowth),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
