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

// PrintClusterCPIResult outputs the Canada-vs-cluster CPI findings,
// dispatching based on the output format configured.
func PrintClusterCPIResult(result schema.ClusterCPIResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClusterCPICSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		records := parquet.ConvertClusterCPIFindings(result.Findings)
		if err := parquet.WriteClusterCPIFindingsParquet(records, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClusterCPITable(w, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeClusterCPITable generates and writes the human-readable table.
func writeClusterCPITable(w io.Writer, result schema.ClusterCPIResult, cfg *contract.Config, fmtFloat func(*float64) string, duration time.Duration) error {
	if err := printNotices(w, result.Notices, cfg); err != nil {
		return err
	}
	if len(result.Findings) == 0 {
		return writeFooter(w, cfg, duration)
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Year", "Canada CPI", "Top Group", "Top CPI"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := getMaxTableLabelWidth(cfg, 48)

	var data [][]string
	var sentences []string
	for _, f := range result.Findings {
		topGroup, topCPI := "-", "-"
		if f.Complete {
			topGroup = schema.GroupLabel(f.Max.Group)
			topCPI = fmtFloat(f.Max.Value)
		}
		data = append(data, []string{
			contract.TruncateLabel(f.CategoryLabel, labelWidth),
			fmt.Sprintf("%d", f.Year),
			fmtFloat(f.CanCPI),
			topGroup,
			topCPI,
		})
		sentences = append(sentences, f.Sentence)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if err := printSentences(w, sentences); err != nil {
		return err
	}
	return writeFooter(w, cfg, duration)
}

// writeClusterCPICSV writes the findings in CSV format.
func writeClusterCPICSV(w io.Writer, result schema.ClusterCPIResult, fmtFloat func(*float64) string) error {
	header := []string{"category", "category_label", "year", "can_cpi", "max_group", "max_cpi", "sentence"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range result.Findings {
			maxGroup, maxCPI := "", "-"
			if f.Complete {
				maxGroup = f.Max.Group
				maxCPI = fmtFloat(f.Max.Value)
			}
			rec := []string{
				f.Category,
				f.CategoryLabel,
				fmt.Sprintf("%d", f.Year),
				fmtFloat(f.CanCPI),
				maxGroup,
				maxCPI,
				f.Sentence,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
