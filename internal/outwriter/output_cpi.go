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

// PrintCPIResult outputs the CPI comparison findings, dispatching based on
// the output format configured.
func PrintCPIResult(result schema.CPIResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCPICSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		records := parquet.ConvertCPIFindings(result.Findings)
		if err := parquet.WriteCPIFindingsParquet(records, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCPITable(w, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeCPITable generates and writes the human-readable table.
func writeCPITable(w io.Writer, result schema.CPIResult, cfg *contract.Config, fmtFloat func(*float64) string, duration time.Duration) error {
	if err := printNotices(w, result.Notices, cfg); err != nil {
		return err
	}
	if len(result.Findings) == 0 {
		return writeFooter(w, cfg, duration)
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Year", "Canada CPI", "OECD CPI", "Relation"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// Fixed columns leave the rest of the terminal to the category label.
	labelWidth := getMaxTableLabelWidth(cfg, 42)

	var data [][]string
	var sentences []string
	for _, f := range result.Findings {
		data = append(data, []string{
			contract.TruncateLabel(f.CategoryLabel, labelWidth),
			fmt.Sprintf("%d", f.Year),
			fmtFloat(f.CanCPI),
			fmtFloat(f.OECDCPI),
			relationCell(f.Relation, cfg),
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

// writeCPICSV writes the findings in CSV format.
func writeCPICSV(w io.Writer, result schema.CPIResult, fmtFloat func(*float64) string) error {
	header := []string{"category", "category_label", "year", "can_cpi", "oecd_cpi", "relation", "sentence"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range result.Findings {
			rec := []string{
				f.Category,
				f.CategoryLabel,
				fmt.Sprintf("%d", f.Year),
				fmtFloat(f.CanCPI),
				fmtFloat(f.OECDCPI),
				contract.GetPlainRelation(f.Relation),
				f.Sentence,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeFooter prints the shared run summary line after a table.
func writeFooter(w io.Writer, cfg *contract.Config, duration time.Duration) error {
	_, err := fmt.Fprintf(w, "Completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}
