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

// PrintExpenditureResult outputs the expenditure comparison findings,
// dispatching based on the output format configured.
func PrintExpenditureResult(result schema.ExpenditureResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	fmtShare, _ := createFormatters(contract.MaxPrecision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExpenditureCSV(w, result, fmtShare)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		records := parquet.ConvertExpenditureFindings(result.Findings)
		if err := parquet.WriteExpenditureFindingsParquet(records, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExpenditureTable(w, result, cfg, fmtFloat, fmtShare, duration)
		}, "Wrote table")
	}
}

// writeExpenditureTable generates and writes the human-readable table.
// Shares render at the maximum precision because they are small fractions.
func writeExpenditureTable(w io.Writer, result schema.ExpenditureResult, cfg *contract.Config, fmtFloat, fmtShare func(*float64) string, duration time.Duration) error {
	if err := printNotices(w, result.Notices, cfg); err != nil {
		return err
	}
	if len(result.Findings) == 0 {
		return writeFooter(w, cfg, duration)
	}

	if _, err := fmt.Fprintf(w, "Expenditure comparison for %d\n", result.Year); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "CAN Share", "OECD Share", "Share Rel", "CAN Growth", "OECD Growth", "Growth Rel"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := getMaxTableLabelWidth(cfg, 68)

	var data [][]string
	var sentences []string
	for _, f := range result.Findings {
		data = append(data, []string{
			contract.TruncateLabel(f.CategoryLabel, labelWidth),
			fmtShare(f.CanShare),
			fmtShare(f.OECDShare),
			relationCell(f.ShareRelation, cfg),
			fmtFloat(f.CanGrowth),
			fmtFloat(f.OECDGrowth),
			relationCell(f.GrowthRelation, cfg),
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

// writeExpenditureCSV writes the findings in CSV format.
func writeExpenditureCSV(w io.Writer, result schema.ExpenditureResult, fmtShare func(*float64) string) error {
	header := []string{
		"category",
		"category_label",
		"year",
		"can_exp_share",
		"oecd_exp_share",
		"share_relation",
		"can_exp_growth",
		"oecd_exp_growth",
		"growth_relation",
		"sentence",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range result.Findings {
			rec := []string{
				f.Category,
				f.CategoryLabel,
				fmt.Sprintf("%d", f.Year),
				fmtShare(f.CanShare),
				fmtShare(f.OECDShare),
				contract.GetPlainRelation(f.ShareRelation),
				fmtShare(f.CanGrowth),
				fmtShare(f.OECDGrowth),
				contract.GetPlainRelation(f.GrowthRelation),
				f.Sentence,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
