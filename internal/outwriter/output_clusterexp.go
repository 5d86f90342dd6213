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

// PrintClusterExpResult outputs the Canada-vs-cluster expenditure findings,
// dispatching based on the output format configured.
func PrintClusterExpResult(result schema.ClusterExpResult, cfg *contract.Config, duration time.Duration) error {
	fmtShare, _ := createFormatters(contract.MaxPrecision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClusterExpCSV(w, result, fmtShare)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		records := parquet.ConvertClusterExpFindings(result.Findings)
		if err := parquet.WriteClusterExpFindingsParquet(records, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClusterExpTable(w, result, cfg, fmtShare, duration)
		}, "Wrote table")
	}
}

// writeClusterExpTable generates and writes the human-readable table.
func writeClusterExpTable(w io.Writer, result schema.ClusterExpResult, cfg *contract.Config, fmtShare func(*float64) string, duration time.Duration) error {
	if err := printNotices(w, result.Notices, cfg); err != nil {
		return err
	}
	if len(result.Findings) == 0 {
		return writeFooter(w, cfg, duration)
	}

	if _, err := fmt.Fprintf(w, "Cluster expenditure comparison for %d\n", result.Year); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "CAN Share", "CAN Growth", "Top Group", "Top Share"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	labelWidth := getMaxTableLabelWidth(cfg, 54)

	var data [][]string
	var sentences []string
	for _, f := range result.Findings {
		topGroup, topShare := "-", "-"
		if f.Complete {
			topGroup = schema.GroupLabel(f.MaxShare.Group)
			topShare = fmtShare(f.MaxShare.Value)
		}
		data = append(data, []string{
			contract.TruncateLabel(f.CategoryLabel, labelWidth),
			fmtShare(f.CanShare),
			fmtShare(f.CanGrowth),
			topGroup,
			topShare,
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

// writeClusterExpCSV writes the findings in CSV format.
func writeClusterExpCSV(w io.Writer, result schema.ClusterExpResult, fmtShare func(*float64) string) error {
	header := []string{
		"category",
		"category_label",
		"year",
		"can_exp_share",
		"can_exp_growth",
		"max_share_group",
		"max_share",
		"sentence",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range result.Findings {
			maxGroup, maxShare := "", "-"
			if f.Complete {
				maxGroup = f.MaxShare.Group
				maxShare = fmtShare(f.MaxShare.Value)
			}
			rec := []string{
				f.Category,
				f.CategoryLabel,
				fmt.Sprintf("%d", f.Year),
				fmtShare(f.CanShare),
				fmtShare(f.CanGrowth),
				maxGroup,
				maxShare,
				f.Sentence,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
