package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sperez1989/basket/internal/contract"
	"github.com/sperez1989/basket/internal/parquet"
	"github.com/sperez1989/basket/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintClustersResult outputs the cluster membership findings, dispatching
// based on the output format configured.
func PrintClustersResult(result schema.ClustersResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClustersCSV(w, result)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		records := parquet.ConvertClusterMembers(result.Members)
		if err := parquet.WriteClusterMembersParquet(records, cfg.OutputFile); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClustersTable(w, result, cfg, duration)
		}, "Wrote table")
	}
}

// writeClustersTable generates and writes the human-readable tables: one for
// the per-cluster counts, one for the full membership.
func writeClustersTable(w io.Writer, result schema.ClustersResult, cfg *contract.Config, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Countries clustered: %d\n", result.CountryCount); err != nil {
		return err
	}

	counts := tablewriter.NewWriter(w)
	counts.Header([]string{"Cluster", "Countries"})
	counts.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	var countData [][]string
	for _, c := range result.Counts {
		countData = append(countData, []string{
			strconv.Itoa(c.Cluster),
			strconv.Itoa(c.Countries),
		})
	}
	if err := counts.Bulk(countData); err != nil {
		return err
	}
	if err := counts.Render(); err != nil {
		return err
	}

	members := tablewriter.NewWriter(w)
	members.Header([]string{"Cluster", "Code", "Country"})
	members.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})
	labelWidth := getMaxTableLabelWidth(cfg, 24)
	var memberData [][]string
	for _, m := range result.Members {
		memberData = append(memberData, []string{
			strconv.Itoa(m.Cluster),
			m.Country,
			contract.TruncateLabel(m.CountryName, labelWidth),
		})
	}
	if err := members.Bulk(memberData); err != nil {
		return err
	}
	if err := members.Render(); err != nil {
		return err
	}

	if result.CanadaPresent && len(result.Peers) > 0 {
		if _, err := fmt.Fprintf(w, "Countries in the same cluster as Canada (cluster %d):\n", result.CanadaCluster); err != nil {
			return err
		}
		for _, peer := range result.Peers {
			if _, err := fmt.Fprintf(w, "  - %s\n", peer); err != nil {
				return err
			}
		}
	}

	if err := printSentences(w, []string{result.Sentence}); err != nil {
		return err
	}
	return writeFooter(w, cfg, duration)
}

// writeClustersCSV writes the membership table in CSV format.
func writeClustersCSV(w io.Writer, result schema.ClustersResult) error {
	header := []string{"cluster", "country", "country_name"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, m := range result.Members {
			rec := []string{
				strconv.Itoa(m.Cluster),
				m.Country,
				m.CountryName,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
