// Package parquet provides data structures and functions for exporting
// dashboard findings and run history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/sperez1989/basket/schema"
)

// SeriesObservation is one Canada-vs-OECD time series row.
// This struct maps to the canada_vs_oecd_timeseries input table.
type SeriesObservation struct {
	Year     int32  `parquet:"year,snappy"`
	Category string `parquet:"category,snappy"`

	// CPI values are year-over-year percentage changes (nullable).
	CanCPI  *float64 `parquet:"can_cpi,optional,snappy"`
	OECDCPI *float64 `parquet:"oecd_cpi,optional,snappy"`

	// Expenditure shares are fractions of total household expenditure (nullable).
	CanExpShare  *float64 `parquet:"can_exp_share,optional,snappy"`
	OECDExpShare *float64 `parquet:"oecd_exp_share,optional,snappy"`

	// Expenditure growth values are year-over-year changes (nullable).
	CanExpGrowth  *float64 `parquet:"can_exp_growth,optional,snappy"`
	OECDExpGrowth *float64 `parquet:"oecd_exp_growth,optional,snappy"`
}

// CPIFindingRecord is one latest-year CPI comparison finding.
type CPIFindingRecord struct {
	Category      string   `parquet:"category,snappy"`
	CategoryLabel string   `parquet:"category_label,snappy"`
	Year          int32    `parquet:"year,snappy"`
	CanCPI        *float64 `parquet:"can_cpi,optional,snappy"`
	OECDCPI       *float64 `parquet:"oecd_cpi,optional,snappy"`
	Relation      string   `parquet:"relation,snappy"`
	Sentence      string   `parquet:"sentence,snappy"`
}

// ExpenditureFindingRecord is one latest-year expenditure comparison finding.
type ExpenditureFindingRecord struct {
	Category       string   `parquet:"category,snappy"`
	CategoryLabel  string   `parquet:"category_label,snappy"`
	Year           int32    `parquet:"year,snappy"`
	CanShare       *float64 `parquet:"can_exp_share,optional,snappy"`
	OECDShare      *float64 `parquet:"oecd_exp_share,optional,snappy"`
	ShareRelation  string   `parquet:"share_relation,snappy"`
	CanGrowth      *float64 `parquet:"can_exp_growth,optional,snappy"`
	OECDGrowth     *float64 `parquet:"oecd_exp_growth,optional,snappy"`
	GrowthRelation string   `parquet:"growth_relation,snappy"`
	Sentence       string   `parquet:"sentence,snappy"`
}

// ClusterMemberRecord is one country-to-cluster assignment.
type ClusterMemberRecord struct {
	Country     string `parquet:"country,snappy"`
	CountryName string `parquet:"country_name,snappy"`
	Cluster     int32  `parquet:"cluster,snappy"`
}

// ClusterCPIFindingRecord is one Canada-vs-cluster CPI finding.
type ClusterCPIFindingRecord struct {
	Category      string   `parquet:"category,snappy"`
	CategoryLabel string   `parquet:"category_label,snappy"`
	Year          int32    `parquet:"year,snappy"`
	CanCPI        *float64 `parquet:"can_cpi,optional,snappy"`
	MaxGroup      *string  `parquet:"max_group,optional,snappy"`
	MaxCPI        *float64 `parquet:"max_cpi,optional,snappy"`
	Sentence      string   `parquet:"sentence,snappy"`
}

// ClusterExpFindingRecord is one Canada-vs-cluster expenditure finding.
type ClusterExpFindingRecord struct {
	Category      string   `parquet:"category,snappy"`
	CategoryLabel string   `parquet:"category_label,snappy"`
	Year          int32    `parquet:"year,snappy"`
	CanShare      *float64 `parquet:"can_exp_share,optional,snappy"`
	CanGrowth     *float64 `parquet:"can_exp_growth,optional,snappy"`
	MaxGroup      *string  `parquet:"max_share_group,optional,snappy"`
	MaxShare      *float64 `parquet:"max_share,optional,snappy"`
	Sentence      string   `parquet:"sentence,snappy"`
}

// SectionRun represents a single recorded section run with metadata.
// This struct maps to the basket_section_runs database table.
type SectionRun struct {
	RunID      int64     `parquet:"run_id,snappy"`
	Section    string    `parquet:"section,snappy"`
	DataDir    string    `parquet:"data_dir,snappy"`
	Categories string    `parquet:"categories,snappy"`
	FromYear   int32     `parquet:"from_year,snappy"`
	ToYear     int32     `parquet:"to_year,snappy"`
	Findings   int32     `parquet:"findings,snappy"`
	StartedAt  time.Time `parquet:"started_at,snappy"`
	DurationMs int64     `parquet:"duration_ms,snappy"`
}

// writeParquetFile writes records to a Parquet file using struct schema
// inference from the record type's tags.
func writeParquetFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSeriesParquet writes the filtered time series rows to a Parquet file.
func WriteSeriesParquet(data []SeriesObservation, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteCPIFindingsParquet writes CPI comparison findings to a Parquet file.
func WriteCPIFindingsParquet(data []CPIFindingRecord, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteExpenditureFindingsParquet writes expenditure comparison findings to a Parquet file.
func WriteExpenditureFindingsParquet(data []ExpenditureFindingRecord, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteClusterMembersParquet writes cluster membership rows to a Parquet file.
func WriteClusterMembersParquet(data []ClusterMemberRecord, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteClusterCPIFindingsParquet writes Canada-vs-cluster CPI findings to a Parquet file.
func WriteClusterCPIFindingsParquet(data []ClusterCPIFindingRecord, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteClusterExpFindingsParquet writes Canada-vs-cluster expenditure findings to a Parquet file.
func WriteClusterExpFindingsParquet(data []ClusterExpFindingRecord, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// WriteSectionRunsParquet writes recorded section runs to a Parquet file.
func WriteSectionRunsParquet(data []SectionRun, outputPath string) error {
	return writeParquetFile(data, outputPath)
}

// ConvertSeriesRows converts schema.SeriesRow to SeriesObservation for Parquet export.
func ConvertSeriesRows(rows []schema.SeriesRow) []SeriesObservation {
	result := make([]SeriesObservation, len(rows))
	for i, r := range rows {
		result[i] = SeriesObservation{
			Year:          int32(r.Year),
			Category:      r.Category,
			CanCPI:        r.CanCPI,
			OECDCPI:       r.OECDCPI,
			CanExpShare:   r.CanExpShare,
			OECDExpShare:  r.OECDExpShare,
			CanExpGrowth:  r.CanExpGrowth,
			OECDExpGrowth: r.OECDExpGrowth,
		}
	}
	return result
}

// ConvertCPIFindings converts schema.CPIFinding to CPIFindingRecord for Parquet export.
func ConvertCPIFindings(findings []schema.CPIFinding) []CPIFindingRecord {
	result := make([]CPIFindingRecord, len(findings))
	for i, f := range findings {
		result[i] = CPIFindingRecord{
			Category:      f.Category,
			CategoryLabel: f.CategoryLabel,
			Year:          int32(f.Year),
			CanCPI:        f.CanCPI,
			OECDCPI:       f.OECDCPI,
			Relation:      string(f.Relation),
			Sentence:      f.Sentence,
		}
	}
	return result
}

// ConvertExpenditureFindings converts schema.ExpenditureFinding to ExpenditureFindingRecord for Parquet export.
func ConvertExpenditureFindings(findings []schema.ExpenditureFinding) []ExpenditureFindingRecord {
	result := make([]ExpenditureFindingRecord, len(findings))
	for i, f := range findings {
		result[i] = ExpenditureFindingRecord{
			Category:       f.Category,
			CategoryLabel:  f.CategoryLabel,
			Year:           int32(f.Year),
			CanShare:       f.CanShare,
			OECDShare:      f.OECDShare,
			ShareRelation:  string(f.ShareRelation),
			CanGrowth:      f.CanGrowth,
			OECDGrowth:     f.OECDGrowth,
			GrowthRelation: string(f.GrowthRelation),
			Sentence:       f.Sentence,
		}
	}
	return result
}

// ConvertClusterMembers converts schema.ClusterMember to ClusterMemberRecord for Parquet export.
func ConvertClusterMembers(members []schema.ClusterMember) []ClusterMemberRecord {
	result := make([]ClusterMemberRecord, len(members))
	for i, m := range members {
		result[i] = ClusterMemberRecord{
			Country:     m.Country,
			CountryName: m.CountryName,
			Cluster:     int32(m.Cluster),
		}
	}
	return result
}

// ConvertClusterCPIFindings converts schema.ClusterCPIFinding to ClusterCPIFindingRecord for Parquet export.
func ConvertClusterCPIFindings(findings []schema.ClusterCPIFinding) []ClusterCPIFindingRecord {
	result := make([]ClusterCPIFindingRecord, len(findings))
	for i, f := range findings {
		rec := ClusterCPIFindingRecord{
			Category:      f.Category,
			CategoryLabel: f.CategoryLabel,
			Year:          int32(f.Year),
			CanCPI:        f.CanCPI,
			Sentence:      f.Sentence,
		}
		if f.Complete {
			group := f.Max.Group
			rec.MaxGroup = &group
			rec.MaxCPI = f.Max.Value
		}
		result[i] = rec
	}
	return result
}

// ConvertClusterExpFindings converts schema.ClusterExpFinding to ClusterExpFindingRecord for Parquet export.
func ConvertClusterExpFindings(findings []schema.ClusterExpFinding) []ClusterExpFindingRecord {
	result := make([]ClusterExpFindingRecord, len(findings))
	for i, f := range findings {
		rec := ClusterExpFindingRecord{
			Category:      f.Category,
			CategoryLabel: f.CategoryLabel,
			Year:          int32(f.Year),
			CanShare:      f.CanShare,
			CanGrowth:     f.CanGrowth,
			Sentence:      f.Sentence,
		}
		if f.Complete {
			group := f.MaxShare.Group
			rec.MaxGroup = &group
			rec.MaxShare = f.MaxShare.Value
		}
		result[i] = rec
	}
	return result
}

// ConvertRunRecords converts schema.RunRecord to SectionRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []SectionRun {
	result := make([]SectionRun, len(records))
	for i, r := range records {
		result[i] = SectionRun{
			RunID:      r.ID,
			Section:    string(r.Section),
			DataDir:    r.DataDir,
			Categories: r.Categories,
			FromYear:   int32(r.FromYear),
			ToYear:     int32(r.ToYear),
			Findings:   int32(r.Findings),
			StartedAt:  r.StartedAt,
			DurationMs: r.DurationMs,
		}
	}
	return result
}
