package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/sperez1989/basket/internal/contract"
	"github.com/sperez1989/basket/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cpiFixture builds a two-category result with one incomparable row.
func cpiFixture() schema.CPIResult {
	return schema.CPIResult{
		Findings: []schema.CPIFinding{
			{
				Category:      "CP01",
				CategoryLabel: "Food & Non-Alcoholic Beverages",
				Year:          2022,
				CanCPI:        schema.Float64(118.53),
				OECDCPI:       schema.Float64(120.11),
				Relation:      schema.RelationBelow,
				Sentence:      "In 2022, Canada's CPI for Food & Non-Alcoholic Beverages is below the OECD average (118.53% vs 120.11%).",
			},
			{
				Category:      "CP06",
				CategoryLabel: "CP06",
				Year:          2021,
				Relation:      schema.RelationIncomparable,
				Sentence:      "In 2021, CPI for CP06 cannot be directly compared due to missing data.",
			},
		},
	}
}

// testConfig returns a plain-output config suitable for buffer assertions.
func testConfig() *contract.Config {
	return &contract.Config{
		Output:       schema.TextOut,
		Precision:    contract.DefaultPrecision,
		Width:        120,
		CacheBackend: schema.SQLiteBackend,
		UseEmojis:    false,
		UseColors:    false,
	}
}

func TestWriteCPITable(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)

	require.NoError(t, writeCPITable(&buf, cpiFixture(), cfg, fmtFloat, 5*time.Millisecond))
	out := buf.String()

	assert.Contains(t, out, "Food & Non-Alcoholic Beverages")
	assert.Contains(t, out, "118.53")
	assert.Contains(t, out, "below")
	assert.Contains(t, out, "incomparable")
	// Missing scalars render as dashes, never zeros.
	assert.NotContains(t, out, "0.00")
	// Sentences follow the table.
	assert.Contains(t, out, "cannot be directly compared")
	// Footer names the cache backend.
	assert.Contains(t, out, "Cache backend: sqlite")
}

func TestWriteCPITableNoticesOnly(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	fmtFloat, _ := createFormatters(cfg.Precision)

	result := schema.CPIResult{Notices: []string{"No CPI data available for CP06 in the selected year range."}}
	require.NoError(t, writeCPITable(&buf, result, cfg, fmtFloat, time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "No CPI data available for CP06")
	assert.Contains(t, out, "Completed in")
	// Only the notice and the footer, no table.
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 2)
}

func TestWriteCPICSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)

	require.NoError(t, writeCPICSV(&buf, cpiFixture(), fmtFloat))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"category", "category_label", "year", "can_cpi", "oecd_cpi", "relation", "sentence"}, records[0])
	assert.Equal(t, "CP01", records[1][0])
	assert.Equal(t, "118.53", records[1][3])
	assert.Equal(t, "below", records[1][5])
	assert.Equal(t, "-", records[2][3])
	assert.Equal(t, "incomparable", records[2][5])
}

func TestPrintCPIResultParquetNeedsFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = ""

	err := PrintCPIResult(cpiFixture(), cfg, time.Millisecond)
	assert.ErrorIs(t, err, errParquetNeedsFile)
}

func TestPrintCPIResultJSONToFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = t.TempDir() + "/cpi.json"

	require.NoError(t, PrintCPIResult(cpiFixture(), cfg, time.Millisecond))
	assert.FileExists(t, cfg.OutputFile)
}

func TestPrintCPIResultParquetToFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = t.TempDir() + "/cpi.parquet"

	require.NoError(t, PrintCPIResult(cpiFixture(), cfg, time.Millisecond))
	assert.FileExists(t, cfg.OutputFile)
}
