package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sperez1989/basket/internal/contract"
	"github.com/sperez1989/basket/schema"
	"golang.org/x/term"
)

// errParquetNeedsFile is returned when parquet output is requested on stdout.
var errParquetNeedsFile = errors.New("parquet output requires --output-file")

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(*float64) string, intFmt string) {
	intFmt = "%d"
	fmtFloat = func(v *float64) string {
		return contract.FormatFloat(v, precision)
	}
	return fmtFloat, intFmt
}

// relationCell renders a relation word for a table cell, colored when the
// config allows it.
func relationCell(r schema.Relation, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorRelation(r)
	}
	return contract.GetPlainRelation(r)
}

// printNotices prints section notices ahead of any findings. Notices signal
// an empty filter result, not an error.
func printNotices(w io.Writer, notices []string, cfg *contract.Config) error {
	prefix := ""
	if cfg.UseEmojis {
		prefix = "⚠️  "
	}
	for _, n := range notices {
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, n); err != nil {
			return err
		}
	}
	return nil
}

// printSentences prints the per-category insight sentences after a table.
func printSentences(w io.Writer, sentences []string) error {
	for _, s := range sentences {
		if _, err := fmt.Fprintf(w, "%s\n", s); err != nil {
			return err
		}
	}
	return nil
}

// getMaxTableLabelWidth calculates the maximum width for category and country
// labels in table output based on terminal width.
func getMaxTableLabelWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve generous space for table borders, separators, and padding
	fixedWidth += 20

	available := termWidth - fixedWidth
	if available < 12 {
		// Minimum reasonable label width
		return 12
	}
	if available > 60 {
		// Maximum label width to prevent overly wide tables
		return 60
	}
	return available
}
