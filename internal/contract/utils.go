package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sperez1989/basket/schema"
)

// Color variables for console output.
var (
	AboveColor   = color.New(color.FgRed, color.Bold) // Canada running hotter than the benchmark.
	BelowColor   = color.New(color.FgGreen)           // Canada running cooler than the benchmark.
	SimilarColor = color.New(color.FgYellow)          // Canada in line with the benchmark.
	MissingColor = color.New(color.FgWhite, color.Faint)
)

// GetPlainRelation returns the plain text form of a relation. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainRelation(r schema.Relation) string {
	return string(r)
}

// GetColorRelation returns a colored relation word for console output.
func GetColorRelation(r schema.Relation) string {
	text := GetPlainRelation(r)
	switch r {
	case schema.RelationAbove:
		return AboveColor.Sprint(text)
	case schema.RelationBelow:
		return BelowColor.Sprint(text)
	case schema.RelationSimilar:
		return SimilarColor.Sprint(text)
	default: // incomparable
		return MissingColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for dataset
// cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".basket_cache.db"
	}
	return filepath.Join(homeDir, ".basket_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run
// history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".basket_history.db"
	}
	return filepath.Join(homeDir, ".basket_history.db")
}

// TruncateLabel truncates a display label to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 so there is space for both the
// "..." and at least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// FormatFloat renders a nullable float at the given precision, with a dash
// for missing values so tables stay aligned.
func FormatFloat(v *float64, precision int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", precision, *v)
}
