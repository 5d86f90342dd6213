package contract

import (
	"strings"
	"testing"

	"github.com/sperez1989/basket/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainRelation(t *testing.T) {
	assert.Equal(t, "above", GetPlainRelation(schema.RelationAbove))
	assert.Equal(t, "below", GetPlainRelation(schema.RelationBelow))
	assert.Equal(t, "similar", GetPlainRelation(schema.RelationSimilar))
	assert.Equal(t, "incomparable", GetPlainRelation(schema.RelationIncomparable))
}

func TestGetColorRelation(t *testing.T) {
	// Color codes may be stripped in test environments, but the relation word
	// must always survive.
	for _, r := range []schema.Relation{
		schema.RelationAbove,
		schema.RelationBelow,
		schema.RelationSimilar,
		schema.RelationIncomparable,
	} {
		assert.Contains(t, GetColorRelation(r), string(r))
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		maxWidth int
		expected string
	}{
		{name: "short label untouched", label: "Food", maxWidth: 10, expected: "Food"},
		{name: "exact width untouched", label: "Food", maxWidth: 4, expected: "Food"},
		{name: "long label truncated", label: "Food & Non-Alcoholic Beverages", maxWidth: 10, expected: "Food & ..."},
		{name: "tiny width untouched", label: "Food!", maxWidth: 3, expected: "Food!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateLabel(tt.label, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	truthy := []string{"yes", "YES", "true", "True", "1"}
	for _, s := range truthy {
		v, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}

	falsy := []string{"no", "NO", "false", "False", "0"}
	for _, s := range falsy {
		v, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}

	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "-", FormatFloat(nil, 2))
	assert.Equal(t, "3.14", FormatFloat(schema.Float64(3.14159), 2))
	assert.Equal(t, "3.1416", FormatFloat(schema.Float64(3.14159), 4))
	assert.Equal(t, "-42.57", FormatFloat(schema.Float64(-42.567), 2))
}

func TestGetDBFilePaths(t *testing.T) {
	cachePath := GetCacheDBFilePath()
	historyPath := GetHistoryDBFilePath()

	assert.True(t, strings.HasSuffix(cachePath, ".basket_cache.db"))
	assert.True(t, strings.HasSuffix(historyPath, ".basket_history.db"))
	assert.NotEqual(t, cachePath, historyPath)
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path means stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, "/dev/stdout", f.Name())
	})

	t.Run("path creates the file", func(t *testing.T) {
		path := t.TempDir() + "/out.csv"
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, path, f.Name())
	})
}
