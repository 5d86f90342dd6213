package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularyWord(t *testing.T) {
	v := Vocabulary{Greater: "more", Less: "less", Equal: "same"}

	tests := []struct {
		name     string
		relation Relation
		expected string
		ok       bool
	}{
		{name: "above", relation: RelationAbove, expected: "more", ok: true},
		{name: "below", relation: RelationBelow, expected: "less", ok: true},
		{name: "similar", relation: RelationSimilar, expected: "same", ok: true},
		{name: "incomparable has no wording", relation: RelationIncomparable, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, ok := v.Word(tt.relation)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, word)
		})
	}
}

func TestValidSets(t *testing.T) {
	assert.Contains(t, ValidOutputModes, TextOut)
	assert.Contains(t, ValidOutputModes, CSVOut)
	assert.Contains(t, ValidOutputModes, JSONOut)
	assert.Contains(t, ValidOutputModes, ParquetOut)
	assert.NotContains(t, ValidOutputModes, OutputMode("xml"))

	assert.Contains(t, ValidDatabaseBackends, SQLiteBackend)
	assert.Contains(t, ValidDatabaseBackends, NoneBackend)
	assert.NotContains(t, ValidDatabaseBackends, DatabaseBackend("redis"))

	assert.Len(t, AllSections, 6)
}

func TestDatasetYearBounds(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		ds := &Dataset{}
		_, ok := ds.MinYear()
		assert.False(t, ok)
		_, ok = ds.MaxYear()
		assert.False(t, ok)
	})

	t.Run("unsorted series", func(t *testing.T) {
		ds := &Dataset{Series: []SeriesRow{{Year: 2019}, {Year: 2015}, {Year: 2023}}}
		minYear, ok := ds.MinYear()
		require.True(t, ok)
		assert.Equal(t, 2015, minYear)
		maxYear, ok := ds.MaxYear()
		require.True(t, ok)
		assert.Equal(t, 2023, maxYear)
	})
}

func TestDatasetCategories(t *testing.T) {
	ds := &Dataset{Series: []SeriesRow{
		{Year: 2020, Category: "CP04"},
		{Year: 2020, Category: "CP01"},
		{Year: 2021, Category: "CP04"},
		{Year: 2021, Category: ""},
	}}
	assert.Equal(t, []string{"CP01", "CP04"}, ds.Categories())
}

func TestDatasetCountryCount(t *testing.T) {
	ds := &Dataset{Clusters: []ClusterAssignment{
		{Country: "CAN", Cluster: 0},
		{Country: "SWE", Cluster: 1},
		{Country: "CAN", Cluster: 0}, // duplicate rows count once
	}}
	assert.Equal(t, 2, ds.CountryCount())
}

func TestCanadaCluster(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		ds := &Dataset{Clusters: []ClusterAssignment{
			{Country: "SWE", Cluster: 1},
			{Country: "CAN", Cluster: 2},
		}}
		cluster, ok := ds.CanadaCluster()
		require.True(t, ok)
		assert.Equal(t, 2, cluster)
	})

	t.Run("absent", func(t *testing.T) {
		ds := &Dataset{Clusters: []ClusterAssignment{{Country: "SWE", Cluster: 1}}}
		_, ok := ds.CanadaCluster()
		assert.False(t, ok)
	})
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Food & Non-Alcoholic Beverages", CategoryLabel("CP01"))
	assert.Equal(t, "CP999", CategoryLabel("CP999")) // unknown codes fall back raw

	assert.Equal(t, "Canada", CountryName("CAN"))
	assert.Equal(t, "XYZ", CountryName("XYZ"))

	assert.Equal(t, "Sweden (SWE)", CountryDisplay("SWE"))
	assert.Equal(t, "XYZ (XYZ)", CountryDisplay("XYZ"))
}

func TestGroupClusterNumber(t *testing.T) {
	n, ok := GroupClusterNumber("Cluster 3")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = GroupClusterNumber(CanadaGroup)
	assert.False(t, ok)

	_, ok = GroupClusterNumber("Cluster x")
	assert.False(t, ok)

	_, ok = GroupClusterNumber("Cluster -1")
	assert.False(t, ok)
}

func TestClusterColorHex(t *testing.T) {
	assert.Equal(t, ClusterColorsHex[0], ClusterColorHex(0))
	assert.Equal(t, ClusterColorsHex[1], ClusterColorHex(1))
	// Ids past the palette wrap around.
	assert.Equal(t, ClusterColorsHex[0], ClusterColorHex(len(ClusterColorsHex)))
	// Negative ids never panic.
	assert.Equal(t, ClusterColorsHex[1], ClusterColorHex(-1))
}
