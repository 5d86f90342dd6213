package core

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/sperez1989/basket/internal/contract"
	"github.com/sperez1989/basket/schema"
)

// Input file names, fixed relative to the data directory.
const (
	SeriesFile        = "canada_vs_oecd_timeseries.csv"
	ClustersFile      = "cluster_results.csv"
	ClusterSeriesFile = "cluster_timeseries.csv"
	ClusterExpFile    = "cluster_expenditure.csv"
)

// Required columns per file. A missing column is fatal for the whole view.
var (
	SeriesColumns        = []string{"year", "category", "can_cpi", "oecd_cpi", "can_exp_share", "oecd_exp_share", "can_exp_growth", "oecd_exp_growth"}
	ClustersColumns      = []string{"country", "cluster"}
	ClusterSeriesColumns = []string{"year", "category", "group", "avg_cpi"}
	ClusterExpColumns    = []string{"year", "category", "group", "avg_exp_share", "avg_exp_growth"}
)

// datasetCacheKey prefixes cache keys so a future layout change can coexist
// with old entries.
const datasetCacheKey = "dataset:"

// LoadDataset reads the four input files into an immutable Dataset,
// consulting the cache first. The two cluster files are optional (the
// leaner source revisions ship without them); the Canada-vs-OECD series and
// the cluster assignments are mandatory.
func LoadDataset(cfg *contract.Config, store contract.CacheStore) (*schema.Dataset, error) {
	stamp, err := sourceStamp(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	key := datasetCacheKey + cfg.DataDir
	if ds, ok := lookupCached(store, key, stamp); ok {
		return ds, nil
	}

	ds, err := parseDataset(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	ds.SourceStamp = stamp

	if store != nil {
		if blob, err := json.Marshal(ds); err == nil {
			_ = store.Set(key, blob, contract.DatasetCacheVersion, time.Now().Unix())
		}
	}
	return ds, nil
}

// lookupCached returns the cached dataset when the blob version and source
// stamp both still match.
func lookupCached(store contract.CacheStore, key, stamp string) (*schema.Dataset, bool) {
	if store == nil {
		return nil, false
	}
	blob, version, _, err := store.Get(key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			contract.LogWarn("dataset cache lookup failed", err)
		}
		return nil, false
	}
	if version != contract.DatasetCacheVersion {
		return nil, false
	}
	var ds schema.Dataset
	if err := json.Unmarshal(blob, &ds); err != nil {
		return nil, false
	}
	if ds.SourceStamp != stamp {
		return nil, false // source files changed since the cache entry
	}
	return &ds, true
}

// sourceStamp fingerprints the input files by name, size and mtime. Missing
// optional files contribute an "absent" marker so adding one later
// invalidates the cache.
func sourceStamp(dir string) (string, error) {
	var sb strings.Builder
	for _, name := range []string{SeriesFile, ClustersFile, ClusterSeriesFile, ClusterExpFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(&sb, "%s:absent;", name)
				continue
			}
			return "", fmt.Errorf("cannot stat %s: %w", name, err)
		}
		fmt.Fprintf(&sb, "%s:%d:%d;", name, info.Size(), info.ModTime().UnixNano())
	}
	return sb.String(), nil
}

// parseDataset reads and converts all input files.
func parseDataset(dir string) (*schema.Dataset, error) {
	ds := &schema.Dataset{
		LoadedAt:  time.Now(),
		SourceDir: dir,
	}

	seriesTable, err := readTable(filepath.Join(dir, SeriesFile), SeriesColumns)
	if err != nil {
		return nil, err
	}
	if ds.Series, err = convertSeries(seriesTable); err != nil {
		return nil, fmt.Errorf("%s: %w", SeriesFile, err)
	}

	clustersTable, err := readTable(filepath.Join(dir, ClustersFile), ClustersColumns)
	if err != nil {
		return nil, err
	}
	if ds.Clusters, err = convertClusters(clustersTable); err != nil {
		return nil, fmt.Errorf("%s: %w", ClustersFile, err)
	}

	// Optional tables: absent in the leaner source revisions.
	clusterSeriesPath := filepath.Join(dir, ClusterSeriesFile)
	if _, statErr := os.Stat(clusterSeriesPath); statErr == nil {
		table, err := readTable(clusterSeriesPath, ClusterSeriesColumns)
		if err != nil {
			return nil, err
		}
		if ds.ClusterCPI, err = convertClusterSeries(table); err != nil {
			return nil, fmt.Errorf("%s: %w", ClusterSeriesFile, err)
		}
	}

	clusterExpPath := filepath.Join(dir, ClusterExpFile)
	if _, statErr := os.Stat(clusterExpPath); statErr == nil {
		table, err := readTable(clusterExpPath, ClusterExpColumns)
		if err != nil {
			return nil, err
		}
		if ds.ClusterExp, err = convertClusterExpenditure(table); err != nil {
			return nil, fmt.Errorf("%s: %w", ClusterExpFile, err)
		}
	}

	return ds, nil
}

// table is a parsed CSV with a name→index header map.
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
}

// readTable loads one CSV through gota and validates that every required
// column is present. Column validation failure is the fatal error class:
// the caller halts the whole view.
func readTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	df := dataframe.ReadCSV(f, dataframe.WithDelimiter(','), dataframe.HasHeader(true))
	if df.Error() != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", filepath.Base(path), df.Error())
	}

	columns := make(map[string]int, len(df.Names()))
	for i, name := range df.Names() {
		columns[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := columns[col]; !ok {
			return nil, fmt.Errorf("missing required column %q in %s", col, filepath.Base(path))
		}
	}

	records := df.Records() // first record is the header row
	return &table{path: path, columns: columns, rows: records[1:]}, nil
}

// cell returns the raw string for a named column in a row.
func (t *table) cell(row []string, col string) string {
	return strings.TrimSpace(row[t.columns[col]])
}

// parseYear parses a year cell; gota may render integral years as floats.
func parseYear(s string) (int, error) {
	if year, err := strconv.Atoi(s); err == nil {
		return year, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return int(f), nil
}

// parseNullable parses a numeric cell into a nullable float. Empty cells
// and the usual missing-data spellings map to nil, never to zero.
func parseNullable(s string) (*float64, error) {
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric value %q", s)
	}
	return &v, nil
}

func convertSeries(t *table) ([]schema.SeriesRow, error) {
	rows := make([]schema.SeriesRow, 0, len(t.rows))
	for i, raw := range t.rows {
		year, err := parseYear(t.cell(raw, "year"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		row := schema.SeriesRow{Year: year, Category: t.cell(raw, "category")}
		for col, dst := range map[string]**float64{
			"can_cpi":         &row.CanCPI,
			"oecd_cpi":        &row.OECDCPI,
			"can_exp_share":   &row.CanExpShare,
			"oecd_exp_share":  &row.OECDExpShare,
			"can_exp_growth":  &row.CanExpGrowth,
			"oecd_exp_growth": &row.OECDExpGrowth,
		} {
			v, err := parseNullable(t.cell(raw, col))
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", i+1, col, err)
			}
			*dst = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func convertClusters(t *table) ([]schema.ClusterAssignment, error) {
	rows := make([]schema.ClusterAssignment, 0, len(t.rows))
	for i, raw := range t.rows {
		cluster, err := parseYear(t.cell(raw, "cluster"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid cluster id: %w", i+1, err)
		}
		if cluster < 0 {
			return nil, fmt.Errorf("row %d: cluster id must be non-negative, got %d", i+1, cluster)
		}
		rows = append(rows, schema.ClusterAssignment{
			Country: t.cell(raw, "country"),
			Cluster: cluster,
		})
	}
	return rows, nil
}

func convertClusterSeries(t *table) ([]schema.ClusterSeriesRow, error) {
	rows := make([]schema.ClusterSeriesRow, 0, len(t.rows))
	for i, raw := range t.rows {
		year, err := parseYear(t.cell(raw, "year"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		avg, err := parseNullable(t.cell(raw, "avg_cpi"))
		if err != nil {
			return nil, fmt.Errorf("row %d, column avg_cpi: %w", i+1, err)
		}
		rows = append(rows, schema.ClusterSeriesRow{
			Year:     year,
			Category: t.cell(raw, "category"),
			Group:    t.cell(raw, "group"),
			AvgCPI:   avg,
		})
	}
	return rows, nil
}

func convertClusterExpenditure(t *table) ([]schema.ClusterExpenditureRow, error) {
	rows := make([]schema.ClusterExpenditureRow, 0, len(t.rows))
	for i, raw := range t.rows {
		year, err := parseYear(t.cell(raw, "year"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		share, err := parseNullable(t.cell(raw, "avg_exp_share"))
		if err != nil {
			return nil, fmt.Errorf("row %d, column avg_exp_share: %w", i+1, err)
		}
		growth, err := parseNullable(t.cell(raw, "avg_exp_growth"))
		if err != nil {
			return nil, fmt.Errorf("row %d, column avg_exp_growth: %w", i+1, err)
		}
		rows = append(rows, schema.ClusterExpenditureRow{
			Year:         year,
			Category:     t.cell(raw, "category"),
			Group:        t.cell(raw, "group"),
			AvgExpShare:  share,
			AvgExpGrowth: growth,
		})
	}
	return rows, nil
}
