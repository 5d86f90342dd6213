package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sperez1989/basket/internal/contract"
)

// ExecuteCheck validates the data directory for CI/CD gating. It verifies
// the input files, parses them without touching the cache, and reports the
// dataset's shape. A missing or malformed mandatory file returns an error,
// which becomes a non-zero exit code.
func ExecuteCheck(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()

	ok := cfg.UseEmojis
	mark := func(good bool) string {
		if !ok {
			if good {
				return "[ok]"
			}
			return "[--]"
		}
		if good {
			return "✅"
		}
		return "⚠️ "
	}

	fmt.Printf("Checking data directory: %s\n", cfg.DataDir)

	mandatory := map[string]bool{SeriesFile: true, ClustersFile: true, ClusterSeriesFile: false, ClusterExpFile: false}
	var missing []string
	for _, name := range []string{SeriesFile, ClustersFile, ClusterSeriesFile, ClusterExpFile} {
		path := filepath.Join(cfg.DataDir, name)
		info, err := os.Stat(path)
		switch {
		case err == nil:
			fmt.Printf("%s %s (%d bytes)\n", mark(true), name, info.Size())
		case mandatory[name]:
			fmt.Printf("%s %s missing (required)\n", mark(false), name)
			missing = append(missing, name)
		default:
			fmt.Printf("%s %s missing (optional)\n", mark(false), name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required input files missing: %s", strings.Join(missing, ", "))
	}

	// Parse without the cache so the check always reflects the files on disk.
	ds, err := parseDataset(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("data directory failed validation: %w", err)
	}

	minYear, hasYears := ds.MinYear()
	maxYear, _ := ds.MaxYear()
	if hasYears {
		fmt.Printf("Years covered: %d to %d\n", minYear, maxYear)
	} else {
		fmt.Printf("%s time series is empty\n", mark(false))
	}
	fmt.Printf("Series rows: %d\n", len(ds.Series))
	fmt.Printf("Categories: %s\n", strings.Join(ds.Categories(), ", "))
	fmt.Printf("Countries clustered: %d\n", ds.CountryCount())

	if cluster, present := ds.CanadaCluster(); present {
		fmt.Printf("%s Canada found in cluster %d\n", mark(true), cluster)
	} else {
		fmt.Printf("%s Canada not present in the clustering results\n", mark(false))
	}
	fmt.Printf("Cluster CPI rows: %d, cluster expenditure rows: %d\n", len(ds.ClusterCPI), len(ds.ClusterExp))

	fmt.Printf("Check completed in %v\n", time.Since(start))
	return nil
}
