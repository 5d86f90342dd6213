//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedBasketPath holds the path to a shared basket binary built once for all tests.
	sharedBasketPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBasketBinary returns the path to the basket binary, building it once if needed.
func getBasketBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "basket-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		basketPath := filepath.Join(tempDir, "basket")
		buildCmd := exec.Command("go", "build", "-o", basketPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build basket: %v", err))
		}

		sharedBasketPath = basketPath
	})

	return sharedBasketPath
}

// runBasketCommand runs the basket binary with the given arguments from the
// project root and logs combined output on failure.
func runBasketCommand(t *testing.T, args ...string) error {
	basketPath := getBasketBinary()
	cmd := exec.Command(basketPath, args...)
	cmd.Dir = ".." // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

// writeFixtureDataDir materializes a small but complete data directory.
func writeFixtureDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"canada_vs_oecd_timeseries.csv": `year,category,can_cpi,oecd_cpi,can_exp_share,oecd_exp_share,can_exp_growth,oecd_exp_growth
2021,CP01,110.2,108.9,0.0950,0.1090,3.1,2.9
2022,CP01,118.5,120.1,0.0975,0.1102,4.2,3.0
2022,CP04,105.0,104.2,0.2210,0.2100,1.0,1.2
`,
		"cluster_results.csv": `country,cluster
CAN,1
SWE,1
MEX,0
`,
		"cluster_timeseries.csv": `year,category,group,avg_cpi
2022,CP01,Canada,118.5
2022,CP01,Cluster 0,121.0
`,
		"cluster_expenditure.csv": `year,category,group,avg_exp_share,avg_exp_growth
2022,CP01,Canada,0.0975,3.4
2022,CP01,Cluster 0,0.1533,2.2
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}
