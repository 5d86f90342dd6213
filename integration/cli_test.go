//go:build basic

// Package integration contains end-to-end tests for the basket CLI.
// These tests are excluded from normal test runs due to build tags.
// To run them: go test -tags basic ./integration
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runBasketOutput runs the basket binary and captures stdout.
func runBasketOutput(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBasketBinary(), args...)
	cmd.Dir = ".."
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		t.Logf("Command failed: %s\nStderr: %s", cmd.String(), stderr.String())
	}
	return stdout.String(), err
}

// sqliteEnv points both stores at files inside dir so the suite never
// touches the invoking user's home directory.
func sqliteEnv(dir string) []string {
	return []string{
		"BASKET_CACHE_BACKEND=sqlite",
		"BASKET_CACHE_DB_CONNECT=" + filepath.Join(dir, "cache.db"),
		"BASKET_HISTORY_BACKEND=sqlite",
		"BASKET_HISTORY_DB_CONNECT=" + filepath.Join(dir, "history.db"),
	}
}

func TestBasketVersion(t *testing.T) {
	out, err := runBasketOutput(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "basket CLI")
}

func TestBasketCheck(t *testing.T) {
	dataDir := writeFixtureDataDir(t)
	env := sqliteEnv(t.TempDir())

	out, err := runBasketOutput(t, env, "check", dataDir)
	require.NoError(t, err, "check on a valid data directory should pass")
	assert.Contains(t, out, "Years covered: 2021 to 2022")
	assert.Contains(t, out, "Countries clustered: 3")
}

func TestBasketCheckFailsOnEmptyDir(t *testing.T) {
	env := sqliteEnv(t.TempDir())

	_, err := runBasketOutput(t, env, "check", t.TempDir())
	assert.Error(t, err, "check on an empty directory should fail")
}

func TestBasketCPISection(t *testing.T) {
	dataDir := writeFixtureDataDir(t)
	env := sqliteEnv(t.TempDir())

	out, err := runBasketOutput(t, env, "cpi", dataDir, "-c", "CP01", "--emoji", "no", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "below", "Canada trails the OECD average in the fixture")
}

func TestBasketClustersSection(t *testing.T) {
	dataDir := writeFixtureDataDir(t)
	env := sqliteEnv(t.TempDir())

	out, err := runBasketOutput(t, env, "clusters", dataDir, "--emoji", "no", "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "Sweden (SWE)", "Sweden is Canada's fixture peer")
}

func TestBasketJSONOutputFile(t *testing.T) {
	dataDir := writeFixtureDataDir(t)
	env := sqliteEnv(t.TempDir())
	outputFile := filepath.Join(t.TempDir(), "findings.json")

	_, err := runBasketOutput(t, env, "cpi", dataDir, "-c", "CP01",
		"--output", "json", "--output-file", outputFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err, "JSON output file should exist")
	assert.True(t, strings.Contains(string(data), `"category": "CP01"`), "Findings should land in the file")
}

func TestBasketCacheLifecycle(t *testing.T) {
	dataDir := writeFixtureDataDir(t)
	storeDir := t.TempDir()
	env := sqliteEnv(storeDir)

	// Populate the cache by running a section
	_, err := runBasketOutput(t, env, "overview", dataDir)
	require.NoError(t, err)

	out, err := runBasketOutput(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache Backend: sqlite")
	assert.Contains(t, out, "Total Entries: 1")

	_, err = runBasketOutput(t, env, "cache", "clear")
	require.NoError(t, err)
}

func TestBasketHistoryLifecycle(t *testing.T) {
	dataDir := writeFixtureDataDir(t)
	storeDir := t.TempDir()
	env := sqliteEnv(storeDir)

	// Record two runs
	_, err := runBasketOutput(t, env, "cpi", dataDir, "-c", "CP01")
	require.NoError(t, err)
	_, err = runBasketOutput(t, env, "clusters", dataDir)
	require.NoError(t, err)

	out, err := runBasketOutput(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "History Backend: sqlite")
	assert.Contains(t, out, "Total Runs: 2")

	exportFile := filepath.Join(t.TempDir(), "runs.parquet")
	_, err = runBasketOutput(t, env, "history", "export", "--output-file", exportFile)
	require.NoError(t, err)
	info, err := os.Stat(exportFile)
	require.NoError(t, err, "Export file should exist")
	assert.Greater(t, info.Size(), int64(0))

	_, err = runBasketOutput(t, env, "history", "clear")
	require.NoError(t, err)
}

func TestBasketHistoryMigrate(t *testing.T) {
	storeDir := t.TempDir()
	env := sqliteEnv(storeDir)

	_, err := runBasketOutput(t, env, "history", "migrate")
	require.NoError(t, err, "migrating a fresh database to latest should pass")

	_, err = runBasketOutput(t, env, "history", "migrate", "--target-version", "0")
	require.NoError(t, err, "rolling back all migrations should pass")
}
