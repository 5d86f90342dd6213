package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sperez1989/basket/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun(section schema.Section, startedAt int64) schema.RunRecord {
	return schema.RunRecord{
		Section:    section,
		DataDir:    "/data/oecd",
		Categories: "CP01,CP06",
		FromYear:   2015,
		ToYear:     2022,
		Findings:   2,
		StartedAt:  time.Unix(startedAt, 0),
		DurationMs: 42,
	}
}

func TestHistoryStoreRecordAndList(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err, "Failed to create SQLite history store")
	defer func() { _ = store.Close() }()

	id1, err := store.RecordRun(sampleRun(schema.CPISection, 1000))
	assert.NoError(t, err, "First RecordRun should not fail")
	id2, err := store.RecordRun(sampleRun(schema.ExpenditureSection, 2000))
	assert.NoError(t, err, "Second RecordRun should not fail")
	assert.Greater(t, id2, id1, "Run IDs should be monotonically increasing")

	runs, err := store.ListRuns(0)
	require.NoError(t, err, "ListRuns should not fail")
	require.Len(t, runs, 2, "Expected two recorded runs")

	// Newest first
	assert.Equal(t, schema.ExpenditureSection, runs[0].Section, "Newest run should come first")
	assert.Equal(t, schema.CPISection, runs[1].Section, "Oldest run should come last")

	first := runs[0]
	assert.Equal(t, id2, first.ID, "Run ID mismatch")
	assert.Equal(t, "/data/oecd", first.DataDir, "Data dir mismatch")
	assert.Equal(t, "CP01,CP06", first.Categories, "Categories mismatch")
	assert.Equal(t, 2015, first.FromYear, "From year mismatch")
	assert.Equal(t, 2022, first.ToYear, "To year mismatch")
	assert.Equal(t, 2, first.Findings, "Findings mismatch")
	assert.Equal(t, time.Unix(2000, 0), first.StartedAt, "Started at mismatch")
	assert.Equal(t, int64(42), first.DurationMs, "Duration mismatch")
}

func TestHistoryStoreListLimit(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err, "Failed to create SQLite history store")
	defer func() { _ = store.Close() }()

	for i := range 5 {
		_, err := store.RecordRun(sampleRun(schema.OverviewSection, int64(1000+i)))
		assert.NoError(t, err, "RecordRun should not fail")
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err, "ListRuns with limit should not fail")
	require.Len(t, runs, 2, "Limit should cap the result")
	assert.Equal(t, time.Unix(1004, 0), runs[0].StartedAt, "Newest run should come first")
}

func TestHistoryStoreGetStatus(t *testing.T) {
	t.Run("with data", func(t *testing.T) {
		store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err, "Failed to create SQLite history store")
		defer func() { _ = store.Close() }()

		_, err = store.RecordRun(sampleRun(schema.ClustersSection, 1000))
		assert.NoError(t, err, "RecordRun should not fail")
		_, err = store.RecordRun(sampleRun(schema.ClustersSection, 3000))
		assert.NoError(t, err, "RecordRun should not fail")

		status, err := store.GetStatus()
		assert.NoError(t, err, "GetStatus should not fail")
		assert.Equal(t, "sqlite", status.Backend, "Backend should be sqlite")
		assert.True(t, status.Connected, "Should be connected")
		assert.Equal(t, 2, status.TotalRuns, "Total runs should be 2")
		assert.Equal(t, time.Unix(3000, 0), status.LastRunTime, "Last run time should be 3000")
	})

	t.Run("empty", func(t *testing.T) {
		store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err, "Failed to create SQLite history store")
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		assert.NoError(t, err, "GetStatus should not fail")
		assert.Equal(t, 0, status.TotalRuns, "Total runs should be 0")
		assert.True(t, status.LastRunTime.IsZero(), "Last run time should be zero")
	})

	t.Run("none backend", func(t *testing.T) {
		store, err := NewHistoryStore(schema.NoneBackend, "")
		require.NoError(t, err, "Failed to create none history store")

		status, err := store.GetStatus()
		assert.NoError(t, err, "GetStatus should not fail")
		assert.Equal(t, "none", status.Backend, "Backend should be none")
		assert.False(t, status.Connected, "Should not be connected")
	})
}

func TestHistoryStoreNoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err, "Failed to create none history store")

	id, err := store.RecordRun(sampleRun(schema.CPISection, 1000))
	assert.NoError(t, err, "RecordRun should not error on none backend")
	assert.Equal(t, int64(0), id, "RecordRun should return zero ID on none backend")

	runs, err := store.ListRuns(0)
	assert.NoError(t, err, "ListRuns should not error on none backend")
	assert.Empty(t, runs, "ListRuns should return nothing on none backend")

	assert.NoError(t, store.Close(), "Close should not error on none backend")
}

func TestNewHistoryStoreUnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore("redis", "")
	assert.Error(t, err, "Expected error for unsupported backend")
}

// TestGetCreateRunsTableQuery tests the CREATE TABLE statement per backend.
func TestGetCreateRunsTableQuery(t *testing.T) {
	tests := []struct {
		name         string
		backend      schema.DatabaseBackend
		wantContains []string
	}{
		{
			name:    "SQLite backend",
			backend: schema.SQLiteBackend,
			wantContains: []string{
				`"basket_section_runs"`,
				"run_id INTEGER PRIMARY KEY AUTOINCREMENT",
				"started_at INTEGER",
			},
		},
		{
			name:    "MySQL backend",
			backend: schema.MySQLBackend,
			wantContains: []string{
				"`basket_section_runs`",
				"run_id BIGINT AUTO_INCREMENT PRIMARY KEY",
				"started_at BIGINT",
			},
		},
		{
			name:    "PostgreSQL backend",
			backend: schema.PostgreSQLBackend,
			wantContains: []string{
				`"basket_section_runs"`,
				"run_id BIGSERIAL PRIMARY KEY",
				"started_at BIGINT",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getCreateRunsTableQuery(tt.backend)
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want, "getCreateRunsTableQuery() should contain %q", want)
			}
		})
	}
}

func TestMigrateHistory(t *testing.T) {
	t.Run("none backend rejected", func(t *testing.T) {
		err := MigrateHistory(schema.NoneBackend, "", -1)
		assert.Error(t, err, "Migrations should be rejected for the none backend")
	})

	t.Run("unsupported backend rejected", func(t *testing.T) {
		err := MigrateHistory("redis", "", -1)
		assert.Error(t, err, "Expected error for unsupported backend")
	})

	t.Run("SQLite up and down", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "migrate.db")

		// Migrate to the latest version
		err := MigrateHistory(schema.SQLiteBackend, dbPath, -1)
		require.NoError(t, err, "Migrating to latest should not fail")

		// The runs table should accept inserts after migration
		db, err := sql.Open("sqlite3", dbPath)
		require.NoError(t, err, "Failed to open migrated database")
		_, err = db.Exec(`INSERT INTO basket_section_runs
			(section, data_dir, categories, from_year, to_year, findings, started_at, duration_ms)
			VALUES ('cpi', '/data', '', 0, 0, 1, 1000, 5)`)
		assert.NoError(t, err, "Insert into migrated table should not fail")
		_ = db.Close()

		// Migrating again is a no-op
		err = MigrateHistory(schema.SQLiteBackend, dbPath, -1)
		assert.NoError(t, err, "Re-migrating to latest should not fail")

		// Step back to version 1
		err = MigrateHistory(schema.SQLiteBackend, dbPath, 1)
		assert.NoError(t, err, "Migrating down to version 1 should not fail")

		// Roll all the way back
		err = MigrateHistory(schema.SQLiteBackend, dbPath, 0)
		assert.NoError(t, err, "Rolling back to version 0 should not fail")

		db, err = sql.Open("sqlite3", dbPath)
		require.NoError(t, err, "Failed to reopen database")
		_, err = db.Exec("SELECT COUNT(*) FROM basket_section_runs")
		assert.Error(t, err, "Runs table should be gone after full rollback")
		_ = db.Close()
	})
}

func TestExecuteHistoryExport(t *testing.T) {
	t.Run("requires output file", func(t *testing.T) {
		err := ExecuteHistoryExport("")
		assert.Error(t, err, "Export without --output-file should fail")
	})

	t.Run("empty history rejected", func(t *testing.T) {
		store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err, "Failed to create history store")
		defer func() { _ = store.Close() }()

		prev := Manager.history
		Manager.history = store
		defer func() { Manager.history = prev }()

		err = ExecuteHistoryExport(filepath.Join(t.TempDir(), "runs.parquet"))
		assert.Error(t, err, "Export with no recorded runs should fail")
	})

	t.Run("exports recorded runs", func(t *testing.T) {
		store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err, "Failed to create history store")
		defer func() { _ = store.Close() }()

		_, err = store.RecordRun(sampleRun(schema.CPISection, 1000))
		require.NoError(t, err, "RecordRun should not fail")
		_, err = store.RecordRun(sampleRun(schema.ClustersSection, 2000))
		require.NoError(t, err, "RecordRun should not fail")

		prev := Manager.history
		Manager.history = store
		defer func() { Manager.history = prev }()

		outputFile := filepath.Join(t.TempDir(), "runs.parquet")
		err = ExecuteHistoryExport(outputFile)
		require.NoError(t, err, "Export should not fail")

		info, err := os.Stat(outputFile)
		require.NoError(t, err, "Export file should exist")
		assert.Greater(t, info.Size(), int64(0), "Export file should not be empty")
	})
}
