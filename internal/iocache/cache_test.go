package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sperez1989/basket/schema"
	"github.com/stretchr/testify/assert"
)

func TestInitStores(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "dataset.db")
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(schema.SQLiteBackend, dbPath, "", "")
		assert.NoError(t, err, "Failed to initialize stores")

		assert.NotNil(t, Manager, "Manager should not be nil")
		assert.NotNil(t, Manager.GetDatasetStore(), "Dataset store should not be nil")
		assert.Nil(t, Manager.GetHistoryStore(), "History store stays nil with empty backend")

		CloseStores()

		_, err = os.Stat(dbPath)
		assert.False(t, os.IsNotExist(err), "Database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		initOnce = sync.Once{}
		closeOnce = sync.Once{}

		// Multiple initializations should be safe (sync.Once)
		err1 := InitStores(schema.SQLiteBackend, ":memory:", "", "")
		err2 := InitStores(schema.SQLiteBackend, ":memory:", "", "")
		err3 := InitStores(schema.SQLiteBackend, ":memory:", "", "")

		assert.NoError(t, err1, "First init should not fail")
		assert.NoError(t, err2, "Second init should not fail")
		assert.NoError(t, err3, "Third init should not fail")

		// Multiple closes should be safe (sync.Once)
		CloseStores()
		CloseStores()
		CloseStores()
	})

	t.Run("both stores", func(t *testing.T) {
		initOnce = sync.Once{}
		closeOnce = sync.Once{}

		err := InitStores(schema.SQLiteBackend, ":memory:", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Init with both stores should not fail")

		assert.NotNil(t, Manager.GetDatasetStore(), "Dataset store should not be nil")
		assert.NotNil(t, Manager.GetHistoryStore(), "History store should not be nil")

		CloseStores()
	})

	t.Run("none backend", func(t *testing.T) {
		initOnce = sync.Once{}
		closeOnce = sync.Once{}

		err := InitStores(schema.NoneBackend, "", schema.NoneBackend, "")
		assert.NoError(t, err, "Init with none backends should not fail")

		store := Manager.GetDatasetStore()
		assert.NotNil(t, store, "Dataset store should not be nil for none backend")

		// No-op semantics: Set succeeds, Get misses
		err = store.Set("key", []byte("value"), 1, 1000)
		assert.NoError(t, err, "Set on none backend should not error")
		_, _, _, err = store.Get("key")
		assert.Equal(t, sql.ErrNoRows, err, "Get on none backend should return ErrNoRows")

		CloseStores()
	})

	t.Run("invalid connection propagates error", func(t *testing.T) {
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
		defer func() {
			initOnce = sync.Once{}
			closeOnce = sync.Once{}
		}()

		err := InitStores(schema.MySQLBackend, "invalid://connection", "", "")
		assert.Error(t, err, "Expected error for invalid MySQL connection string")
	})
}

// TestValidateTableName tests the validateTableName function with various inputs.
func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{
			name:      "valid simple name",
			tableName: "dataset_cache",
			wantErr:   false,
		},
		{
			name:      "valid name with numbers",
			tableName: "cache_v2",
			wantErr:   false,
		},
		{
			name:      "valid name starting with underscore",
			tableName: "_cache",
			wantErr:   false,
		},
		{
			name:      "valid mixed case",
			tableName: "DatasetCache_1",
			wantErr:   false,
		},
		{
			name:      "empty name",
			tableName: "",
			wantErr:   true,
		},
		{
			name:      "starts with number",
			tableName: "1_cache",
			wantErr:   true,
		},
		{
			name:      "contains dash",
			tableName: "dataset-cache",
			wantErr:   true,
		},
		{
			name:      "contains space",
			tableName: "dataset cache",
			wantErr:   true,
		},
		{
			name:      "sql injection attempt",
			tableName: "cache'; DROP TABLE runs; --",
			wantErr:   true,
		},
		{
			name:      "contains dot",
			tableName: "main.cache",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err, "validateTableName should error for %q", tt.tableName)
			} else {
				assert.NoError(t, err, "validateTableName should not error for %q", tt.tableName)
			}
		})
	}
}

// TestQuoteTableName tests the quoteTableName function for all backends.
func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		want    string
	}{
		{
			name:    "SQLite backend",
			backend: schema.SQLiteBackend,
			want:    `"dataset_cache"`,
		},
		{
			name:    "MySQL backend",
			backend: schema.MySQLBackend,
			want:    "`dataset_cache`",
		},
		{
			name:    "PostgreSQL backend",
			backend: schema.PostgreSQLBackend,
			want:    `"dataset_cache"`,
		},
		{
			name:    "None backend defaults to SQLite style",
			backend: schema.NoneBackend,
			want:    `"dataset_cache"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quoteTableName("dataset_cache", tt.backend)
			assert.Equal(t, tt.want, got, "quoteTableName for %s", tt.backend)
		})
	}
}

// TestSQLiteCacheOperations covers the full lifecycle of the SQLite cache store.
func TestSQLiteCacheOperations(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		store, err := NewCacheStore("test_cache", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		err = store.Set("data_dir_key", []byte("snapshot"), 3, 1234567890)
		assert.NoError(t, err, "Set should not fail")

		value, version, timestamp, err := store.Get("data_dir_key")
		assert.NoError(t, err, "Get should not fail")
		assert.Equal(t, "snapshot", string(value), "Get value mismatch")
		assert.Equal(t, 3, version, "Get version mismatch")
		assert.Equal(t, int64(1234567890), timestamp, "Get timestamp mismatch")
	})

	t.Run("upsert replaces", func(t *testing.T) {
		store, err := NewCacheStore("test_cache", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		err = store.Set("key", []byte("old"), 1, 1000)
		assert.NoError(t, err, "Initial Set should not fail")
		err = store.Set("key", []byte("new"), 2, 2000)
		assert.NoError(t, err, "Update Set should not fail")

		value, version, timestamp, err := store.Get("key")
		assert.NoError(t, err, "Get after update should not fail")
		assert.Equal(t, "new", string(value), "After upsert, value mismatch")
		assert.Equal(t, 2, version, "After upsert, version mismatch")
		assert.Equal(t, int64(2000), timestamp, "After upsert, timestamp mismatch")
	})

	t.Run("miss returns ErrNoRows", func(t *testing.T) {
		store, err := NewCacheStore("test_cache", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		_, _, _, err = store.Get("missing")
		assert.Equal(t, sql.ErrNoRows, err, "Miss should return sql.ErrNoRows")
	})
}

// TestNoneBackendCacheOperations verifies the no-op store created for the
// none backend.
func TestNoneBackendCacheOperations(t *testing.T) {
	store, err := NewCacheStore("test_cache", schema.NoneBackend, "")
	assert.NoError(t, err, "Failed to create none backend store")

	_, _, _, err = store.Get("key")
	assert.Error(t, err, "Expected error from Get on none backend")

	err = store.Set("key", []byte("value"), 1, 123456789)
	assert.NoError(t, err, "Set should not error on none backend")

	_, _, _, err = store.Get("key")
	assert.Error(t, err, "Expected error from Get after Set on none backend")

	err = store.Close()
	assert.NoError(t, err, "Close should not error on none backend")
}

// TestNewCacheStoreErrors tests error scenarios in NewCacheStore.
func TestNewCacheStoreErrors(t *testing.T) {
	t.Run("invalid table name", func(t *testing.T) {
		_, err := NewCacheStore("invalid-name", schema.SQLiteBackend, ":memory:")
		assert.Error(t, err, "Expected error for invalid table name")
	})

	t.Run("empty table name", func(t *testing.T) {
		_, err := NewCacheStore("", schema.SQLiteBackend, ":memory:")
		assert.Error(t, err, "Expected error for empty table name")
	})

	t.Run("unsupported backend", func(t *testing.T) {
		_, err := NewCacheStore("test_cache", "redis", "")
		assert.Error(t, err, "Expected error for unsupported backend")
	})
}

// TestGetPlaceholder tests the parameter placeholder per backend.
func TestGetPlaceholder(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		want    string
	}{
		{name: "SQLite backend", backend: schema.SQLiteBackend, want: "?"},
		{name: "MySQL backend", backend: schema.MySQLBackend, want: "?"},
		{name: "PostgreSQL backend", backend: schema.PostgreSQLBackend, want: "$1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &CacheStoreImpl{backend: tt.backend}
			assert.Equal(t, tt.want, store.getPlaceholder(), "getPlaceholder()")
		})
	}
}

// TestGetUpsertQuery tests the UPSERT statement per backend.
func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		name         string
		backend      schema.DatabaseBackend
		wantContains []string
	}{
		{
			name:    "SQLite backend",
			backend: schema.SQLiteBackend,
			wantContains: []string{
				"INSERT OR REPLACE",
				`"test_cache"`,
			},
		},
		{
			name:    "MySQL backend",
			backend: schema.MySQLBackend,
			wantContains: []string{
				"INSERT INTO",
				"ON DUPLICATE KEY UPDATE",
				"`test_cache`",
			},
		},
		{
			name:    "PostgreSQL backend",
			backend: schema.PostgreSQLBackend,
			wantContains: []string{
				"INSERT INTO",
				"ON CONFLICT",
				"DO UPDATE SET",
				`"test_cache"`,
				"$1", "$2", "$3", "$4",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &CacheStoreImpl{backend: tt.backend, tableName: "test_cache"}
			got := store.getUpsertQuery()
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want, "getUpsertQuery() should contain %q", want)
			}
		})
	}
}

// TestGetCreateTableQuery tests the CREATE TABLE statement per backend.
func TestGetCreateTableQuery(t *testing.T) {
	tests := []struct {
		name         string
		backend      schema.DatabaseBackend
		wantContains []string
	}{
		{
			name:    "SQLite backend",
			backend: schema.SQLiteBackend,
			wantContains: []string{
				"CREATE TABLE IF NOT EXISTS",
				`"test_cache"`,
				"cache_key TEXT PRIMARY KEY",
				"cache_value BLOB",
				"cache_timestamp INTEGER",
			},
		},
		{
			name:    "MySQL backend",
			backend: schema.MySQLBackend,
			wantContains: []string{
				"CREATE TABLE IF NOT EXISTS",
				"`test_cache`",
				"cache_key VARCHAR(255) PRIMARY KEY",
				"cache_timestamp BIGINT",
			},
		},
		{
			name:    "PostgreSQL backend",
			backend: schema.PostgreSQLBackend,
			wantContains: []string{
				"CREATE TABLE IF NOT EXISTS",
				`"test_cache"`,
				"cache_value BYTEA",
				"cache_timestamp BIGINT",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getCreateTableQuery("test_cache", tt.backend)
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want, "getCreateTableQuery() should contain %q", want)
			}
		})
	}
}

// TestCacheStoreGetStatus tests the GetStatus method for different backends.
func TestCacheStoreGetStatus(t *testing.T) {
	t.Run("SQLite backend with data", func(t *testing.T) {
		store, err := NewCacheStore("test_status", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		entries := []struct {
			key string
			ts  int64
		}{
			{"dir1", 1000},
			{"dir2", 2000},
			{"dir3", 1500},
		}
		for _, e := range entries {
			err := store.Set(e.key, []byte("snapshot"), 1, e.ts)
			assert.NoError(t, err, "Set should not fail")
		}

		status, err := store.GetStatus()
		assert.NoError(t, err, "GetStatus should not fail")

		assert.Equal(t, "sqlite", status.Backend, "Backend should be sqlite")
		assert.True(t, status.Connected, "Should be connected")
		assert.Equal(t, 3, status.TotalEntries, "Total entries should be 3")
		assert.Equal(t, time.Unix(2000, 0), status.LastEntryTime, "Last entry time should be 2000")
		assert.Equal(t, time.Unix(1000, 0), status.OldestEntryTime, "Oldest entry time should be 1000")
		assert.Greater(t, status.TableSizeBytes, int64(0), "Table size should be greater than 0")
	})

	t.Run("SQLite backend empty", func(t *testing.T) {
		store, err := NewCacheStore("test_empty", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to create SQLite store")
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus()
		assert.NoError(t, err, "GetStatus should not fail")

		assert.True(t, status.Connected, "Should be connected")
		assert.Equal(t, 0, status.TotalEntries, "Total entries should be 0")
		assert.True(t, status.LastEntryTime.IsZero(), "Last entry time should be zero")
		assert.Equal(t, int64(0), status.TableSizeBytes, "Table size should be 0")
	})

	t.Run("none backend", func(t *testing.T) {
		store, err := NewCacheStore("test_none", schema.NoneBackend, "")
		assert.NoError(t, err, "Failed to create none store")

		status, err := store.GetStatus()
		assert.NoError(t, err, "GetStatus should not fail")

		assert.Equal(t, "none", status.Backend, "Backend should be none")
		assert.False(t, status.Connected, "Should not be connected")
		assert.Equal(t, 0, status.TotalEntries, "Total entries should be 0")
	})
}

// TestClearCache tests the ClearCache function.
func TestClearCache(t *testing.T) {
	t.Run("SQLite backend removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "clear_me.db")

		db, err := sql.Open("sqlite3", dbPath)
		assert.NoError(t, err, "Failed to create database")
		_, err = db.Exec("CREATE TABLE probe (id INTEGER PRIMARY KEY)")
		assert.NoError(t, err, "Failed to create table")
		_ = db.Close()

		_, err = os.Stat(dbPath)
		assert.False(t, os.IsNotExist(err), "Database file should exist before ClearCache")

		err = ClearCache(schema.SQLiteBackend, dbPath, "")
		assert.NoError(t, err, "ClearCache should not fail")

		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err), "Database file should be removed after ClearCache")
	})

	t.Run("SQLite backend non-existent file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "missing.db")
		err := ClearCache(schema.SQLiteBackend, dbPath, "")
		assert.NoError(t, err, "ClearCache on non-existent file should not error")
	})

	t.Run("none backend is a no-op", func(t *testing.T) {
		err := ClearCache(schema.NoneBackend, "", "")
		assert.NoError(t, err, "ClearCache with none backend should not error")
	})

	t.Run("empty dbFilePath for SQLite", func(t *testing.T) {
		err := ClearCache(schema.SQLiteBackend, "", "")
		assert.Error(t, err, "Expected error for empty dbFilePath with SQLite backend")
	})

	t.Run("unsupported backend", func(t *testing.T) {
		err := ClearCache("redis", "", "")
		assert.Error(t, err, "Expected error for unsupported backend")
	})
}

// TestClearHistory mirrors ClearCache semantics for the history store.
func TestClearHistory(t *testing.T) {
	t.Run("SQLite backend removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "history.db")

		db, err := sql.Open("sqlite3", dbPath)
		assert.NoError(t, err, "Failed to create database")
		_, err = db.Exec("CREATE TABLE probe (id INTEGER PRIMARY KEY)")
		assert.NoError(t, err, "Failed to create table")
		_ = db.Close()

		err = ClearHistory(schema.SQLiteBackend, dbPath, "")
		assert.NoError(t, err, "ClearHistory should not fail")

		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err), "Database file should be removed after ClearHistory")
	})

	t.Run("none backend is a no-op", func(t *testing.T) {
		err := ClearHistory(schema.NoneBackend, "", "")
		assert.NoError(t, err, "ClearHistory with none backend should not error")
	})

	t.Run("empty dbFilePath for SQLite", func(t *testing.T) {
		err := ClearHistory(schema.SQLiteBackend, "", "")
		assert.Error(t, err, "Expected error for empty dbFilePath with SQLite backend")
	})
}

// TestStoreManagerConcurrency exercises concurrent reads through the manager.
func TestStoreManagerConcurrency(t *testing.T) {
	initOnce = sync.Once{}
	closeOnce = sync.Once{}

	err := InitStores(schema.SQLiteBackend, ":memory:", "", "")
	if err != nil {
		t.Fatalf("InitStores failed: %v", err)
	}
	defer CloseStores()

	const numGoroutines = 10
	done := make(chan bool, numGoroutines)

	for i := range numGoroutines {
		go func(id int) {
			defer func() { done <- true }()
			store := Manager.GetDatasetStore()
			if store == nil {
				t.Errorf("Goroutine %d: GetDatasetStore returned nil", id)
				return
			}
			if err := store.Set("concurrent_key", []byte("value"), 1, int64(1000+id)); err != nil {
				t.Errorf("Goroutine %d: Set failed: %v", id, err)
			}
		}(i)
	}

	for range numGoroutines {
		<-done
	}
}
