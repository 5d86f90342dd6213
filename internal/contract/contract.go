// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/sperez1989/basket/schema"
)

// CacheManager defines the interface for managing the persistence stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetDatasetStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for dataset cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking section runs.
type HistoryStore interface {
	// RecordRun stores one section run and returns its unique ID.
	RecordRun(record schema.RunRecord) (int64, error)

	// ListRuns returns recorded runs, newest first, up to limit.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// Clock abstracts time.Now for deterministic tests.
type Clock func() time.Time
