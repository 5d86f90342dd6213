package core

import (
	"database/sql"

	"github.com/sperez1989/basket/schema"
)

// memStore is an in-memory CacheStore that counts hits and writes, so the
// loader tests can assert cache behavior without a database.
type memStore struct {
	entries map[string]memEntry
	sets    int
	hits    int
}

type memEntry struct {
	value     []byte
	version   int
	timestamp int64
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]memEntry)}
}

func (m *memStore) Get(key string) ([]byte, int, int64, error) {
	e, ok := m.entries[key]
	if !ok {
		return nil, 0, 0, sql.ErrNoRows
	}
	m.hits++
	return e.value, e.version, e.timestamp, nil
}

func (m *memStore) Set(key string, value []byte, version int, timestamp int64) error {
	m.entries[key] = memEntry{value: value, version: version, timestamp: timestamp}
	m.sets++
	return nil
}

func (m *memStore) GetStatus() (schema.CacheStatus, error) {
	return schema.CacheStatus{Backend: "memory", Connected: true, TotalEntries: len(m.entries)}, nil
}

func (m *memStore) Close() error { return nil }
