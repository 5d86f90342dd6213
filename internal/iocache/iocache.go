// Package iocache provides durable storage for the parsed dataset cache and
// the section run history.
package iocache

import (
	"sync"

	"github.com/sperez1989/basket/internal/contract"
)

// StoreManager manages the dataset cache store and the run history store.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	dataset      contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &StoreManager{} // Compile-time check

// GetDatasetStore returns the dataset CacheStore.
func (mgr *StoreManager) GetDatasetStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.dataset
}

// GetHistoryStore returns the run HistoryStore.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
