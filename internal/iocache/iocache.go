package iocache

import (
	"sync"

	"github.com/huangsam/hoopstat/internal/contract"
)

// CacheStoreManager holds the process-wide response cache and history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	response     contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetResponseStore returns the response cache, or nil when it is not initialized.
func (mgr *CacheStoreManager) GetResponseStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.response
}

// GetHistoryStore returns the history store, or nil when it is not initialized.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
