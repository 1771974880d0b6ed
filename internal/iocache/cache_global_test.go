package iocache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetManager restores the global manager after a test.
func resetManager(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	t.Cleanup(func() {
		CloseStores()
		Manager = &CacheStoreManager{}
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
	})
}

func TestInitStores_SQLite(t *testing.T) {
	resetManager(t)
	dir := t.TempDir()
	opts := StoreOptions{
		CacheBackend:     schema.SQLiteBackend,
		CacheDBConnect:   filepath.Join(dir, "cache.db"),
		CacheTTL:         time.Hour,
		HistoryBackend:   schema.SQLiteBackend,
		HistoryDBConnect: filepath.Join(dir, "history.db"),
	}

	require.NoError(t, InitStores(opts))
	assert.NotNil(t, Manager.GetResponseStore())
	assert.NotNil(t, Manager.GetHistoryStore())

	// Later calls are no-ops
	require.NoError(t, InitStores(StoreOptions{CacheBackend: "oracle"}))

	CloseStores()
	CloseStores()

	_, err := os.Stat(opts.CacheDBConnect)
	assert.NoError(t, err, "cache database file should exist")
	_, err = os.Stat(opts.HistoryDBConnect)
	assert.NoError(t, err, "history database file should exist")
}

func TestInitStores_Empty(t *testing.T) {
	resetManager(t)

	require.NoError(t, InitStores(StoreOptions{}))
	assert.Nil(t, Manager.GetResponseStore())
	assert.Nil(t, Manager.GetHistoryStore())
}

func TestInitStores_NoneBackend(t *testing.T) {
	resetManager(t)

	require.NoError(t, InitStores(StoreOptions{CacheBackend: schema.NoneBackend, HistoryBackend: schema.NoneBackend}))
	status, err := Manager.GetResponseStore().GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestInitStores_Errors(t *testing.T) {
	resetManager(t)

	err := InitStores(StoreOptions{
		CacheBackend:   schema.SQLiteBackend,
		CacheDBConnect: filepath.Join(t.TempDir(), "cache.db"),
		HistoryBackend: schema.DatabaseBackend("oracle"),
	})
	assert.ErrorContains(t, err, "history store")
	assert.Nil(t, Manager.GetResponseStore())
}

func TestStoreOptionsFromConfig(t *testing.T) {
	cfg := &contract.Config{
		CacheBackend:     schema.RedisBackend,
		CacheDBConnect:   "redis://cache:6379/1",
		CacheTTL:         time.Minute,
		HistoryBackend:   schema.PostgreSQLBackend,
		HistoryDBConnect: "host=db",
	}
	assert.Equal(t, StoreOptions{
		CacheBackend:     schema.RedisBackend,
		CacheDBConnect:   "redis://cache:6379/1",
		CacheTTL:         time.Minute,
		HistoryBackend:   schema.PostgreSQLBackend,
		HistoryDBConnect: "host=db",
	}, StoreOptionsFromConfig(cfg))
}

func TestClearCache(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.db")
		store, err := NewCacheStore(responseTable, schema.SQLiteBackend, path)
		require.NoError(t, err)
		require.NoError(t, store.Set("k", []byte("v"), 1, 1))
		require.NoError(t, store.Close())

		require.NoError(t, ClearCache(schema.SQLiteBackend, path))
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "absent.db")))
	})

	t.Run("sqlite in memory", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.SQLiteBackend, ":memory:"))
	})

	t.Run("none", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.DatabaseBackend("oracle"), ""))
	})
}

func TestClearHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	_, err = store.BeginRun("games", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearHistory(schema.SQLiteBackend, path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ClearHistory(schema.NoneBackend, ""))
	assert.Error(t, ClearHistory(schema.RedisBackend, ""))
}

func TestCacheStoreManagerConcurrency(t *testing.T) {
	mgr := &CacheStoreManager{}
	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			_ = mgr.GetResponseStore()
			_ = mgr.GetHistoryStore()
		})
	}
	wg.Wait()
}
