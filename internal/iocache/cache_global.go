package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
)

// responseTable is the name of the table for response caching.
const responseTable = "hoopstat_responses"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// StoreOptions selects the backends of the global stores.
// An empty backend leaves that store uninitialized.
type StoreOptions struct {
	CacheBackend     schema.DatabaseBackend
	CacheDBConnect   string
	CacheTTL         time.Duration
	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string
}

// StoreOptionsFromConfig picks the store settings out of a validated config.
func StoreOptionsFromConfig(cfg *contract.Config) StoreOptions {
	return StoreOptions{
		CacheBackend:     cfg.CacheBackend,
		CacheDBConnect:   cfg.CacheDBConnect,
		CacheTTL:         cfg.CacheTTL,
		HistoryBackend:   cfg.HistoryBackend,
		HistoryDBConnect: cfg.HistoryDBConnect,
	}
}

// NewResponseStore opens the response cache for a backend.
func NewResponseStore(backend schema.DatabaseBackend, connStr string, ttl time.Duration) (contract.CacheStore, error) {
	if backend == schema.RedisBackend {
		return NewRedisStore(connStr, ttl)
	}
	return NewCacheStore(responseTable, backend, connStr)
}

// InitStores initializes the global manager exactly once.
func InitStores(opts StoreOptions) error {
	var initErr error

	initOnce.Do(func() {
		var response contract.CacheStore
		if opts.CacheBackend != "" {
			store, err := NewResponseStore(opts.CacheBackend, opts.CacheDBConnect, opts.CacheTTL)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize response caching: %w", err)
				return
			}
			response = store
		}

		var history contract.HistoryStore
		if opts.HistoryBackend != "" {
			store, err := NewHistoryStore(opts.HistoryBackend, opts.HistoryDBConnect)
			if err != nil {
				if response != nil {
					_ = response.Close()
				}
				initErr = fmt.Errorf("failed to initialize history store: %w", err)
				return
			}
			history = store
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.response = response
		Manager.history = history
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.response != nil {
			_ = Manager.response.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearCache removes every cached response.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For Redis, it deletes the hoopstat keys.
func ClearCache(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(connStr, contract.GetCacheDBFilePath())
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTables(backend, connStr, responseTable)
	case schema.RedisBackend:
		store, err := NewRedisStore(connStr, 0)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.Clear()
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// ClearHistory removes all run history, schema version included.
func ClearHistory(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(connStr, contract.GetHistoryDBFilePath())
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTables(backend, connStr, gameLogTable, runsTable, historyMigrationsTable)
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported history backend for clearing: %s", backend)
	}
}

// removeSQLiteFile deletes a SQLite database file; a missing file is not an error.
func removeSQLiteFile(path, defaultPath string) error {
	if path == "" {
		path = defaultPath
	}
	if path == ":memory:" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove SQLite database file %s: %w", path, err)
	}
	return nil
}

// clearSQLTables connects to the SQL database and drops the tables if they exist.
func clearSQLTables(backend schema.DatabaseBackend, connStr string, tables ...string) error {
	driver, err := driverName(backend)
	if err != nil {
		return err
	}
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", backend, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", backend, err)
	}

	for _, table := range tables {
		if err := validateTableName(table); err != nil {
			return err
		}
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
