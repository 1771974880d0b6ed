// Package iocache persists stats.nba.com responses and the history of hoopstat runs.
package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// CacheStoreImpl keeps raw response bodies in a SQL table keyed by request hash.
type CacheStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
}

var _ contract.CacheStore = &CacheStoreImpl{} // Compile-time check

// NewCacheStore opens a SQL backed response cache, creating its table if needed.
// The none backend yields a store that never hits.
func NewCacheStore(tableName string, backend schema.DatabaseBackend, connStr string) (*CacheStoreImpl, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}
	if backend == schema.NoneBackend {
		return &CacheStoreImpl{tableName: tableName, backend: backend}, nil
	}

	db, err := openSQL(backend, connStr, contract.GetCacheDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("response cache: %w", err)
	}
	if _, err := db.Exec(getCreateResponseTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &CacheStoreImpl{
		db:        db,
		tableName: tableName,
		backend:   backend,
		connStr:   connStr,
	}, nil
}

// getCreateResponseTableQuery returns the CREATE TABLE query for the given backend.
func getCreateResponseTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quoted := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				request_key CHAR(64) PRIMARY KEY,
				response_body LONGBLOB NOT NULL,
				schema_version INT NOT NULL,
				fetched_at BIGINT NOT NULL
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				request_key TEXT PRIMARY KEY,
				response_body BYTEA NOT NULL,
				schema_version INTEGER NOT NULL,
				fetched_at BIGINT NOT NULL
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				request_key TEXT PRIMARY KEY,
				response_body BLOB NOT NULL,
				schema_version INTEGER NOT NULL,
				fetched_at INTEGER NOT NULL
			);
		`, quoted)
	}
}

// Get retrieves a response body with its schema version and fetch time.
// A miss is reported as sql.ErrNoRows.
func (cs *CacheStoreImpl) Get(key string) ([]byte, int, int64, error) {
	if cs.db == nil {
		return nil, 0, 0, sql.ErrNoRows
	}

	query := fmt.Sprintf(`SELECT response_body, schema_version, fetched_at FROM %s WHERE request_key = %s`,
		quoteTableName(cs.tableName, cs.backend), placeholder(cs.backend, 1))

	var (
		body    []byte
		version int
		ts      int64
	)
	if err := cs.db.QueryRow(query, key).Scan(&body, &version, &ts); err != nil {
		return nil, 0, 0, err
	}
	return body, version, ts, nil
}

// Set inserts or replaces a response body.
func (cs *CacheStoreImpl) Set(key string, body []byte, version int, timestamp int64) error {
	if cs.db == nil {
		return nil
	}
	_, err := cs.db.Exec(cs.getUpsertQuery(), key, body, version, timestamp)
	return err
}

// getUpsertQuery returns the UPSERT query for the backend.
func (cs *CacheStoreImpl) getUpsertQuery() string {
	quoted := quoteTableName(cs.tableName, cs.backend)
	switch cs.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (request_key, response_body, schema_version, fetched_at) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE response_body = new.response_body, schema_version = new.schema_version, fetched_at = new.fetched_at`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (request_key, response_body, schema_version, fetched_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (request_key) DO UPDATE SET response_body = EXCLUDED.response_body, schema_version = EXCLUDED.schema_version, fetched_at = EXCLUDED.fetched_at`, quoted)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (request_key, response_body, schema_version, fetched_at) VALUES (?, ?, ?, ?)`, quoted)
	}
}

// Close closes the underlying DB connection.
func (cs *CacheStoreImpl) Close() error {
	if cs.db != nil {
		return cs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the response cache.
func (cs *CacheStoreImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(cs.backend),
		Connected: cs.db != nil,
	}
	if cs.db == nil {
		return status, nil
	}

	quoted := quoteTableName(cs.tableName, cs.backend)
	query := fmt.Sprintf("SELECT COUNT(*), COALESCE(MIN(fetched_at), 0), COALESCE(MAX(fetched_at), 0) FROM %s", quoted)
	var oldestTs, lastTs int64
	if err := cs.db.QueryRow(query).Scan(&status.TotalEntries, &oldestTs, &lastTs); err != nil {
		return status, fmt.Errorf("failed to get cache entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}
	status.OldestEntryTime = time.Unix(oldestTs, 0)
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.TableSizeBytes = cs.tableSize()
	return status, nil
}

// tableSize asks the backend for the table footprint, falling back to the payload size.
func (cs *CacheStoreImpl) tableSize() int64 {
	var size int64
	switch cs.backend {
	case schema.SQLiteBackend:
		err := cs.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()").Scan(&size)
		if err == nil {
			return size
		}
	case schema.MySQLBackend:
		if cfg, err := mysql.ParseDSN(cs.connStr); err == nil && cfg.DBName != "" {
			query := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
			if err := cs.db.QueryRow(query, cfg.DBName, cs.tableName).Scan(&size); err == nil {
				return size
			}
		}
	case schema.PostgreSQLBackend:
		if err := cs.db.QueryRow("SELECT pg_total_relation_size($1)", cs.tableName).Scan(&size); err == nil {
			return size
		}
	}

	query := fmt.Sprintf("SELECT COALESCE(SUM(LENGTH(response_body)), 0) FROM %s", quoteTableName(cs.tableName, cs.backend))
	if err := cs.db.QueryRow(query).Scan(&size); err != nil {
		return 0
	}
	return size
}
