package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/internal/iocache"
	"github.com/huangsam/hoopstat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")
	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("invalid cache-backend %q", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the stats response cache",
	Long: `Manage the cache of stats.nba.com responses.

Hoopstat stores raw endpoint responses so repeated runs skip the network and
the request delay. Entries older than --cache-ttl are fetched again.

Supported backends: SQLite (default), MySQL, PostgreSQL, Redis, or None

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  hoopstat cache status

  # Clear a Redis cache
  HOOPSTAT_CACHE_BACKEND=redis HOOPSTAT_CACHE_DB_CONNECT="redis://localhost:6379/0" hoopstat cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses",
	Long: `Delete all cached responses from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table
For Redis: Deletes the hoopstat keys`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, connection state, entry count and the newest
and oldest entry timestamps of the response cache.`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := iocache.InitStores(iocache.StoreOptions{
			CacheBackend:   cfg.CacheBackend,
			CacheDBConnect: cfg.CacheDBConnect,
		})
		if err != nil {
			contract.LogFatal("Failed to initialize cache", err)
		}
		store := iocache.Manager.GetResponseStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", errors.New("cache store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}
