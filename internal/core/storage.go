package core

import (
	"fmt"
	"os"

	"supplycore/internal/kv"
	kvfs "supplycore/internal/kv/fs"
	kvmemory "supplycore/internal/kv/memory"
	kvpostgres "supplycore/internal/kv/postgres"
	kvsqlite "supplycore/internal/kv/sqlite"
)

// StorageConfig selects the durable medium.
type StorageConfig struct {
	// Driver is one of memory, fs, sqlite, postgres.
	Driver string
	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string
	// PostgresDSN is the connection string for the postgres driver.
	PostgresDSN string
	// FSDir is the root directory for the fs driver.
	FSDir string
}

// StorageConfigFromEnv reads the standard environment variables, defaulting
// to the embedded sqlite driver.
func StorageConfigFromEnv() StorageConfig {
	cfg := StorageConfig{
		Driver:      os.Getenv("SUPPLYCORE_STORAGE_DRIVER"),
		SQLitePath:  os.Getenv("SUPPLYCORE_SQLITE_PATH"),
		PostgresDSN: os.Getenv("SUPPLYCORE_POSTGRES_DSN"),
		FSDir:       os.Getenv("SUPPLYCORE_FS_DIR"),
	}
	if cfg.Driver == "" {
		cfg.Driver = string(kv.DriverSQLite)
	}
	return cfg
}

// OpenKV opens the configured durable medium.
func OpenKV(cfg StorageConfig) (kv.Store, error) {
	switch kv.Driver(cfg.Driver) {
	case kv.DriverMemory:
		return kvmemory.New(), nil
	case kv.DriverFilesystem:
		return kvfs.New(cfg.FSDir)
	case kv.DriverSQLite:
		return kvsqlite.New(cfg.SQLitePath)
	case kv.DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		return kvpostgres.New(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
