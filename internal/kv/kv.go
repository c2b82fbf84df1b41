// Package kv defines the durable key-value medium the store persists its
// collections to. Values are opaque JSON documents; one key per collection.
package kv

import (
	"context"
	"errors"
)

// Driver identifies a concrete key-value backend implementation.
type Driver string

const (
	// DriverMemory is the in-memory implementation used in tests.
	DriverMemory Driver = "memory"
	// DriverFilesystem stores one JSON file per key under a root directory.
	DriverFilesystem Driver = "fs"
	// DriverSQLite stores keys as rows of an embedded SQLite table.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres stores keys as rows of a PostgreSQL table.
	DriverPostgres Driver = "postgres"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("kv: store closed")

// Store is a named-blob medium. Get reports presence explicitly so callers
// can distinguish a missing key from an empty value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Driver() Driver
	Close() error
}
