// Package blob stores backup archives as opaque objects. The surface is a
// minimal S3 subset so the AWS adapter is nearly direct while the
// filesystem and memory adapters emulate it for development and tests.
package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete archive backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local directory (default, dev)
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// ErrUnsupported is returned for operations a backend cannot provide, such
// as presigned URLs on the filesystem driver.
var ErrUnsupported = errors.New("blob: operation unsupported by driver")

// PutOptions carries optional object attributes.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Info describes a stored archive object.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store is the archive medium. Put overwrites an existing key: re-exporting
// a backup under the same archive id replaces the prior object.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
	// List returns objects under prefix, ordered by key ascending.
	List(ctx context.Context, prefix string) ([]Info, error)
	// PresignURL returns a time-limited download URL, or ErrUnsupported.
	PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Driver() Driver
}
