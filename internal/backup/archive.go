package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"supplycore/internal/blob"
	"supplycore/internal/core"
)

// archivePrefix is where backup documents live inside the blob store.
const archivePrefix = "backups/"

// Archiver keeps named backup documents in a blob store so an operator can
// snapshot state before risky changes and roll back by importing.
type Archiver struct {
	store   *core.Store
	archive blob.Store
}

// NewArchiver wires a store to an archive backend.
func NewArchiver(store *core.Store, archive blob.Store) *Archiver {
	return &Archiver{store: store, archive: archive}
}

// Snapshot exports the current state and stores it as a new archive object.
// Returns the archive key.
func (a *Archiver) Snapshot(ctx context.Context) (string, error) {
	doc, err := Export(a.store)
	if err != nil {
		return "", err
	}
	raw, err := doc.Marshal()
	if err != nil {
		return "", err
	}
	key := archivePrefix + uuid.NewString() + ".json"
	_, err = a.archive.Put(ctx, key, bytes.NewReader(raw), blob.PutOptions{
		ContentType: "application/json",
		Metadata: map[string]string{
			"created_at": a.store.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("store archive: %w", err)
	}
	return key, nil
}

// List returns the stored archives, oldest key first.
func (a *Archiver) List(ctx context.Context) ([]blob.Info, error) {
	return a.archive.List(ctx, archivePrefix)
}

// Restore imports the named archive over the durable medium and reloads the
// store so the restored state becomes visible.
func (a *Archiver) Restore(ctx context.Context, key string) error {
	_, rc, err := a.archive.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("fetch archive %s: %w", key, err)
	}
	raw, err := io.ReadAll(rc)
	if cerr := rc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("read archive %s: %w", key, err)
	}
	doc, err := Parse(raw)
	if err != nil {
		return err
	}
	if err := Import(ctx, a.store.Medium(), doc); err != nil {
		return err
	}
	a.store.Reload(ctx)
	return nil
}

// Delete removes a stored archive. Reports whether it existed.
func (a *Archiver) Delete(ctx context.Context, key string) (bool, error) {
	return a.archive.Delete(ctx, key)
}

// DownloadURL returns a presigned link for the archive when the backend
// supports it.
func (a *Archiver) DownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return a.archive.PresignURL(ctx, key, expiry)
}
