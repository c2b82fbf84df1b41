package backup

import (
	"context"
	"strings"
	"testing"

	"supplycore/internal/blob"
	"supplycore/internal/core"
	"supplycore/internal/kv/memory"
	"supplycore/pkg/domain"
)

func TestSnapshotAndRestore(t *testing.T) {
	ctx := context.Background()
	medium := memory.New()
	store := core.NewStore(ctx, medium, nil)
	svc := core.NewService(store, nil, nil)
	arch := NewArchiver(store, blob.NewMemory())

	created, err := svc.CreateProduct(ctx, domain.Product{Name: "Archived"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	key, err := arch.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !strings.HasPrefix(key, "backups/") || !strings.HasSuffix(key, ".json") {
		t.Fatalf("archive key %q", key)
	}

	// Mutate past the snapshot, then roll back.
	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.ResolveProduct(created.ID); ok {
		t.Fatal("delete did not take")
	}

	if err := arch.Restore(ctx, key); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, ok := store.ResolveProduct(created.ID); !ok {
		t.Fatal("restore did not bring the product back")
	}
}

func TestListReturnsStoredArchives(t *testing.T) {
	ctx := context.Background()
	store := core.NewStore(ctx, memory.New(), nil)
	arch := NewArchiver(store, blob.NewMemory())

	if _, err := arch.Snapshot(ctx); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if _, err := arch.Snapshot(ctx); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	infos, err := arch.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d archives, want 2", len(infos))
	}
}

func TestRestoreRejectsMissingArchive(t *testing.T) {
	ctx := context.Background()
	store := core.NewStore(ctx, memory.New(), nil)
	arch := NewArchiver(store, blob.NewMemory())

	if err := arch.Restore(ctx, "backups/nope.json"); err == nil {
		t.Fatal("missing archive restored")
	}
}

func TestDeleteReportsExistence(t *testing.T) {
	ctx := context.Background()
	store := core.NewStore(ctx, memory.New(), nil)
	arch := NewArchiver(store, blob.NewMemory())

	key, err := arch.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	existed, err := arch.Delete(ctx, key)
	if err != nil || !existed {
		t.Fatalf("delete existing: existed=%v err=%v", existed, err)
	}
	existed, err = arch.Delete(ctx, key)
	if err != nil || existed {
		t.Fatalf("delete twice: existed=%v err=%v", existed, err)
	}
}
