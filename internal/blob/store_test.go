package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	fsStore, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	return map[string]Store{
		"memory": NewMemory(),
		"fs":     fsStore,
	}
}

func TestPutGetOverwriteDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			info, err := s.Put(ctx, "backups/a.json", strings.NewReader(`{"v":1}`), PutOptions{
				ContentType: "application/json",
			})
			if err != nil {
				t.Fatalf("put: %v", err)
			}
			if info.Size != 7 {
				t.Fatalf("size = %d", info.Size)
			}

			// Overwrite is allowed.
			if _, err := s.Put(ctx, "backups/a.json", strings.NewReader(`{"v":2}`), PutOptions{}); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			_, rc, err := s.Get(ctx, "backups/a.json")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			data, err := io.ReadAll(rc)
			_ = rc.Close()
			if err != nil || string(data) != `{"v":2}` {
				t.Fatalf("payload %q err=%v", data, err)
			}

			existed, err := s.Delete(ctx, "backups/a.json")
			if err != nil || !existed {
				t.Fatalf("delete: existed=%v err=%v", existed, err)
			}
			existed, err = s.Delete(ctx, "backups/a.json")
			if err != nil || existed {
				t.Fatalf("delete missing: existed=%v err=%v", existed, err)
			}
		})
	}
}

func TestListFiltersByPrefixAndSorts(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"backups/b.json", "backups/a.json", "other/x.json"} {
				if _, err := s.Put(ctx, key, strings.NewReader("{}"), PutOptions{}); err != nil {
					t.Fatalf("put %s: %v", key, err)
				}
			}
			infos, err := s.List(ctx, "backups/")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(infos) != 2 {
				t.Fatalf("got %d objects", len(infos))
			}
			if infos[0].Key != "backups/a.json" || infos[1].Key != "backups/b.json" {
				t.Fatalf("order: %v %v", infos[0].Key, infos[1].Key)
			}
		})
	}
}

func TestGetMissingKeyFails(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, _, err := s.Get(ctx, "backups/missing.json"); err == nil {
				t.Fatal("missing key succeeded")
			}
		})
	}
}

func TestInvalidKeysRejected(t *testing.T) {
	ctx := context.Background()
	fsStore, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	for _, key := range []string{"", "  ", "/abs", "../escape", "a/../../b"} {
		if _, err := fsStore.Put(ctx, key, strings.NewReader("{}"), PutOptions{}); err == nil {
			t.Errorf("key %q accepted", key)
		}
	}
}

func TestPresignUnsupportedOnLocalDrivers(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.PresignURL(ctx, "backups/a.json", time.Minute); !errors.Is(err, ErrUnsupported) {
				t.Fatalf("presign: %v", err)
			}
		})
	}
}
