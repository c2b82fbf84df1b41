package fs

import (
	"context"
	"testing"
)

func TestSetGetDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Set(ctx, "supplycore_products", []byte(`[{"id":"P1"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "supplycore_products")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(v) != `[{"id":"P1"}]` {
		t.Fatalf("payload = %q", v)
	}

	if err := s.Delete(ctx, "supplycore_products"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "supplycore_products"); ok {
		t.Fatal("deleted key still readable")
	}
}

func TestKeysListsStoredKeys(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"b-key", "a-key"} {
		if err := s.Set(ctx, key, []byte("{}")); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a-key" || keys[1] != "b-key" {
		t.Fatalf("keys = %v", keys)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"../escape", "a/b", "", "  "} {
		if err := s.Set(ctx, key, []byte("{}")); err == nil {
			t.Errorf("key %q accepted", key)
		}
	}
}

func TestMissingKeyIsNotAnError(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, ok, err := s.Get(ctx, "absent")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if ok {
		t.Fatal("missing key reported present")
	}
}
