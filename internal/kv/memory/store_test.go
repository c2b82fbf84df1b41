package memory

import (
	"context"
	"errors"
	"testing"

	"supplycore/internal/kv"
)

func TestSetGetDeleteKeys(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "a"); err != nil || ok {
		t.Fatalf("get on empty store: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "b", []byte("2")); err != nil {
		t.Fatalf("set: %v", err)
	}

	v, ok, err := s.Get(ctx, "a")
	if err != nil || !ok || string(v) != "1" {
		t.Fatalf("get a: %q ok=%v err=%v", v, ok, err)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v", keys)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatal("deleted key still present")
	}
}

func TestOperationsAfterCloseReturnErrClosed(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, _, err := s.Get(ctx, "a"); !errors.Is(err, kv.ErrClosed) {
		t.Fatalf("get after close: %v", err)
	}
	if err := s.Set(ctx, "a", nil); !errors.Is(err, kv.ErrClosed) {
		t.Fatalf("set after close: %v", err)
	}
}

func TestValuesAreCopiedOnWrite(t *testing.T) {
	ctx := context.Background()
	s := New()
	buf := []byte("original")
	if err := s.Set(ctx, "a", buf); err != nil {
		t.Fatalf("set: %v", err)
	}
	buf[0] = 'X'
	v, _, _ := s.Get(ctx, "a")
	if string(v) != "original" {
		t.Fatalf("stored value aliased caller buffer: %q", v)
	}
}
