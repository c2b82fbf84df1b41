package kv_test

import (
	"context"
	"errors"
	"testing"

	"supplycore/internal/kv"
	"supplycore/internal/kv/memory"
)

type widget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLoadReturnsFallbackOnMissingKey(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	fallback := widget{Name: "seed", Count: 1}
	got := kv.Load(ctx, s, "absent", fallback)
	if got != fallback {
		t.Fatalf("Load on missing key = %+v, want fallback", got)
	}
}

func TestLoadReturnsFallbackOnCorruptPayloads(t *testing.T) {
	ctx := context.Background()
	fallback := widget{Name: "seed"}
	for _, payload := range []string{"{not json", "null", "undefined", "", "   "} {
		s := memory.New()
		if err := s.Set(ctx, "k", []byte(payload)); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, used := kv.LoadErr(ctx, s, "k", fallback)
		if used {
			t.Errorf("payload %q reported as used", payload)
		}
		if got != fallback {
			t.Errorf("payload %q: got %+v, want fallback", payload, got)
		}
	}
}

func TestLoadNeverReturnsErrorOnReadFailure(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	fallback := widget{Name: "seed"}
	got := kv.Load(ctx, s, "k", fallback)
	if got != fallback {
		t.Fatalf("Load on closed store = %+v, want fallback", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	in := widget{Name: "tumbler", Count: 7}
	if err := kv.Save(ctx, s, "k", in); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, used := kv.LoadErr(ctx, s, "k", widget{})
	if !used {
		t.Fatal("stored value not used")
	}
	if got != in {
		t.Fatalf("round trip: got %+v, want %+v", got, in)
	}
}

func TestSaveSurfacesMediumError(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := kv.Save(ctx, s, "k", widget{}); !errors.Is(err, kv.ErrClosed) {
		t.Fatalf("save on closed store: %v, want ErrClosed", err)
	}
}
