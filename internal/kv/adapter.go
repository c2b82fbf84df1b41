package kv

import (
	"context"
	"encoding/json"
	"strings"
)

// Load reads and decodes the value stored under key. It never fails: a
// missing key, a read error, malformed JSON, or the literal payloads "null"
// and "undefined" all yield fallback. The medium's error surface is collapsed
// here so collection callers see the never-throw contract in the signature.
func Load[T any](ctx context.Context, s Store, key string, fallback T) T {
	v, _ := LoadErr(ctx, s, key, fallback)
	return v
}

// LoadErr behaves like Load but additionally reports whether the stored value
// was used (true) or the fallback was substituted (false). Callers that want
// to log recovery keep the signal; everyone else uses Load.
func LoadErr[T any](ctx context.Context, s Store, key string, fallback T) (T, bool) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return fallback, false
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == "undefined" {
		return fallback, false
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return fallback, false
	}
	return out, true
}

// Save serializes v to JSON and writes it under key. Persistence is
// best-effort: callers may inspect the error for logging or metrics but must
// not propagate it to mutation callers.
func Save[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
