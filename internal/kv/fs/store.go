// Package fs provides a filesystem-backed kv.Store: one JSON file per key
// under a root directory. Writes go through a temp file and rename so a
// crashed process never leaves a torn value behind.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"supplycore/internal/kv"
)

const fileExt = ".json"

// Store maps keys to files named <key>.json under root.
type Store struct {
	root string
}

// New returns a filesystem store rooted at path, creating it if needed.
func New(root string) (*Store, error) {
	if root == "" {
		root = "./statedata"
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create kv root: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Driver() kv.Driver { return kv.DriverFilesystem }

// sanitizeKey forbids separators and traversal so keys stay flat file names.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return key, nil
}

func (s *Store) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, k+fileExt), nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *Store) Delete(_ context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Close() error { return nil }
