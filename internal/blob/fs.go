package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Filesystem stores archives under a root directory, one file per key plus
// a `.meta` sidecar for content type and user metadata.
type Filesystem struct {
	root string
}

// NewFilesystem roots an archive store at path, creating it if needed. An
// empty path defaults to ./archives.
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = "./archives"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Filesystem{root: root}, nil
}

func (f *Filesystem) Driver() Driver { return DriverFilesystem }

// cleanKey rejects keys that would escape the root.
func cleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return clean, nil
}

type sidecar struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func (f *Filesystem) paths(key string) (data, meta string, err error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", "", err
	}
	data = filepath.Join(f.root, filepath.FromSlash(clean))
	return data, data + ".meta", nil
}

func (f *Filesystem) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	dataPath, metaPath, err := f.paths(key)
	if err != nil {
		return Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return Info{}, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".put-*")
	if err != nil {
		return Info{}, err
	}
	size, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return Info{}, err
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		_ = os.Remove(tmp.Name())
		return Info{}, err
	}
	side := sidecar{ContentType: opts.ContentType, Metadata: opts.Metadata}
	raw, err := json.Marshal(side)
	if err == nil {
		err = os.WriteFile(metaPath, raw, 0o644)
	}
	if err != nil {
		return Info{}, err
	}
	return Info{
		Key:          key,
		Size:         size,
		ContentType:  opts.ContentType,
		Metadata:     opts.Metadata,
		LastModified: time.Now().UTC(),
	}, nil
}

func (f *Filesystem) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	dataPath, metaPath, err := f.paths(key)
	if err != nil {
		return Info{}, nil, err
	}
	fh, err := os.Open(dataPath)
	if err != nil {
		return Info{}, nil, err
	}
	st, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return Info{}, nil, err
	}
	info := Info{Key: key, Size: st.Size(), LastModified: st.ModTime().UTC()}
	if raw, err := os.ReadFile(metaPath); err == nil {
		var side sidecar
		if json.Unmarshal(raw, &side) == nil {
			info.ContentType = side.ContentType
			info.Metadata = side.Metadata
		}
	}
	return info, fh, nil
}

func (f *Filesystem) Delete(_ context.Context, key string) (bool, error) {
	dataPath, metaPath, err := f.paths(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(dataPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	_ = os.Remove(metaPath)
	return true, nil
}

func (f *Filesystem) List(_ context.Context, prefix string) ([]Info, error) {
	var infos []Info
	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || strings.HasSuffix(path, ".meta") {
			return err
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		st, err := d.Info()
		if err != nil {
			return err
		}
		infos = append(infos, Info{Key: key, Size: st.Size(), LastModified: st.ModTime().UTC()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (f *Filesystem) PresignURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrUnsupported
}
