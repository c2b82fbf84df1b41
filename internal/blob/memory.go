package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory keeps archives in a map. Test use only.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	data []byte
	info Info
}

// NewMemory returns an empty in-memory archive store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memObject)}
}

func (m *Memory) Driver() Driver { return DriverMemory }

func (m *Memory) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	if strings.TrimSpace(key) == "" {
		return Info{}, fmt.Errorf("empty key")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Info{}, err
	}
	info := Info{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  opts.ContentType,
		Metadata:     opts.Metadata,
		LastModified: time.Now().UTC(),
	}
	m.mu.Lock()
	m.objects[key] = memObject{data: data, info: info}
	m.mu.Unlock()
	return info, nil
}

func (m *Memory) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return Info{}, nil, fmt.Errorf("blob %s: %w", key, os.ErrNotExist)
	}
	return obj.info, io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *Memory) Delete(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return false, nil
	}
	delete(m.objects, key)
	return true, nil
}

func (m *Memory) List(_ context.Context, prefix string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var infos []Info
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, obj.info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (m *Memory) PresignURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrUnsupported
}
