package storage

import (
	"context"
	"maps"
	"sync"

	"github.com/niksmo/qkart/internal/core/port"
)

var _ port.KeyValueStorage = (*MemoryKV)(nil)

// MemoryKV keeps session entries in process memory.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: make(map[string]map[string]string)}
}

// Get returns a copy of the namespace entries. A missing namespace is
// an empty map.
func (kv *MemoryKV) Get(ctx context.Context, ns string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	entries := maps.Clone(kv.m[ns])
	if entries == nil {
		entries = make(map[string]string)
	}
	return entries, nil
}

func (kv *MemoryKV) Set(ctx context.Context, ns string, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()

	m, ok := kv.m[ns]
	if !ok {
		m = make(map[string]string, len(entries))
		kv.m[ns] = m
	}
	maps.Copy(m, entries)
	return nil
}

func (kv *MemoryKV) Clear(ctx context.Context, ns string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()

	delete(kv.m, ns)
	return nil
}
