package store

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lborres/kindercrew/core"
)

var _ core.RecordStorageWithStats = (*Memory)(nil)

// Memory is process-local record storage. It does not survive restarts
// and is meant for tests and single-run demos.
type Memory struct {
	records map[string][]byte
	mu      sync.RWMutex

	// counters
	hits    int64
	misses  int64
	sets    int64
	deletes int64
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[string][]byte),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.records[key]
	if !exists {
		atomic.AddInt64(&m.misses, 1)
		return nil, core.ErrRecordNotFound
	}

	atomic.AddInt64(&m.hits, 1)
	return append([]byte(nil), value...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = append([]byte(nil), value...)
	atomic.AddInt64(&m.sets, 1)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, existed := m.records[key]; existed {
		delete(m.records, key)
		atomic.AddInt64(&m.deletes, 1)
	}
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func (m *Memory) Stats() core.StorageStats {
	return core.StorageStats{
		Hits:    atomic.LoadInt64(&m.hits),
		Misses:  atomic.LoadInt64(&m.misses),
		Sets:    atomic.LoadInt64(&m.sets),
		Deletes: atomic.LoadInt64(&m.deletes),
		Size:    m.Len(),
	}
}
