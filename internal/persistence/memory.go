package persistence

import (
	"context"
	"sync"
)

// MemoryBackend keeps the blob in process memory.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Get(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, ErrAbsent
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBackend) Put(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) Ping(context.Context) error { return nil }
func (b *MemoryBackend) Close() error               { return nil }
func (b *MemoryBackend) Name() string               { return "memory" }
