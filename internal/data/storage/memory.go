package storage

import (
	"context"
	"sync"
)

// MemoryStorage is a process-local wallet store
type MemoryStorage struct {
	mu      sync.RWMutex
	wallets map[int64][]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{wallets: make(map[int64][]string)}
}

func (s *MemoryStorage) Insert(_ context.Context, userID int64, address string) error {
	if address == "" {
		return ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets[userID] = append(s.wallets[userID], address)
	return nil
}

func (s *MemoryStorage) QueryAll(_ context.Context, userID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.wallets[userID]))
	copy(out, s.wallets[userID])
	return out, nil
}

func (s *MemoryStorage) Close() error { return nil }
