// Package memory provides an in-process cart.Storage used in tests and
// local development without Redis.
package memory

import (
	"context"
	"sync"

	"github.com/rentkart/rentkart/internal/domain/cart"
)

var _ cart.Storage = (*CartStorage)(nil)

// CartStorage keeps cart records in a map guarded by a mutex.
type CartStorage struct {
	mu       sync.Mutex
	records  map[string][]byte
	watchers map[string][]chan struct{}
}

// NewCartStorage creates an empty in-memory storage.
func NewCartStorage() *CartStorage {
	return &CartStorage{
		records:  make(map[string][]byte),
		watchers: make(map[string][]chan struct{}),
	}
}

// Seed installs a raw record directly, bypassing notification. Test helper.
func (s *CartStorage) Seed(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = data
}

// Raw returns the stored bytes for the key. Test helper.
func (s *CartStorage) Raw(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[key]
}

func (s *CartStorage) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.records[key]
	if !ok {
		return nil, cart.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *CartStorage) Write(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.records[key] = stored
	for _, ch := range s.watchers[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (s *CartStorage) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.watchers[key] = append(s.watchers[key], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		ws := s.watchers[key]
		for i, w := range ws {
			if w == ch {
				s.watchers[key] = append(ws[:i], ws[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}
