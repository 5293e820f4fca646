// Package liststore holds the shopper's persisted lists: each one is loaded
// from a storage key once, mutated in memory and written back in full after
// every change.
package liststore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"go.uber.org/zap"
)

// Store is a deduplicated, optionally capped list of T persisted as a JSON
// array under a single key. A zero limit means unbounded.
type Store[T any] struct {
	mu      sync.RWMutex
	backend storage.Store
	key     string
	id      func(T) string
	limit   int
	items   []T
	loading bool
	loadErr error
	log     *zap.Logger
}

// New loads the list stored under key. A missing key yields an empty list;
// unreadable or malformed data is logged and also yields an empty list. After
// a backend read error the list refuses mutations other than Clear, so the
// stored value is never overwritten with the empty fallback.
func New[T any](ctx context.Context, backend storage.Store, key string, id func(T) string, limit int, log *zap.Logger) *Store[T] {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store[T]{
		backend: backend,
		key:     key,
		id:      id,
		limit:   limit,
		loading: true,
		log:     log,
	}
	s.load(ctx)
	return s
}

func (s *Store[T]) load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	raw, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.log.Error("failed to read stored list", zap.String("key", s.key), zap.Error(err))
		s.loadErr = fmt.Errorf("load %s: %w", s.key, err)
		return
	}
	if !ok {
		return
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Error("failed to parse stored list", zap.String("key", s.key), zap.Error(err))
		return
	}
	s.items = s.normalize(items)
}

// normalize drops duplicate ids and anything past the cap.
func (s *Store[T]) normalize(items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if s.limit > 0 && len(out) >= s.limit {
			break
		}
		id := s.id(it)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, it)
	}
	if len(out) != len(items) {
		s.log.Warn("dropped invalid entries from stored list",
			zap.String("key", s.key), zap.Int("stored", len(items)), zap.Int("kept", len(out)))
	}
	return out
}

// persist writes the current list. Callers hold the write lock.
func (s *Store[T]) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.backend.Set(ctx, s.key, raw); err != nil {
		s.log.Error("failed to persist list", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("persist %s: %w", s.key, err)
	}
	return nil
}

func (s *Store[T]) indexOf(id string) int {
	for i, it := range s.items {
		if s.id(it) == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) full() bool {
	return s.limit > 0 && len(s.items) >= s.limit
}

// Err returns the read error from the initial load, if any.
func (s *Store[T]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Loading reports whether the initial load is still in progress.
func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Items returns a copy of the list in insertion order.
func (s *Store[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store[T]) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Full reports whether the list has reached its cap.
func (s *Store[T]) Full() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.full()
}

// Add appends item unless an element with the same id exists or the list is
// full. It reports whether the item was added.
func (s *Store[T]) Add(ctx context.Context, item T) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return false, s.loadErr
	}
	if s.indexOf(s.id(item)) >= 0 || s.full() {
		return false, nil
	}
	s.items = append(s.items, item)
	return true, s.persist(ctx)
}

// Remove drops the element with the given id.
func (s *Store[T]) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return false, s.loadErr
	}
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return true, s.persist(ctx)
}

// RemoveWhere drops every element matching pred and returns how many went.
func (s *Store[T]) RemoveWhere(ctx context.Context, pred func(T) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return 0, s.loadErr
	}
	kept := make([]T, 0, len(s.items))
	for _, it := range s.items {
		if !pred(it) {
			kept = append(kept, it)
		}
	}
	removed := len(s.items) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.items = kept
	return removed, s.persist(ctx)
}

// Update applies fn to the element with the given id.
func (s *Store[T]) Update(ctx context.Context, id string, fn func(*T)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return false, s.loadErr
	}
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	fn(&s.items[i])
	return true, s.persist(ctx)
}

// Toggle removes item when present, otherwise adds it subject to the cap.
// It reports whether the item is in the list afterwards.
func (s *Store[T]) Toggle(ctx context.Context, item T) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return false, s.loadErr
	}
	if i := s.indexOf(s.id(item)); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		return false, s.persist(ctx)
	}
	if s.full() {
		return false, nil
	}
	s.items = append(s.items, item)
	return true, s.persist(ctx)
}

// Clear empties the list and stores an empty array. It does not depend on
// the previous contents, so it also runs after a failed load.
func (s *Store[T]) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loadErr = nil
	return s.persist(ctx)
}
