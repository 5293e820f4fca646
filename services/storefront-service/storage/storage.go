// Package storage provides the key/value backends that stand in for browser
// local storage: every shopper gets a namespaced view over one backend.
package storage

import (
	"context"
	"strings"
)

// Keys under which storefront state is persisted.
const (
	KeyWishlist        = "3dbyte-wishlist"
	KeyCompare         = "3dbyte-compare"
	KeyInventoryAlerts = "inventory_alerts"
	KeyPendingGiftCard = "pendingGiftCard"
	KeyCartID          = "medusa_cart_id"
)

// Store is a byte-oriented key/value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type scoped struct {
	inner  Store
	prefix string
}

// Scoped returns a view of s in which every key is prefixed by "namespace:".
func Scoped(s Store, namespace string) Store {
	return &scoped{inner: s, prefix: namespace + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scoped) Keys(ctx context.Context, prefix string) ([]string, error) {
	l, ok := s.inner.(Lister)
	if !ok {
		return nil, ErrNotListable
	}
	keys, err := l.Keys(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, s.prefix)
	}
	return keys, nil
}
