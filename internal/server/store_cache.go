package server

import (
	"context"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/cache"
)

// CachedStore wraps a BoardStore with a read-through cache. Writes and
// deletes invalidate the cached document. A cache failure never fails the
// request; the store remains the source of truth.
type CachedStore struct {
	inner BoardStore
	cache cache.Cache
	keyer cache.Keyer
}

// NewCachedStore wraps inner with the given cache. A nil cache disables
// caching via the null backend.
func NewCachedStore(inner BoardStore, c cache.Cache, keyer cache.Keyer) *CachedStore {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &CachedStore{inner: inner, cache: c, keyer: keyer}
}

// Get returns the board, consulting the cache first.
func (s *CachedStore) Get(ctx context.Context, id string) (board.Board, error) {
	key := s.keyer.BoardKey(id)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		if b, err := board.UnmarshalBoard(data); err == nil {
			return b, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		_ = s.cache.Delete(ctx, key)
	}

	b, err := s.inner.Get(ctx, id)
	if err != nil {
		return board.Board{}, err
	}
	if data, err := board.MarshalBoard(b); err == nil {
		_ = s.cache.Set(ctx, key, data, cache.TTLBoard)
	}
	return b, nil
}

// Put writes through to the store and refreshes the cached document.
func (s *CachedStore) Put(ctx context.Context, b board.Board) error {
	if err := s.inner.Put(ctx, b); err != nil {
		return err
	}
	if data, err := board.MarshalBoard(b); err == nil {
		_ = s.cache.Set(ctx, s.keyer.BoardKey(b.ID), data, cache.TTLBoard)
	}
	return nil
}

// Delete removes the board and its cached document.
func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.inner.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, s.keyer.BoardKey(id))
	return nil
}

// List always hits the store; listings are not cached.
func (s *CachedStore) List(ctx context.Context) ([]board.Board, error) {
	return s.inner.List(ctx)
}

// Close closes the underlying store. The cache is owned by the caller.
func (s *CachedStore) Close(ctx context.Context) error {
	return s.inner.Close(ctx)
}

var _ BoardStore = (*CachedStore)(nil)
