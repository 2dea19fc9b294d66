package server

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/errors"
)

// BoardStore persists board documents. Implementations must be safe for
// concurrent use.
type BoardStore interface {
	// Get returns the board with the given ID, or ErrCodeBoardNotFound.
	Get(ctx context.Context, id string) (board.Board, error)

	// Put creates or replaces a board.
	Put(ctx context.Context, b board.Board) error

	// Delete removes a board. Missing boards return ErrCodeBoardNotFound.
	Delete(ctx context.Context, id string) error

	// List returns all boards sorted by name.
	List(ctx context.Context) ([]board.Board, error)

	// Close releases store resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-memory board store for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]board.Board
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{boards: make(map[string]board.Board)}
}

// Get returns the board with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (board.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[id]
	if !ok {
		return board.Board{}, errors.New(errors.ErrCodeBoardNotFound, "no board %q", id)
	}
	return b, nil
}

// Put creates or replaces a board.
func (s *MemoryStore) Put(ctx context.Context, b board.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[b.ID] = b
	return nil
}

// Delete removes a board.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[id]; !ok {
		return errors.New(errors.ErrCodeBoardNotFound, "no board %q", id)
	}
	delete(s.boards, id)
	return nil
}

// List returns all boards sorted by name.
func (s *MemoryStore) List(ctx context.Context) ([]board.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]board.Board, 0, len(s.boards))
	for _, b := range s.boards {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ BoardStore = (*MemoryStore)(nil)
