package server

import (
	"context"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/errors"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	b := board.Board{ID: "b1", Name: "ops", Columns: 4, Items: []board.Item{{ID: "cpu"}}}

	// Get before Put
	if _, err := s.Get(ctx, "b1"); errors.GetCode(err) != errors.ErrCodeBoardNotFound {
		t.Errorf("Get() of missing board code = %s, want %s", errors.GetCode(err), errors.ErrCodeBoardNotFound)
	}

	if err := s.Put(ctx, b); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	got, err := s.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != "ops" || len(got.Items) != 1 {
		t.Errorf("Get() = %+v", got)
	}

	// Put replaces
	b.Name = "ops-v2"
	if err := s.Put(ctx, b); err != nil {
		t.Fatalf("Put() replace error: %v", err)
	}
	if got, _ := s.Get(ctx, "b1"); got.Name != "ops-v2" {
		t.Errorf("Put() did not replace, Name = %s", got.Name)
	}

	if err := s.Delete(ctx, "b1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := s.Delete(ctx, "b1"); errors.GetCode(err) != errors.ErrCodeBoardNotFound {
		t.Errorf("Delete() of missing board code = %s, want %s", errors.GetCode(err), errors.ErrCodeBoardNotFound)
	}
}

func TestMemoryStorePutValidates(t *testing.T) {
	s := NewMemoryStore()
	err := s.Put(context.Background(), board.Board{ID: "b1", Name: "", Columns: 4})
	if errors.GetCode(err) != errors.ErrCodeInvalidBoard {
		t.Errorf("Put() of invalid board code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidBoard)
	}
}

func TestMemoryStoreListSorted(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, b := range []board.Board{
		{ID: "2", Name: "zeta", Columns: 4},
		{ID: "3", Name: "alpha", Columns: 4},
		{ID: "1", Name: "alpha", Columns: 4},
	} {
		if err := s.Put(ctx, b); err != nil {
			t.Fatalf("Put() error: %v", err)
		}
	}

	boards, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(boards) != 3 {
		t.Fatalf("List() len = %d, want 3", len(boards))
	}
	// Sorted by name, then ID for equal names.
	wantIDs := []string{"1", "3", "2"}
	for i, want := range wantIDs {
		if boards[i].ID != want {
			t.Errorf("List()[%d].ID = %s, want %s", i, boards[i].ID, want)
		}
	}
}
