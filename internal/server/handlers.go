package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layout"
	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// =============================================================================
// Board CRUD
// =============================================================================

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.store.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, boards)
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var b board.Board
	if err := decodeJSON(r, &b); err != nil {
		respondError(w, err)
		return
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Columns == 0 {
		b.Columns = s.columns
	}
	if err := s.store.Put(r.Context(), b); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	var b board.Board
	if err := decodeJSON(r, &b); err != nil {
		respondError(w, err)
		return
	}
	// The URL is authoritative for the ID.
	b.ID = chi.URLParam(r, "boardID")
	if err := s.store.Put(r.Context(), b); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "boardID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Layout and Rendering
// =============================================================================

// layoutResponse carries a packed layout plus its content hash.
type layoutResponse struct {
	Layout     board.Layout `json:"layout"`
	LayoutHash string       `json:"layout_hash,omitempty"`
	Cached     bool         `json:"cached"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		respondError(w, err)
		return
	}
	columns, err := s.resolveColumns(r, b)
	if err != nil {
		respondError(w, err)
		return
	}

	opts := pipeline.Options{Columns: columns, Refresh: r.URL.Query().Get("refresh") == "true"}
	l, hit, err := s.runner.PackWithCacheInfo(r.Context(), b.LayoutItems(), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, layoutResponse{Layout: l, Cached: hit})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		respondError(w, err)
		return
	}
	columns, err := s.resolveColumns(r, b)
	if err != nil {
		respondError(w, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Columns:  columns,
		Formats:  []string{format},
		NoLabels: q.Get("labels") == "false",
		Title:    b.Name,
		Logger:   s.logger,
	}
	if v := q.Get("cell_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			respondError(w, errors.New(errors.ErrCodeInvalidInput, "invalid cell_size %q", v))
			return
		}
		opts.CellSize = size
	}

	result, err := s.runner.Execute(r.Context(), b.LayoutItems(), opts)
	if err != nil {
		respondError(w, err)
		return
	}

	switch format {
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// =============================================================================
// Layout Operations
// =============================================================================

type moveRequest struct {
	ItemID string          `json:"item_id"`
	Path   []grid.Position `json:"path"`
}

type resizeRequest struct {
	ItemID string          `json:"item_id"`
	Path   []grid.Position `json:"path"`
}

type insertRequest struct {
	ItemID string          `json:"item_id,omitempty"`
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Path   []grid.Position `json:"path"`
}

type removeRequest struct {
	ItemID string `json:"item_id"`
}

// opResponse carries the result of a layout operation.
type opResponse struct {
	Board  board.Board  `json:"board"`
	Layout board.Layout `json:"layout"`
	Shift  layout.Shift `json:"shift"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	s.applyOperation(w, r, "move", req.ItemID, func(e *layout.Engine) (*grid.Grid, layout.Shift, error) {
		return e.Move(req.ItemID, req.Path)
	})
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	s.applyOperation(w, r, "resize", req.ItemID, func(e *layout.Engine) (*grid.Grid, layout.Shift, error) {
		return e.Resize(req.ItemID, req.Path)
	})
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req insertRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.ItemID == "" {
		req.ItemID = uuid.NewString()
	}
	s.applyOperation(w, r, "insert", req.ItemID, func(e *layout.Engine) (*grid.Grid, layout.Shift, error) {
		return e.Insert(req.ItemID, req.Width, req.Height, req.Path)
	})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req removeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	s.applyOperation(w, r, "remove", req.ItemID, func(e *layout.Engine) (*grid.Grid, layout.Shift, error) {
		return e.Remove(req.ItemID)
	})
}

// applyOperation runs one engine operation against the board's packed grid,
// writes the resulting item definitions back to the store, and responds with
// the new layout and the shift. Operations on the same board are serialized.
func (s *Server) applyOperation(w http.ResponseWriter, r *http.Request, op, itemID string, fn func(*layout.Engine) (*grid.Grid, layout.Shift, error)) {
	boardID := chi.URLParam(r, "boardID")
	mu := s.boardLock(boardID)
	mu.Lock()
	defer mu.Unlock()

	b, err := s.store.Get(r.Context(), boardID)
	if err != nil {
		respondError(w, err)
		return
	}
	columns, err := s.resolveColumns(r, b)
	if err != nil {
		respondError(w, err)
		return
	}

	g, err := layout.InterpretItems(b.LayoutItems(), columns)
	if err != nil {
		respondError(w, err)
		return
	}
	engine, err := layout.NewEngine(g)
	if err != nil {
		respondError(w, err)
		return
	}

	start := time.Now()
	ng, shift, err := fn(engine)
	observability.Engine().OnOperation(r.Context(), op, itemID, len(shift), time.Since(start), err)
	if err != nil {
		respondError(w, err)
		return
	}
	engine.Commit(ng)

	switch op {
	case "insert":
		if rect, err := ng.RectOf(itemID); err == nil {
			b = b.UpsertItem(board.Item{ID: itemID, ColSpan: rect.W, RowSpan: rect.H})
		}
	case "remove":
		b = b.RemoveItem(itemID)
	}

	// Persist the new arrangement as item definitions for this breakpoint.
	b = b.ApplyItems(layout.TransformItems(b.LayoutItems(), ng))
	if err := s.store.Put(r.Context(), b); err != nil {
		respondError(w, err)
		return
	}

	s.logger.Info("applied operation",
		"op", op,
		"board", boardID,
		"item", itemID,
		"shift_entries", len(shift))

	respondJSON(w, http.StatusOK, opResponse{
		Board:  b,
		Layout: board.LayoutFromGrid(ng),
		Shift:  shift,
	})
}

// resolveColumns picks the breakpoint width: query parameter, then the
// board's own column count, then the server default.
func (s *Server) resolveColumns(r *http.Request, b board.Board) (int, error) {
	if v := r.URL.Query().Get("columns"); v != "" {
		columns, err := strconv.Atoi(v)
		if err != nil {
			return 0, errors.New(errors.ErrCodeInvalidColumns, "invalid columns %q", v)
		}
		if err := errors.ValidateColumns(columns); err != nil {
			return 0, err
		}
		return columns, nil
	}
	if b.Columns > 0 {
		return b.Columns, nil
	}
	return s.columns, nil
}
