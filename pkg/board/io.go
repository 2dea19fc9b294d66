package board

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteBoardFile writes a board to a JSON file with 0644 permissions.
func WriteBoardFile(b Board, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteBoard(b, f)
}

// WriteBoard writes a board as indented JSON to an io.Writer.
func WriteBoard(b Board, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	return nil
}

// ReadBoardFile reads a JSON file and returns the validated board.
func ReadBoardFile(path string) (Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return Board{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadBoard(f)
}

// ReadBoard decodes and validates a JSON board from an io.Reader.
func ReadBoard(r io.Reader) (Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Board{}, err
	}
	return UnmarshalBoard(data)
}

// WriteLayoutFile writes a packed layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// ReadLayoutFile reads a packed layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("decode layout %s: %w", path, err)
	}
	return l, nil
}

// MarshalLayout serializes a layout to JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.Marshal(l)
}

// UnmarshalLayout deserializes JSON bytes to a layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, err
	}
	return l, nil
}
