package errors

import (
	"strings"
	"unicode"
)

// ValidateItemID validates an item identifier for safety and correctness.
// Item IDs end up in file names, cache keys, and API paths, so the rules
// are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "item ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "item ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "item ID contains control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "item ID contains invalid characters: %q", id)
	}

	return nil
}

// ValidateBoardName validates a board name for storage and display.
// Board names are used as store keys and file basenames.
func ValidateBoardName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidBoard, "board name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidBoard, "board name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidBoard, "board name contains control characters")
		}
	}

	return nil
}

// ValidateColumns validates a column count for packing and grid construction.
// The upper bound guards against pathological inputs from the API; real
// dashboards use single-digit column counts.
func ValidateColumns(columns int) error {
	if columns < 1 {
		return New(ErrCodeInvalidColumns, "column count must be positive, got %d", columns)
	}

	const maxColumns = 1000
	if columns > maxColumns {
		return New(ErrCodeInvalidColumns, "column count too large (max %d), got %d", maxColumns, columns)
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
// It prevents path traversal outside the working directory and ensures
// a reasonable path length.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
