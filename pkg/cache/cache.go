// Package cache provides the caching layer for packed layouts and rendered
// artifacts, with file, Redis, and null backends behind one interface.
//
// Packing is deterministic, so results are cached by content hash: the
// items and column count hash to a key, and a hit skips the pack entirely.
// The CLI uses the file backend under the XDG cache directory; the server
// uses Redis so multiple instances share one cache.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Cache TTLs per entry type.
const (
	// TTLLayout is the lifetime of packed layout entries. Packing is pure,
	// so entries only expire to bound cache growth.
	TTLLayout = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered artifact entries.
	TTLArtifact = 30 * 24 * time.Hour

	// TTLBoard is the lifetime of cached board documents in the server.
	TTLBoard = time.Hour
)

// Keyer generates cache keys for the different entry types.
type Keyer interface {
	// BoardKey generates a key for a stored board document.
	BoardKey(boardID string) string

	// LayoutKey generates a key for a packed layout.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the packing parameters that affect the result.
type LayoutKeyOpts struct {
	Columns int
}

// ArtifactKeyOpts are the rendering parameters that affect the artifact.
type ArtifactKeyOpts struct {
	Format   string
	CellSize int
	Labels   bool
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// BoardKey generates a key for a stored board document.
func (k *DefaultKeyer) BoardKey(boardID string) string {
	return "board:" + boardID
}

// LayoutKey generates a key for a packed layout.
func (k *DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
