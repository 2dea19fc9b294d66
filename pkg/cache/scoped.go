package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The server uses this to give each owner a separate cache namespace so
// private boards never collide across tenants.
//
// Example usage:
//
//	// Owner-specific keys for private boards
//	ownerKeyer := NewScopedKeyer(NewDefaultKeyer(), "owner:abc123:")
//
//	// Global keys for shared layouts
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// BoardKey generates a prefixed key for a stored board document.
func (k *ScopedKeyer) BoardKey(boardID string) string {
	return k.prefix + k.inner.BoardKey(boardID)
}

// LayoutKey generates a prefixed key for a packed layout.
func (k *ScopedKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(itemsHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
