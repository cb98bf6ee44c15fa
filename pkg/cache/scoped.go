package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. Useful
// when one cache backend serves several decks or tenants:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "team:design:")
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

// DeckKey generates a prefixed key for normalized deck caching.
func (k *ScopedKeyer) DeckKey(inputHash string) string {
	return k.prefix + k.inner.DeckKey(inputHash)
}

// LayoutKey generates a prefixed key for aligned layout caching.
func (k *ScopedKeyer) LayoutKey(deckHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(deckHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
