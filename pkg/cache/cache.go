// Package cache provides pluggable byte caches for pipeline results.
//
// The pipeline caches three kinds of data, each with its own TTL:
//
//   - Normalized decks, keyed by the hash of the raw input
//   - Aligned layouts, keyed by the normalized deck hash plus strategy
//   - Rendered artifacts, keyed by the layout hash plus format options
//
// Three backends are provided: [FileCache] for CLI usage, [RedisCache] for
// shared deployments, and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte cache with TTL support.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs per cached stage. Normalization and alignment are deterministic, so
// their entries can live long; artifacts are larger and expire sooner.
const (
	TTLDeck     = 7 * 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// LayoutKeyOpts are the alignment inputs that affect the cached layout.
type LayoutKeyOpts struct {
	Strategy string `json:"strategy"`
}

// ArtifactKeyOpts are the render inputs that affect a cached artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	FontPath string  `json:"font_path,omitempty"`
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// DeckKey keys a normalized deck by the hash of the raw input bytes.
	DeckKey(inputHash string) string

	// LayoutKey keys an aligned layout by the normalized deck hash and the
	// alignment options.
	LayoutKey(deckHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by the layout hash and the render
	// options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hierarchical keys with stage prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DeckKey generates a key for normalized deck caching.
func (k *DefaultKeyer) DeckKey(inputHash string) string {
	return hashKey("deck", inputHash)
}

// LayoutKey generates a key for aligned layout caching.
func (k *DefaultKeyer) LayoutKey(deckHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", deckHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
