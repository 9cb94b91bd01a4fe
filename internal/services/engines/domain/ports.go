package domain

import (
	"context"

	"linguabot/internal/core/langpack"
)

// LoaderPort constructs an engine for a pair. Loads are expensive
// (model fetch and initialization on the inference side); the cache
// guarantees callers never race duplicate loads for one pair.
type LoaderPort interface {
	Load(ctx context.Context, pair langpack.Pair, modelID string) (Engine, error)
}

// CachePort is the external port of the engines service
type CachePort interface {
	// GetOrLoad returns the resident engine for pair, loading it once on
	// first use. Unsupported pairs fail with an unsupported-pair error
	// and leave no cache entry. Load failures are retryable.
	GetOrLoad(ctx context.Context, pair langpack.Pair) (Engine, error)

	// Resident returns the pairs with a loaded engine, sorted by key
	Resident() []langpack.Pair
}
