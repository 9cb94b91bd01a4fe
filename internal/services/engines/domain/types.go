// Package domain defines the core types and interfaces for the engines service
package domain

import (
	"context"

	"linguabot/internal/core/langpack"
)

// Engine is a loaded translation capability for exactly one directed pair.
// Engines are cheap to reuse and safe for concurrent callers.
type Engine interface {
	// Pair returns the directed pair this engine serves
	Pair() langpack.Pair

	// ModelID returns the inference model identifier backing the engine
	ModelID() string

	// Translate runs the engine on text and returns the translation
	Translate(ctx context.Context, text string) (string, error)
}
