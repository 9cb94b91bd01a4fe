// Package domain defines the core types and interfaces for the offers service
package domain

import "linguabot/internal/core/langpack"

// Offer is one selectable translation option for an observed message.
// Offers live for a single routing cycle; nothing retains them.
type Offer struct {
	Pair  langpack.Pair
	Label string
	Token string
}
