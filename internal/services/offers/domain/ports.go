package domain

import (
	"linguabot/internal/core/langpack"
	prefsdom "linguabot/internal/services/prefs/domain"
)

// ResolverPort is the external port of the offers service
type ResolverPort interface {
	// Resolve computes the offerable translations for a message detected
	// as source, given a preference snapshot. Deterministic: output order
	// equals snapshot order after filtering, one offer per distinct
	// target, first preference wins.
	Resolve(source langpack.Code, snapshot []prefsdom.Preference) ([]Offer, error)
}
