package domain

import "linguabot/internal/core/langpack"

// StorePort is the external port of the prefs service.
//
// State is process-lifetime only; preferences are lost on restart.
type StorePort interface {
	// Set unconditionally overwrites the user's preference
	Set(user UserID, target langpack.Code)

	// Get returns the user's preference if one was set
	Get(user UserID) (langpack.Code, bool)

	// Snapshot returns a consistent copy of all preferences. Order is
	// the order in which users first set a preference; overwrites keep
	// the original position. Resolution depends on this being stable.
	Snapshot() []Preference
}
