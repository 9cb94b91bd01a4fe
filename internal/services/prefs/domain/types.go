// Package domain defines the core types and interfaces for the prefs service
package domain

import "linguabot/internal/core/langpack"

// UserID is the platform-assigned identity of a chat user.
type UserID int64

// Preference is one user's desired target language.
type Preference struct {
	User   UserID
	Target langpack.Code
}
