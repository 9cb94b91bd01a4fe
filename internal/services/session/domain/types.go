// Package domain defines the core types and interfaces for the session service
package domain

import (
	prefsdom "linguabot/internal/services/prefs/domain"
)

// Message is an inbound chat message as the router sees it.
type Message struct {
	ChatID    int64
	MessageID int
	Actor     prefsdom.UserID
	ActorBot  bool
	Text      string
}

// Selection is a user picking one offer. RepliedText is the text of the
// message the offer was attached to, recovered by the transport; tokens
// do not carry the text themselves.
type Selection struct {
	CallbackID  string
	ChatID      int64
	Actor       prefsdom.UserID
	Token       string
	RepliedText string
}
