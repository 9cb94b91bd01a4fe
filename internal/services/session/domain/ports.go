package domain

import (
	"context"

	"linguabot/internal/core/langpack"
	offersdom "linguabot/internal/services/offers/domain"
	prefsdom "linguabot/internal/services/prefs/domain"
)

// DetectorPort identifies the language of normalized text
type DetectorPort interface {
	Detect(ctx context.Context, text string) (langpack.Code, error)
}

// PresenterPort is the transport surface the router drives.
// Notify is ephemeral: visible only to the selecting actor. Deliver is
// a private message to one user. Neither ever posts to the shared chat.
type PresenterPort interface {
	Offer(ctx context.Context, msg Message, offers []offersdom.Offer) error
	Notify(ctx context.Context, sel Selection, text string) error
	Deliver(ctx context.Context, actor prefsdom.UserID, text string) error
}

// RouterPort is the external port of the session service
type RouterPort interface {
	// HandleMessage runs one offering cycle for an inbound message.
	// Ineligible messages (bot-authored, empty, undetectable, no
	// candidates) are dropped silently.
	HandleMessage(ctx context.Context, msg Message) error

	// HandleSelection runs one delivery cycle for a picked offer. Every
	// failure becomes a single ephemeral notice to the acting user and
	// is never fatal to the router.
	HandleSelection(ctx context.Context, sel Selection) error
}
