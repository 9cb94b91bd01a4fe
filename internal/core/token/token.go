// Package token encodes translation requests into the short opaque
// strings carried by offer buttons and decodes them back on callback.
//
// Wire form is "v1|src|dst" with an optional fourth field holding inline
// text. Telegram callback payloads are capped at 64 bytes, so the normal
// shape omits the text and the dispatcher recovers it from the message
// the offer replied to.
package token

import (
	"strings"

	"linguabot/internal/core/langpack"
	perr "linguabot/internal/platform/errors"
)

// Version is the current wire version prefix.
const Version = "v1"

// DefaultMaxLen is the transport bound on an encoded token. It matches
// the Telegram callback-data limit.
const DefaultMaxLen = 64

const sep = "|"

// Request is a decoded translation request.
type Request struct {
	Pair langpack.Pair

	// Text is only set for tokens that carried inline text. Empty means
	// the text must be recovered from the replied-to message.
	Text string
}

// Codec encodes and decodes request tokens with a length bound. Codes
// on both sides of the wire are checked against the language catalogue,
// so a token naming a language outside it never decodes.
type Codec struct {
	pack   *langpack.Pack
	maxLen int
}

// NewCodec builds a codec over a catalogue. maxLen <= 0 falls back to
// DefaultMaxLen.
func NewCodec(pack *langpack.Pack, maxLen int) *Codec {
	if pack == nil {
		panic("token: nil pack")
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Codec{pack: pack, maxLen: maxLen}
}

// MaxLen reports the codec's encoded-length bound.
func (c *Codec) MaxLen() int { return c.maxLen }

// Encode renders the standard textless token for a pair.
func (c *Codec) Encode(pair langpack.Pair) (string, error) {
	return c.encode(pair, "")
}

// EncodeWithText renders a token carrying inline text. Fails when the
// result would exceed the length bound.
func (c *Codec) EncodeWithText(pair langpack.Pair, text string) (string, error) {
	if strings.Contains(text, sep) {
		return "", perr.MalformedTokenf("inline text contains separator")
	}
	return c.encode(pair, text)
}

func (c *Codec) encode(pair langpack.Pair, text string) (string, error) {
	if err := c.checkCode(pair.Source); err != nil {
		return "", err
	}
	if err := c.checkCode(pair.Target); err != nil {
		return "", err
	}
	parts := []string{Version, string(pair.Source), string(pair.Target)}
	if text != "" {
		parts = append(parts, text)
	}
	out := strings.Join(parts, sep)
	if len(out) > c.maxLen {
		return "", perr.MalformedTokenf("token length %d exceeds bound %d", len(out), c.maxLen)
	}
	return out, nil
}

// Decode parses a token back into a Request. Every failure mode maps to
// a malformed-token error; callers treat those as stale or forged
// buttons and never surface the raw payload.
func (c *Codec) Decode(s string) (Request, error) {
	if s == "" {
		return Request{}, perr.MalformedTokenf("empty token")
	}
	if len(s) > c.maxLen {
		return Request{}, perr.MalformedTokenf("token length %d exceeds bound %d", len(s), c.maxLen)
	}
	parts := strings.SplitN(s, sep, 4)
	if len(parts) < 3 {
		return Request{}, perr.MalformedTokenf("token has %d fields, want at least 3", len(parts))
	}
	if parts[0] != Version {
		return Request{}, perr.MalformedTokenf("unknown token version %q", parts[0])
	}
	src, dst := langpack.Code(parts[1]), langpack.Code(parts[2])
	if err := c.checkCode(src); err != nil {
		return Request{}, err
	}
	if err := c.checkCode(dst); err != nil {
		return Request{}, err
	}
	if src == dst {
		return Request{}, perr.MalformedTokenf("degenerate pair %q", src)
	}
	req := Request{Pair: langpack.Pair{Source: src, Target: dst}}
	if len(parts) == 4 {
		if parts[3] == "" {
			return Request{}, perr.MalformedTokenf("empty inline text field")
		}
		req.Text = parts[3]
	}
	return req, nil
}

func (c *Codec) checkCode(code langpack.Code) error {
	if len(code) != 2 {
		return perr.MalformedTokenf("bad language code %q", code)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return perr.MalformedTokenf("bad language code %q", code)
		}
	}
	if !c.pack.Supported(code) {
		return perr.MalformedTokenf("unknown language code %q", code)
	}
	return nil
}
