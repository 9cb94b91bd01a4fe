// Package normalize prepares raw chat text for language detection and
// translation. Chat noise (links, mentions, bot commands, emoji-only
// runs) defeats detection, so it is stripped before anything else looks
// at the text.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reURL     = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	reMention = regexp.MustCompile(`@[A-Za-z0-9_]{2,}`)
	reCommand = regexp.MustCompile(`(?m)^/[A-Za-z0-9_]+(?:@[A-Za-z0-9_]+)?\b`)
	reSpace   = regexp.MustCompile(`\s+`)
)

// Clean strips URLs, @mentions, and leading bot commands, then collapses
// whitespace. The result may be empty.
func Clean(s string) string {
	s = reURL.ReplaceAllString(s, " ")
	s = reMention.ReplaceAllString(s, " ")
	s = reCommand.ReplaceAllString(s, " ")
	s = reSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// MinLetters is the fewest letters a cleaned message needs before
// detection is worth attempting.
const MinLetters = 2

// Translatable reports whether cleaned text carries enough alphabetic
// signal to detect and translate. Numbers, punctuation, and emoji do
// not count.
func Translatable(cleaned string) bool {
	n := 0
	for _, r := range cleaned {
		if unicode.IsLetter(r) {
			n++
			if n >= MinLetters {
				return true
			}
		}
	}
	return false
}
