// Package detect identifies the language of chat text using lingua,
// restricted to the catalogue's languages so results are deterministic
// and never name a language the bot cannot serve.
package detect

import (
	"context"
	"strings"
	"unicode"

	"github.com/pemistahl/lingua-go"

	"linguabot/internal/core/langpack"
	perr "linguabot/internal/platform/errors"
)

// Detector implements the session detector port
type Detector struct {
	pack *langpack.Pack
	lang lingua.LanguageDetector

	// script -> code, only for scripts used by exactly one catalogue
	// language; lets obvious cases skip the statistical pass
	scriptHints map[*unicode.RangeTable]langpack.Code
}

// New builds a detector over the catalogue's languages
func New(pack *langpack.Pack) (*Detector, error) {
	if pack == nil {
		return nil, perr.InvalidArgf("detect: nil pack")
	}

	var langs []lingua.Language
	for _, l := range pack.Languages() {
		ll, ok := linguaFor(l.Code)
		if !ok {
			return nil, perr.UnsupportedLanguagef("detect: lingua has no model for %q", l.Code)
		}
		langs = append(langs, ll)
	}

	det := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		WithPreloadedLanguageModels().
		Build()

	return &Detector{
		pack:        pack,
		lang:        det,
		scriptHints: scriptHints(pack),
	}, nil
}

// Detect returns the language code for text, or a detection failure
// when the detector has no confident answer.
func (d *Detector) Detect(ctx context.Context, text string) (langpack.Code, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if c, ok := d.fastPath(text); ok {
		return c, nil
	}

	l, ok := d.lang.DetectLanguageOf(text)
	if !ok {
		return "", perr.DetectionFailedf("no confident language for text")
	}
	code := langpack.Code(strings.ToLower(l.IsoCode639_1().String()))
	if !d.pack.Supported(code) {
		return "", perr.UnsupportedLanguagef("detected %q outside the supported set", code)
	}
	return code, nil
}

// fastPath resolves text whose dominant script belongs to exactly one
// catalogue language, without running the statistical detector.
func (d *Detector) fastPath(text string) (langpack.Code, bool) {
	if len(d.scriptHints) == 0 {
		return "", false
	}
	letters := 0
	counts := make(map[*unicode.RangeTable]int, len(d.scriptHints))
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for tbl := range d.scriptHints {
			if unicode.Is(tbl, r) {
				counts[tbl]++
			}
		}
	}
	if letters == 0 {
		return "", false
	}
	for tbl, n := range counts {
		// a clear majority of one uniquely-owned script decides it
		if n*2 > letters {
			return d.scriptHints[tbl], true
		}
	}
	return "", false
}

// scriptHints maps scripts owned by exactly one catalogue language,
// judged by the script of each language's endonym.
func scriptHints(pack *langpack.Pack) map[*unicode.RangeTable]langpack.Code {
	owners := map[*unicode.RangeTable][]langpack.Code{}
	for _, l := range pack.Languages() {
		if tbl := scriptOf(l.Native); tbl != nil {
			owners[tbl] = append(owners[tbl], l.Code)
		}
	}
	out := map[*unicode.RangeTable]langpack.Code{}
	for tbl, codes := range owners {
		if len(codes) == 1 && tbl != unicode.Latin {
			out[tbl] = codes[0]
		}
	}
	return out
}

func scriptOf(s string) *unicode.RangeTable {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		for _, tbl := range []*unicode.RangeTable{unicode.Latin, unicode.Cyrillic, unicode.Greek, unicode.Han, unicode.Arabic, unicode.Hebrew} {
			if unicode.Is(tbl, r) {
				return tbl
			}
		}
		return nil
	}
	return nil
}

func linguaFor(code langpack.Code) (lingua.Language, bool) {
	want := strings.ToUpper(string(code))
	for _, l := range lingua.AllLanguages() {
		if l.IsoCode639_1().String() == want {
			return l, true
		}
	}
	return 0, false
}
