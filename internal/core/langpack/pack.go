// Package langpack loads the embedded language catalogue: which languages
// the bot speaks, which directed pairs have a translation model, and the
// display strings used when offering a translation.
package langpack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	perr "linguabot/internal/platform/errors"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

//go:embed languages.json
var rawPack []byte

// Code is a lowercase two-letter ISO 639-1 language code.
type Code string

// Pair is a directed translation pair.
type Pair struct {
	Source Code `json:"source"`
	Target Code `json:"target"`
}

// Key returns the canonical "src-dst" form used for cache and model keys.
func (p Pair) Key() string { return string(p.Source) + "-" + string(p.Target) }

// Reverse returns the pair with source and target swapped.
func (p Pair) Reverse() Pair { return Pair{Source: p.Target, Target: p.Source} }

// Language is one catalogue entry.
type Language struct {
	Code   Code   `json:"code"`
	Name   string `json:"name"`
	Native string `json:"native"`
}

type packFile struct {
	Version   int        `json:"version"`
	Languages []Language `json:"languages"`
	Pairs     []struct {
		Source Code   `json:"source"`
		Target Code   `json:"target"`
		Model  string `json:"model"`
	} `json:"pairs"`
}

// Pack is the compiled catalogue. Immutable after Load.
type Pack struct {
	version   int
	languages []Language
	byCode    map[Code]Language
	models    map[Pair]string
	pairs     []Pair
}

// Load parses and validates the embedded catalogue.
func Load() (*Pack, error) {
	var pf packFile
	if err := json.Unmarshal(rawPack, &pf); err != nil {
		return nil, perr.JSONErrf("langpack: parse embedded catalogue: %v", err)
	}
	if pf.Version != 1 {
		return nil, perr.InvalidArgf("langpack: unsupported catalogue version %d", pf.Version)
	}
	if len(pf.Languages) == 0 {
		return nil, perr.InvalidArgf("langpack: catalogue has no languages")
	}

	p := &Pack{
		version:   pf.Version,
		languages: make([]Language, 0, len(pf.Languages)),
		byCode:    make(map[Code]Language, len(pf.Languages)),
		models:    make(map[Pair]string, len(pf.Pairs)),
		pairs:     make([]Pair, 0, len(pf.Pairs)),
	}
	for _, l := range pf.Languages {
		if err := validateCode(l.Code); err != nil {
			return nil, err
		}
		if _, dup := p.byCode[l.Code]; dup {
			return nil, perr.InvalidArgf("langpack: duplicate language %q", l.Code)
		}
		p.byCode[l.Code] = l
		p.languages = append(p.languages, l)
	}
	for _, pr := range pf.Pairs {
		pair := Pair{Source: pr.Source, Target: pr.Target}
		if pair.Source == pair.Target {
			return nil, perr.InvalidArgf("langpack: degenerate pair %q", pair.Key())
		}
		if _, ok := p.byCode[pair.Source]; !ok {
			return nil, perr.InvalidArgf("langpack: pair %q references unknown source", pair.Key())
		}
		if _, ok := p.byCode[pair.Target]; !ok {
			return nil, perr.InvalidArgf("langpack: pair %q references unknown target", pair.Key())
		}
		if pr.Model == "" {
			return nil, perr.InvalidArgf("langpack: pair %q has no model", pair.Key())
		}
		if _, dup := p.models[pair]; dup {
			return nil, perr.InvalidArgf("langpack: duplicate pair %q", pair.Key())
		}
		p.models[pair] = pr.Model
		p.pairs = append(p.pairs, pair)
	}
	return p, nil
}

// MustLoad is Load or panic. For main wiring and tests.
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

func validateCode(c Code) error {
	if len(c) != 2 {
		return perr.InvalidArgf("langpack: bad code %q", c)
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'a' || c[i] > 'z' {
			return perr.InvalidArgf("langpack: bad code %q", c)
		}
	}
	if _, err := language.Parse(string(c)); err != nil {
		return perr.InvalidArgf("langpack: unknown code %q", c)
	}
	return nil
}

// Version reports the catalogue schema version.
func (p *Pack) Version() int { return p.version }

// Supported reports whether code is in the catalogue.
func (p *Pack) Supported(c Code) bool {
	_, ok := p.byCode[c]
	return ok
}

// PairSupported reports whether the directed pair has a model.
func (p *Pack) PairSupported(pair Pair) bool {
	_, ok := p.models[pair]
	return ok
}

// ModelID returns the inference model identifier for the pair.
func (p *Pack) ModelID(pair Pair) (string, bool) {
	m, ok := p.models[pair]
	return m, ok
}

// Languages returns the catalogue entries in file order.
func (p *Pack) Languages() []Language {
	out := make([]Language, len(p.languages))
	copy(out, p.languages)
	return out
}

// Pairs returns all supported directed pairs in file order.
func (p *Pack) Pairs() []Pair {
	out := make([]Pair, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// Name returns the English display name for a code. Falls back to
// x/text display names for codes outside the catalogue.
func (p *Pack) Name(c Code) string {
	if l, ok := p.byCode[c]; ok {
		return l.Name
	}
	if tag, err := language.Parse(string(c)); err == nil {
		if n := display.English.Tags().Name(tag); n != "" {
			return n
		}
	}
	return string(c)
}

// NativeName returns the endonym for a catalogue code, or Name otherwise.
func (p *Pack) NativeName(c Code) string {
	if l, ok := p.byCode[c]; ok && l.Native != "" {
		return l.Native
	}
	return p.Name(c)
}

// Label renders an offer button caption for a target language.
func (p *Pack) Label(target Code) string {
	return fmt.Sprintf("Translate to %s", p.Name(target))
}

// ParseCode normalizes user input to a Code. It lowercases, trims, and
// accepts only codes present in the catalogue.
func (p *Pack) ParseCode(s string) (Code, error) {
	c := Code(strings.ToLower(strings.TrimSpace(s)))
	if !p.Supported(c) {
		return "", perr.UnsupportedLanguagef("language %q is not supported", s)
	}
	return c, nil
}
