package langpack

import (
	"testing"

	perr "linguabot/internal/platform/errors"
)

func TestLoadEmbedded(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Version() != 1 {
		t.Fatalf("version = %d, want 1", p.Version())
	}
	if got := len(p.Languages()); got < 3 {
		t.Fatalf("languages = %d, want >= 3", got)
	}
	if got := len(p.Pairs()); got < 4 {
		t.Fatalf("pairs = %d, want >= 4", got)
	}
}

func TestPairSupport(t *testing.T) {
	p := MustLoad()

	enUK := Pair{Source: "en", Target: "uk"}
	if !p.PairSupported(enUK) {
		t.Fatal("en-uk should be supported")
	}
	if !p.PairSupported(enUK.Reverse()) {
		t.Fatal("uk-en should be supported")
	}
	// both codes supported, but no direct model
	if p.PairSupported(Pair{Source: "uk", Target: "pl"}) {
		t.Fatal("uk-pl must not be supported without a model entry")
	}
	if p.PairSupported(Pair{Source: "en", Target: "en"}) {
		t.Fatal("degenerate pair must not be supported")
	}

	m, ok := p.ModelID(enUK)
	if !ok || m != "Helsinki-NLP/opus-mt-en-uk" {
		t.Fatalf("ModelID(en-uk) = %q, %v", m, ok)
	}
}

func TestPairKey(t *testing.T) {
	if got := (Pair{Source: "en", Target: "uk"}).Key(); got != "en-uk" {
		t.Fatalf("Key = %q", got)
	}
}

func TestParseCode(t *testing.T) {
	p := MustLoad()

	c, err := p.ParseCode("  UK ")
	if err != nil {
		t.Fatalf("ParseCode: %v", err)
	}
	if c != "uk" {
		t.Fatalf("ParseCode = %q", c)
	}

	_, err = p.ParseCode("xx")
	if !perr.IsCode(err, perr.ErrorCodeUnsupportedLanguage) {
		t.Fatalf("ParseCode(xx) code = %v, want unsupported language", perr.CodeOf(err))
	}
	_, err = p.ParseCode("")
	if err == nil {
		t.Fatal("ParseCode(\"\") should fail")
	}
}

func TestNames(t *testing.T) {
	p := MustLoad()

	if got := p.Name("uk"); got != "Ukrainian" {
		t.Fatalf("Name(uk) = %q", got)
	}
	if got := p.NativeName("uk"); got != "українська" {
		t.Fatalf("NativeName(uk) = %q", got)
	}
	// outside the catalogue falls back to x/text display names
	if got := p.Name("de"); got != "German" {
		t.Fatalf("Name(de) = %q", got)
	}
	if got := p.Label("pl"); got != "Translate to Polish" {
		t.Fatalf("Label(pl) = %q", got)
	}
}
