package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "linguabot/internal/platform/errors"
)

type translateIn struct {
	Text   string `json:"text" validate:"required,min=1"`
	Source string `json:"source" validate:"required,langcode"`
	Target string `json:"target" validate:"required,langcode"`
}

func TestParseJSON_Valid(t *testing.T) {
	r := httptest.NewRequest("POST", "/translate", strings.NewReader(
		`{"text":"hello","source":"en","target":"uk"}`))
	in, err := ParseJSON[translateIn](r)
	if err != nil {
		t.Fatalf("ParseJSON = %v", err)
	}
	if in.Source != "en" || in.Target != "uk" || in.Text != "hello" {
		t.Fatalf("parsed = %+v", in)
	}
}

func TestParseJSON_EmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/translate", strings.NewReader(""))
	_, err := ParseJSON[translateIn](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error, got %v", err)
	}
}

func TestParseJSON_UnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/translate", strings.NewReader(
		`{"text":"hi","source":"en","target":"uk","mystery":1}`))
	_, err := ParseJSON[translateIn](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("unknown fields must be a bind error, got %v", err)
	}
}

func TestParseJSON_TrailingGarbage(t *testing.T) {
	r := httptest.NewRequest("POST", "/translate", strings.NewReader(
		`{"text":"hi","source":"en","target":"uk"}{"again":true}`))
	_, err := ParseJSON[translateIn](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("trailing data must be a bind error, got %v", err)
	}
}

func TestParseJSON_LangcodeTag(t *testing.T) {
	cases := []string{
		`{"text":"hi","source":"EN","target":"uk"}`,  // uppercase
		`{"text":"hi","source":"eng","target":"uk"}`, // three letters
		`{"text":"hi","source":"e1","target":"uk"}`,  // digit
		`{"text":"hi","source":"","target":"uk"}`,    // empty
	}
	for _, body := range cases {
		r := httptest.NewRequest("POST", "/translate", strings.NewReader(body))
		_, err := ParseJSON[translateIn](r)
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("body %s: want validation error, got %v", body, err)
		}
	}
}

func TestParseJSON_ValidationFieldName(t *testing.T) {
	r := httptest.NewRequest("POST", "/translate", strings.NewReader(
		`{"text":"hi","source":"en","target":"u"}`))
	_, err := ParseJSON[translateIn](r)
	e, ok := perr.As(err)
	if !ok || e.Field() != "target" {
		t.Fatalf("want field=target, got %v", err)
	}
}
