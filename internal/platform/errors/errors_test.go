package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestNew_Wrap_Unwrap_Root(t *testing.T) {
	base := stderrs.New("dial timeout")
	err := Wrap(base, ErrorCodeEngineLoadFailed, "load en-uk")

	e, ok := As(err)
	if !ok {
		t.Fatalf("As failed for wrapped error")
	}
	if e.Code() != ErrorCodeEngineLoadFailed {
		t.Fatalf("Code = %v, want EngineLoadFailed", e.Code())
	}
	if e.Unwrap() != base {
		t.Fatalf("Unwrap did not return the cause")
	}
	if Root(err) != base {
		t.Fatalf("Root did not return the deepest cause")
	}
	if got := err.Error(); got != "load en-uk: dial timeout" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestCodeOf_ForeignError(t *testing.T) {
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatalf("foreign errors must map to Unknown")
	}
	if CodeOf(nil) != ErrorCodeUnknown {
		t.Fatalf("nil maps to Unknown")
	}
}

func TestHTTPStatus_DomainCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{MalformedTokenf("bad token"), http.StatusBadRequest},
		{UnsupportedPairf("uk->pl"), http.StatusUnprocessableEntity},
		{UnsupportedLanguagef("xx"), http.StatusUnprocessableEntity},
		{DetectionFailedf("no letters"), http.StatusUnprocessableEntity},
		{EngineLoadFailedf("fetch failed"), http.StatusServiceUnavailable},
		{NotFoundf("missing"), http.StatusNotFound},
		{Unauthorizedf("nope"), http.StatusUnauthorized},
		{Internalf("boom"), http.StatusInternalServerError},
		{nil, http.StatusInternalServerError}, // CodeOf(nil) == Unknown
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestWireFrom_And_HTTP(t *testing.T) {
	err := WithField(Newf(ErrorCodeValidation, "must be one of en uk pl"), "target")
	w := WireFrom(err)
	if w.Code != ErrorCodeValidation || w.Field != "target" {
		t.Fatalf("WireFrom = %+v", w)
	}

	status, wire := HTTP(err)
	if status != http.StatusBadRequest || wire.Message == "" {
		t.Fatalf("HTTP = %d %+v", status, wire)
	}

	status, wire = HTTP(nil)
	if status != http.StatusOK || wire.Code != 0 {
		t.Fatalf("HTTP(nil) = %d %+v", status, wire)
	}
}

func TestWithOp_CopyOnWrite(t *testing.T) {
	orig := Newf(ErrorCodeUnsupportedPair, "no engine")
	tagged := WithOp(orig, "session.select")

	te, _ := As(tagged)
	oe, _ := As(orig)
	if te.Op() != "session.select" {
		t.Fatalf("Op not set")
	}
	if oe.Op() != "" {
		t.Fatalf("original mutated")
	}

	// foreign errors pass through untouched
	f := stderrs.New("foreign")
	if WithOp(f, "x") != f {
		t.Fatalf("foreign error must pass through")
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(EngineLoadFailedf("cold")) {
		t.Fatalf("engine load failures are retryable")
	}
	if !Retryable(Unavailablef("transient")) {
		t.Fatalf("unavailable is retryable")
	}
	if Retryable(UnsupportedPairf("uk->pl")) {
		t.Fatalf("unsupported pair is permanent")
	}
	if Retryable(MalformedTokenf("junk")) {
		t.Fatalf("malformed token is permanent")
	}
}

func TestIsCode_WrapIf(t *testing.T) {
	if WrapIf(nil, ErrorCodeUnknown, "x") != nil {
		t.Fatalf("WrapIf(nil) must be nil")
	}
	err := WrapIf(stderrs.New("q"), ErrorCodeJSON, "decode")
	if !IsCode(err, ErrorCodeJSON) {
		t.Fatalf("IsCode mismatch")
	}
}
