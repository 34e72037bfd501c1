package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodeDuplicateKey, http.StatusInternalServerError},
		{ErrorCodeUpstream, http.StatusInternalServerError},
		{ErrorCodeConfig, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	// New / Newf
	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json %d", 12)
	if got := e2.Error(); got != "bad json 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	// Wrap / Wrapf / Unwrap
	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "db failed")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if CodeOf(e3) != ErrorCodeDB {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}
	e4 := Wrapf(src, ErrorCodeUpstream, "nope %s", "here")
	// Error() includes message + ": " + orig
	if want := "nope here: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}

	// As
	if got, ok := As(e4); !ok || got.Code() != ErrorCodeUpstream {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	// WithField (copy-on-write) and WithOp
	e5 := Wrap(src, ErrorCodeValidation, "oops")
	e6 := WithField(e5, "report_id")
	e7 := WithOp(e6, "finalize")
	if got, _ := As(e7); got.Field() != "report_id" || got.Op() != "finalize" {
		t.Fatalf("WithField/WithOp lost metadata: field=%q op=%q", got.Field(), got.Op())
	}
	if got, _ := As(e5); got.Field() != "" || got.Op() != "" {
		t.Fatalf("mutators modified the original")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w.Code != ErrorCodeUnknown || w.Message != "" {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}

	w := WireFrom(Unauthorizedf("invalid bearer token"))
	if w.Code != ErrorCodeUnauthorized || w.Message != "invalid bearer token" {
		t.Fatalf("WireFrom(ours) = %+v", w)
	}

	fw := WireFrom(stderrs.New("boom"))
	if fw.Code != ErrorCodeUnknown || fw.Message != "boom" {
		t.Fatalf("WireFrom(foreign) = %+v", fw)
	}
}

func TestMessageExcludesCause(t *testing.T) {
	err := Wrap(stderrs.New("secret driver detail"), ErrorCodeDB, "insert report")
	e, ok := As(err)
	if !ok {
		t.Fatal("As() failed")
	}
	if e.Message() != "insert report" {
		t.Fatalf("Message() = %q, want %q", e.Message(), "insert report")
	}
}

func TestRootAndSugar(t *testing.T) {
	base := stderrs.New("deep")
	wrapped := Wrap(Wrap(base, ErrorCodeDB, "mid"), ErrorCodeUpstream, "outer")
	if Root(wrapped) != base {
		t.Fatalf("Root did not reach deepest cause")
	}

	sugar := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("x"), ErrorCodeNotFound},
		{Validationf("x"), ErrorCodeValidation},
		{JSONErrf("x"), ErrorCodeJSON},
		{Unauthorizedf("x"), ErrorCodeUnauthorized},
		{Forbiddenf("x"), ErrorCodeForbidden},
		{Upstreamf("x"), ErrorCodeUpstream},
		{Configf("x"), ErrorCodeConfig},
		{DBf("x"), ErrorCodeDB},
		{DuplicateKeyf("x"), ErrorCodeDuplicateKey},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{PanicErrf("x"), ErrorCodePanic},
		{Internalf("x"), ErrorCodeUnknown},
	}
	for _, c := range sugar {
		if CodeOf(c.err) != c.code {
			t.Fatalf("sugar code mismatch: got %v want %v", CodeOf(c.err), c.code)
		}
	}
}

func TestHTTPBundle(t *testing.T) {
	status, w := HTTP(nil)
	if status != http.StatusOK || w.Message != "" {
		t.Fatalf("HTTP(nil) = %d %+v", status, w)
	}
	status, w = HTTP(Validationf("report_id is required"))
	if status != http.StatusBadRequest || w.Message != "report_id is required" {
		t.Fatalf("HTTP(validation) = %d %+v", status, w)
	}
}
