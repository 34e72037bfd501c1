package httpkit

import (
	"errors"
	"net/http"
	"testing"

	perrs "reportgate/internal/platform/errors"
)

func TestPort_Parse_MissingHeader(t *testing.T) {
	t.Parallel()

	p := NewPortFunc(func(*http.Request, string) (string, error) {
		t.Fatalf("parser should not be called when header is missing")
		return "", nil
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	sub, err := p.Parse(req)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if sub != "" {
		t.Fatalf("expected empty subject, got %q", sub)
	}

	var pe *perrs.Error
	if !errors.As(err, &pe) || pe.Code() != perrs.ErrorCodeUnauthorized {
		t.Fatalf("expected unauthorized perrs error, got %#v", err)
	}
}

func TestPort_Parse_MalformedHeaders(t *testing.T) {
	t.Parallel()

	p := NewPortFunc(func(*http.Request, string) (string, error) {
		t.Fatalf("parser should not be called on malformed header")
		return "", nil
	})

	cases := []struct {
		name string
		h    string
	}{
		{"wrong scheme", "Basic abc"},
		{"lowercase scheme", "bearer abc123"},
		{"scheme only", "Bearer"},
		{"empty token", "Bearer   \t "},
		{"three fields", "Bearer a b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tc.h)
			if _, err := p.Parse(req); err == nil {
				t.Fatalf("expected error for %q", tc.h)
			}
		})
	}
}

func TestPort_Parse_InvalidToken(t *testing.T) {
	t.Parallel()

	calls := 0
	p := NewPortFunc(func(_ *http.Request, tok string) (string, error) {
		calls++
		if tok != "bad.token" {
			t.Fatalf("expected raw token bad.token, got %q", tok)
		}
		return "", errors.New("parse failed")
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad.token")

	sub, err := p.Parse(req)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if sub != "" {
		t.Fatalf("expected empty subject on invalid token, got %q", sub)
	}
	if calls != 1 {
		t.Fatalf("expected parser called once, got %d", calls)
	}
}

func TestPort_Parse_ValidToken(t *testing.T) {
	t.Parallel()

	calls := 0
	p := NewPortFunc(func(_ *http.Request, tok string) (string, error) {
		calls++
		if tok != "abc123" {
			t.Fatalf("expected raw token abc123, got %q", tok)
		}
		return "user-1", nil
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")

	sub, err := p.Parse(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub != "user-1" {
		t.Fatalf("unexpected subject, got %q", sub)
	}
	if calls != 1 {
		t.Fatalf("expected parser called once, got %d", calls)
	}
}

func TestPort_Parse_EmptySubjectRejected(t *testing.T) {
	t.Parallel()

	p := NewPortFunc(func(*http.Request, string) (string, error) {
		return "", nil
	})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")

	if _, err := p.Parse(req); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}

func TestPort_Parse_NilParser(t *testing.T) {
	t.Parallel()

	// zero value friendly guard when parse is nil
	var p Port

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")

	_, err := p.Parse(req)
	if err == nil {
		t.Fatalf("expected error when parser is nil")
	}
}
