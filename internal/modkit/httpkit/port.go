// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"net/http"
	"strings"

	perrs "reportgate/internal/platform/errors"
)

// TokenFunc verifies a bearer token and returns the token subject
type TokenFunc func(r *http.Request, token string) (subjectID string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts the subject from an Authorization Bearer token.
// The header must be exactly two whitespace separated fields with a
// literal Bearer scheme; anything else is unauthorized
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, err := BearerToken(r)
	if err != nil {
		return "", err
	}

	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}

	subject, err := p.parse(r, raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	if subject == "" {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return subject, nil
}

// BearerToken returns the raw token from a strict Bearer Authorization header
func BearerToken(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	fields := strings.Fields(authz)
	if len(fields) != 2 || fields[0] != "Bearer" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return fields[1], nil
}
