package httpkit

import (
	"net/http"

	perrs "reportgate/internal/platform/errors"
	pnet "reportgate/internal/platform/net"
)

// Subject returns the authenticated token subject from the request context
func Subject(r *http.Request) (string, error) {
	sub := pnet.SubjectID(r.Context())
	if sub == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return sub, nil
}

// MustSubject returns the authenticated subject or panics
// only use on routes protected by the auth middleware
func MustSubject(r *http.Request) string {
	sub, err := Subject(r)
	if err != nil {
		panic(err)
	}
	return sub
}

// JWT returns the raw bearer token from the Authorization header
func JWT(r *http.Request) (string, error) {
	return BearerToken(r)
}

// MustJWT returns the raw bearer token or panics
// only use on routes protected by the auth middleware
func MustJWT(r *http.Request) string {
	raw, err := JWT(r)
	if err != nil {
		panic(err)
	}
	return raw
}
