package middleware

import (
	"net/http"

	pnet "reportgate/internal/platform/net"
)

// AuthPort is the seam the token verifier implements
type AuthPort interface {
	// Parse authenticates the request and returns the token subject
	Parse(r *http.Request) (subjectID string, err error)
}

// Auth rejects requests the port cannot authenticate and stashes the
// subject on context for downstream handlers. A nil port passes through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			subject, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithSubject(r.Context(), subject)))
		})
	}
}
