// Package service implements bearer token verification against the identity provider
package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	perr "reportgate/internal/platform/errors"
	"reportgate/internal/services/auth/keyset"
)

// Audience is the fixed audience claim every accepted token must carry
const Audience = "authenticated"

// issuerSuffix is appended to the configured base url to form the issuer
const issuerSuffix = "/auth/v1"

// jwksPath is where the issuer publishes its verification keys
const jwksPath = "/.well-known/jwks.json"

var validMethods = []string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512"}

// Config configures the verifier
type Config struct {
	// BaseURL is the identity provider root, no trailing slash needed
	BaseURL string

	// JWKSTTL bounds key set staleness; zero means one hour
	JWKSTTL time.Duration

	// HTTPClient overrides the client used for key fetches
	HTTPClient *http.Client
}

// Verifier validates bearer tokens and extracts their subject
type Verifier struct {
	issuer string
	keys   *keyset.Cache
}

// New constructs a Verifier that fetches keys from the issuer's well-known location
func New(cfg Config) *Verifier {
	if cfg.BaseURL == "" {
		panic("auth.Verifier requires a base url")
	}
	issuer := strings.TrimRight(cfg.BaseURL, "/") + issuerSuffix
	fetch := keyset.HTTPFetcher(cfg.HTTPClient, issuer+jwksPath)
	return &Verifier{
		issuer: issuer,
		keys:   keyset.NewCache(fetch, cfg.JWKSTTL),
	}
}

// NewWithCache wires an existing key cache, used by tests
func NewWithCache(issuer string, cache *keyset.Cache) *Verifier {
	return &Verifier{issuer: issuer, keys: cache}
}

// Issuer returns the expected issuer claim value
func (v *Verifier) Issuer() string { return v.issuer }

// Verify checks raw against the cached key set and returns the token subject.
// Signature, issuer, audience and expiry must all hold and the subject must
// be non-empty; any failure is unauthorized with a short cause
func (v *Verifier) Verify(ctx context.Context, raw string) (string, error) {
	set, err := v.keys.Get(ctx)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnauthorized, "Invalid token")
	}

	keyfn := func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, perr.Unauthorizedf("token has no key id")
		}
		key, ok := set.Lookup(kid)
		if !ok {
			return nil, perr.Unauthorizedf("no key for kid %q", kid)
		}
		return key, nil
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, keyfn,
		jwt.WithValidMethods(validMethods),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnauthorized, "Invalid token")
	}

	if claims.Subject == "" {
		return "", perr.Unauthorizedf("token has no subject")
	}
	return claims.Subject, nil
}
