// Package keyset fetches and caches the issuer's published verification keys
package keyset

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"io"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"

	perr "reportgate/internal/platform/errors"
)

// Set maps key id to a parsed public key
type Set map[string]crypto.PublicKey

// Lookup returns the key for kid
func (s Set) Lookup(kid string) (crypto.PublicKey, bool) {
	k, ok := s[kid]
	return k, ok
}

// Fetch downloads and decodes the key set document at url
func Fetch(ctx context.Context, client *http.Client, url string) (Set, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "jwks request failed")
	}
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "jwks fetch failed")
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, perr.Upstreamf("jwks fetch returned %d", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "jwks read failed")
	}

	return Decode(body)
}

// Decode parses a key set document into usable public keys
// entries without a kid, with unsupported types, or with broken members are skipped
func Decode(doc []byte) (Set, error) {
	parsed, err := jwk.Parse(doc, jwk.WithIgnoreParseError(true))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUpstream, "jwks decode failed")
	}

	out := make(Set, parsed.Len())
	for i := 0; i < parsed.Len(); i++ {
		k, ok := parsed.Key(i)
		if !ok || k.KeyID() == "" {
			continue
		}
		var raw any
		if err := k.Raw(&raw); err != nil {
			continue
		}
		switch raw.(type) {
		case *rsa.PublicKey, *ecdsa.PublicKey:
			out[k.KeyID()] = raw
		}
	}
	if len(out) == 0 {
		return nil, perr.Upstreamf("jwks document contained no usable keys")
	}
	return out, nil
}

// Fetcher resolves the current key set; seam for the cache and tests
type Fetcher func(ctx context.Context) (Set, error)

// HTTPFetcher builds a Fetcher over Fetch with a fixed client and url
func HTTPFetcher(client *http.Client, url string) Fetcher {
	return func(ctx context.Context) (Set, error) {
		return Fetch(ctx, client, url)
	}
}

// timeNow is a seam for cache expiry tests
var timeNow = time.Now
