// Package storage provides a REST client for the object-storage signed-upload API
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "reportgate/internal/platform/errors"
	"reportgate/internal/platform/logger"
)

const (
	defaultTimeout = 10 * time.Second
	defaultUA      = "reportgate-storage"
)

// Options configures the Client
type Options struct {
	// BaseURL is the root of the storage service, no trailing slash
	BaseURL string

	// ServiceKey authorizes the gateway against the storage service
	// grant minting is a privileged operation, never expose this key
	ServiceKey string

	UserAgent string
	Timeout   time.Duration
}

// Client mints signed upload grants against the storage REST API
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("storage"),
	}
}

// SignedUpload is one pre-authorized upload grant
type SignedUpload struct {
	// URL is the absolute endpoint the caller PUTs the blob to
	URL string
	// Token authorizes that single upload
	Token string
	// Path is the bucket-relative object path the grant covers
	Path string
}

// signResponse is the wire shape of the sign endpoint
type signResponse struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// CreateSignedUpload asks the storage service for an upload grant for
// objectPath inside bucket. The grant is single use and time limited
func (c *Client) CreateSignedUpload(ctx context.Context, bucket, objectPath string) (SignedUpload, error) {
	if c.opts.ServiceKey == "" {
		return SignedUpload{}, perr.Configf("storage service key not configured")
	}

	endpoint := c.opts.BaseURL + "/object/upload/sign/" + bucket + "/" + objectPath

	body, err := json.Marshal(map[string]any{})
	if err != nil {
		return SignedUpload{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "storage marshal request failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return SignedUpload{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "storage new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.ServiceKey)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return SignedUpload{}, perr.Wrapf(err, perr.ErrorCodeUpstream, "storage sign request failed")
	}
	defer func() { _ = res.Body.Close() }()

	c.log.Debug().
		Str("bucket", bucket).
		Str("path", objectPath).
		Int("status", res.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("storage sign")

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return SignedUpload{}, perr.Upstreamf(
			"storage sign returned %d: %s", res.StatusCode, strings.TrimSpace(string(snippet)),
		)
	}

	var sr signResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return SignedUpload{}, perr.Wrapf(err, perr.ErrorCodeUpstream, "storage sign decode failed")
	}
	if sr.Token == "" {
		return SignedUpload{}, perr.Upstreamf("storage sign returned no token")
	}

	return SignedUpload{
		URL:   c.absolute(sr.URL, endpoint),
		Token: sr.Token,
		Path:  objectPath,
	}, nil
}

// absolute resolves a possibly relative signed url against the service base
func (c *Client) absolute(signed, fallback string) string {
	if signed == "" {
		return fallback
	}
	u, err := url.Parse(signed)
	if err != nil {
		return signed
	}
	if u.IsAbs() {
		return signed
	}
	if !strings.HasPrefix(signed, "/") {
		signed = "/" + signed
	}
	return c.opts.BaseURL + signed
}
