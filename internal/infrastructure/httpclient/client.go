// Package httpclient is the single channel to the storefront backend. Every
// request goes through Client.Do, which attaches the bearer credential,
// encodes the body, and turns any failure into one user-visible notification
// plus a *domain.RequestFailedError.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/metrics"
)

// TokenSource returns the current credential, or "" when there is none.
type TokenSource func() string

// Options are per-request settings.
type Options struct {
	// Body is JSON-encoded unless it is a *Multipart.
	Body     any
	Headers  map[string]string
	SkipAuth bool
}

// Client issues requests against the API base URL.
type Client struct {
	base     string
	http     *http.Client
	token    TokenSource
	notifier ports.Notifier
	log      zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (tests use the
// httptest server's client).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client for the given API base, e.g. http://localhost:5000/api.
// The default transport has no timeout; callers bound requests through ctx.
func New(base string, token TokenSource, notifier ports.Notifier, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		base:     strings.TrimRight(base, "/"),
		http:     &http.Client{},
		token:    token,
		notifier: notifier,
		log:      log,
	}
	if c.token == nil {
		c.token = func() string { return "" }
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Base returns the API base URL.
func (c *Client) Base() string { return c.base }

type errorEnvelope struct {
	Message string `json:"message"`
}

// Do performs one request. On a 2xx response the JSON body is decoded into
// out (when non-nil). Anything else is reported once and returned as a
// *domain.RequestFailedError. There is no retry.
func (c *Client) Do(ctx context.Context, method, path string, opts Options, out any) error {
	route := Route(path)
	start := time.Now()

	err := c.do(ctx, method, path, opts, out)

	metrics.ClientRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	metrics.ClientRequestsTotal.WithLabelValues(method, route, outcome(err)).Inc()

	if err != nil {
		var rf *domain.RequestFailedError
		if !errors.As(err, &rf) {
			rf = &domain.RequestFailedError{Message: domain.DefaultFailureMessage, Err: err}
			err = rf
		}
		c.log.Error().
			Err(err).
			Str("method", method).
			Str("route", route).
			Int("status", rf.Status).
			Msg("api request failed")
		c.notifier.Notify(ports.LevelError, rf.Message)
		return err
	}

	c.log.Debug().
		Str("method", method).
		Str("route", route).
		Dur("elapsed", time.Since(start)).
		Msg("api request")
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, opts Options, out any) error {
	body, contentType, err := encodeBody(opts.Body)
	if err != nil {
		return &domain.RequestFailedError{Message: domain.DefaultFailureMessage, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &domain.RequestFailedError{Message: domain.DefaultFailureMessage, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if !opts.SkipAuth {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RequestFailedError{Message: domain.DefaultFailureMessage, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.RequestFailedError{Status: resp.StatusCode, Message: domain.DefaultFailureMessage, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := domain.DefaultFailureMessage
		var env errorEnvelope
		if json.Unmarshal(raw, &env) == nil && strings.TrimSpace(env.Message) != "" {
			msg = env.Message
		}
		return &domain.RequestFailedError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.RequestFailedError{
			Status:  resp.StatusCode,
			Message: domain.DefaultFailureMessage,
			Err:     fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Multipart:
		return b.Encode()
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(buf), "application/json", nil
	}
}

func outcome(err error) string {
	var rf *domain.RequestFailedError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &rf) && rf.Status != 0:
		return "http_error"
	default:
		return "transport_error"
	}
}

// staticSegments are the path segments of the backend routes; anything else
// is an id.
var staticSegments = map[string]bool{
	"auth":          true,
	"login":         true,
	"register":      true,
	"become-seller": true,
	"products":      true,
	"seller":        true,
	"my-products":   true,
	"cart":          true,
	"orders":        true,
}

// Route collapses ids in path to ":id" and drops the query string, so
// metric labels stay bounded.
func Route(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segs {
		if s != "" && !staticSegments[s] {
			segs[i] = ":id"
		}
	}
	return "/" + strings.Join(segs, "/")
}
