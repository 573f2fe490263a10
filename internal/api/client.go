package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/bialog/bialog/internal/cache"
	"github.com/bialog/bialog/internal/logging"
	"github.com/bialog/bialog/internal/session"
)

// Client defaults.
const (
	DefaultTimeout       = 10 * time.Second
	DefaultRetryCount    = 2
	DefaultRetryWait     = 200 * time.Millisecond
	DefaultRetryMaxWait  = 2 * time.Second
	userAgent            = "bialog"
	headerTraceID        = "X-Request-Id"
	brandSearchCachePart = "search_brands"
)

// Client talks to the bialog backend.
type Client struct {
	http        *resty.Client
	credentials session.Provider
	brands      *cache.Store
}

// Options configures a Client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
	// BrandCache caches brand search results. Nil disables caching.
	BrandCache *cache.Store
}

// NewClient builds a Client for opts.BaseURL. Zero durations fall back to
// the defaults.
func NewClient(opts Options, credentials session.Provider) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = DefaultRetryWait
	}
	if opts.RetryMaxWait <= 0 {
		opts.RetryMaxWait = DefaultRetryMaxWait
	}
	if opts.RetryCount < 0 {
		opts.RetryCount = 0
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(opts.RetryMaxWait).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	c := &Client{http: httpClient, credentials: credentials, brands: opts.BrandCache}
	httpClient.OnBeforeRequest(c.authorize)
	return c
}

// authorize attaches the current token and trace id to every request.
func (c *Client) authorize(_ *resty.Client, r *resty.Request) error {
	if c.credentials != nil {
		if token, ok := c.credentials.Token(); ok {
			r.SetAuthToken(token)
		}
	}
	if id := logging.TraceIDFromContext(r.Context()); id != "" {
		r.SetHeader(headerTraceID, id)
	}
	return nil
}

// UserID returns the id of the signed-in user, taken from the token subject.
func (c *Client) UserID() (int, error) {
	var token string
	ok := false
	if c.credentials != nil {
		token, ok = c.credentials.Token()
	}
	if !ok {
		return 0, &FetchError{Op: "user id", Err: ErrUnauthorized}
	}
	id, err := session.UserID(token)
	if err != nil {
		return 0, &FetchError{Op: "user id", Err: fmt.Errorf("%w: %w", ErrUnauthorized, err)}
	}
	return id, nil
}

// do sends req and decodes a successful body into out (when non-nil).
// notFoundEmpty turns a 404 into a successful empty result.
func (c *Client) do(ctx context.Context, op, method, path string, req *resty.Request, out any, notFoundEmpty bool) error {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "api")
	start := time.Now()

	resp, err := req.SetContext(ctx).Execute(method, path)
	if err != nil {
		log.Warn().Str("op", op).Err(err).Dur("elapsed", time.Since(start)).Msg("request failed")
		return &FetchError{Op: op, Err: err}
	}

	code := resp.StatusCode()
	logEvent(log, code).Str("op", op).Int("status", code).Dur("elapsed", time.Since(start)).Msg("request completed")

	if code == http.StatusNotFound && notFoundEmpty {
		return nil
	}
	if resp.IsError() || code >= http.StatusMultipleChoices {
		return &FetchError{Op: op, StatusCode: code, Err: statusError(code)}
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if decodeErr := json.Unmarshal(resp.Body(), out); decodeErr != nil {
		return &FetchError{Op: op, StatusCode: code, Err: fmt.Errorf("%w: %w", ErrDecode, decodeErr)}
	}
	return nil
}

func logEvent(log zerolog.Logger, code int) *zerolog.Event {
	if code >= http.StatusInternalServerError {
		return log.Warn()
	}
	return log.Debug()
}
