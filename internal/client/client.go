// Package client talks to a stopwatch server over its plain-text protocol.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	// DefaultServer is used when New receives an empty URL.
	DefaultServer     = "http://127.0.0.1:9876"
	DefaultRetries    = 3
	DefaultRetryDelay = 100 * time.Millisecond

	replyOK      = "0"
	replyFailed  = "-1"
	replyUnknown = "unknown"
)

var (
	// ErrTimerNotFound is returned by Stop when the server has no running
	// timer by that name.
	ErrTimerNotFound = errors.New("timer not found")
	// ErrUnexpectedReply is returned when the body is not a valid answer for
	// the route that was called.
	ErrUnexpectedReply = errors.New("unexpected reply")
)

// Client speaks the stopwatch protocol. It is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	retries uint64
	delay   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client, which has a 5s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRetry sets how many times a failed /now round trip is retried and the
// constant delay between attempts. A non-positive delay keeps the default.
func WithRetry(retries uint64, delay time.Duration) Option {
	return func(c *Client) {
		c.retries = retries
		if delay > 0 {
			c.delay = delay
		}
	}
}

// New builds a client for the server at baseURL. An empty baseURL means
// DefaultServer.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultServer
	}

	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", base.Scheme)
	}

	c := &Client{
		base:    base,
		http:    &http.Client{Timeout: 5 * time.Second},
		retries: DefaultRetries,
		delay:   DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Now returns the server's time since its start.
func (c *Client) Now(ctx context.Context) (time.Duration, error) {
	body, err := c.call(ctx, "/now", true)
	if err != nil {
		return 0, err
	}

	ns, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedReply, body)
	}

	return time.Duration(ns), nil
}

// Start (re)starts the named timer. It is not retried.
func (c *Client) Start(ctx context.Context, name string) error {
	body, err := c.call(ctx, "/start?name="+url.QueryEscape(name), false)
	if err != nil {
		return err
	}
	if body != replyOK {
		return fmt.Errorf("%w: %q", ErrUnexpectedReply, body)
	}

	return nil
}

// Stop stops the named timer and returns how long it ran. It is not retried:
// a lost reply means the elapsed time is gone.
func (c *Client) Stop(ctx context.Context, name string) (time.Duration, error) {
	body, err := c.call(ctx, "/stop?name="+url.QueryEscape(name), false)
	if err != nil {
		return 0, err
	}
	if body == replyFailed {
		return 0, ErrTimerNotFound
	}

	ns, err := strconv.ParseInt(body, 10, 64)
	if err != nil || ns < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedReply, body)
	}

	return time.Duration(ns), nil
}

// call requests target. Idempotent calls are GETs whose transport failures
// and 5xx responses are retried. Start and stop change server state, so a
// failed attempt may already have been applied: they go out as POST, which
// http.Transport never replays, and are not retried here either.
func (c *Client) call(ctx context.Context, target string, idempotent bool) (string, error) {
	endpoint := c.base.String() + target

	var body string
	method := http.MethodGet
	retries := c.retries
	if !idempotent {
		method = http.MethodPost
		retries = 0
	}
	b := retry.WithMaxRetries(retries, retry.NewConstant(c.delay))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("server returned %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server returned %s", resp.Status)
		}

		body = string(payload)
		if body == replyUnknown {
			return fmt.Errorf("%w: %q", ErrUnexpectedReply, body)
		}

		return nil
	})

	return body, err
}
