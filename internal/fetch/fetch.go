// Package fetch retrieves recipe pages over HTTP. Non-2xx statuses surface
// as typed errors; an optional single retry covers transient 5xx responses.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotHTML marks responses whose content type the pipeline cannot parse.
var ErrNotHTML = errors.New("unsupported content type")

// StatusError reports a non-2xx response status.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

// Client wraps http.Client with a user agent, per-request timeout, redirect
// cap, and an optional single retry on 5xx.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each request. Zero means no extra deadline beyond ctx.
	Timeout time.Duration
	// RedirectMaxHops caps redirect following. Zero means default (5).
	RedirectMaxHops int
	// RetryServerErrors enables one retry after a short pause on 5xx.
	RetryServerErrors bool
}

// Page fetches the URL and returns the page body as text. Cancellation is
// caller-driven through ctx; a timeout aborts the whole request.
func (c *Client) Page(ctx context.Context, pageURL string) (string, error) {
	body, err := c.tryOnce(ctx, pageURL)
	var se *StatusError
	if err != nil && c.RetryServerErrors && errors.As(err, &se) && se.Status >= 500 && ctx.Err() == nil {
		time.Sleep(200 * time.Millisecond)
		body, err = c.tryOnce(ctx, pageURL)
	}
	return body, err
}

func (c *Client) tryOnce(ctx context.Context, pageURL string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return "", fmt.Errorf("unsupported URL scheme: %q", pageURL)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Status: resp.StatusCode, URL: pageURL}
	}
	if ct := resp.Header.Get("Content-Type"); !isHTMLContentType(ct) {
		return "", fmt.Errorf("%w: %s", ErrNotHTML, ct)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(b), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client.
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirect
		return &base
	}
	return &http.Client{CheckRedirect: c.checkRedirect}
}

func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	if len(via) >= max {
		return errors.New("too many redirects")
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return errors.New("redirect to unsupported scheme")
	}
	return nil
}

func isHTTPScheme(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return ct == "" || strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}
