// Package fetch retrieves linked article content over HTTP and classifies it
// by declared media type. Failures never escape as Go errors: every outcome
// is a Result, with transport and status problems folded into KindError.
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

// Kind classifies a fetched body by its declared content type.
type Kind string

const (
	KindHTML  Kind = "html"
	KindJSON  Kind = "json"
	KindText  Kind = "text"
	KindError Kind = "error"
)

const (
	// DefaultTimeout bounds the whole fetch, including redirects.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBodyBytes caps how much of a response body is read.
	DefaultMaxBodyBytes = 2 << 20
	defaultRedirectHops = 5
)

// Result is the outcome of a single fetch. When Kind is KindError, Body is
// empty and Err carries a human-readable message; otherwise Err is empty.
type Result struct {
	// Body is the response body, verbatim, up to the configured cap.
	Body string
	// Kind is the media classification of the body.
	Kind Kind
	// URL is the final URL after redirects.
	URL string
	// Err is the failure message when Kind is KindError.
	Err string
}

// Client issues single GET requests. HTTPClient is a shared, concurrency-safe
// connection pool injected by the caller; per-request state lives on the
// request itself, so one Client serves independent calls concurrently.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each fetch. Zero means DefaultTimeout.
	Timeout time.Duration
	// RedirectMaxHops caps redirect following to avoid loops. Zero means 5.
	RedirectMaxHops int
	// MaxBodyBytes caps the bytes read from a response. Zero means
	// DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

func (c *Client) getHTTPClient() *http.Client {
	// Clone to attach our redirect policy without mutating the caller's client.
	base := http.Client{}
	if c.HTTPClient != nil {
		base = *c.HTTPClient
	}
	base.CheckRedirect = c.checkRedirectFunc()
	return &base
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = defaultRedirectHops
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

// Get issues a single GET against rawURL, following redirects, and returns a
// classified Result. It never returns an error: timeouts, DNS failures and
// non-2xx statuses all surface as Kind=KindError with a message.
func (c *Client) Get(ctx context.Context, rawURL string) Result {
	u, err := url.Parse(rawURL)
	if err != nil {
		return errResult(rawURL, fmt.Sprintf("invalid URL: %v", err))
	}
	if !isHTTPScheme(u) {
		return errResult(rawURL, fmt.Sprintf("unsupported URL scheme: %q", u.Scheme))
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errResult(rawURL, fmt.Sprintf("new request: %v", err))
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return errResult(rawURL, fmt.Sprintf("fetch failed: %v", err))
	}
	defer resp.Body.Close()

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errResult(finalURL, fmt.Sprintf("unexpected status: %d", resp.StatusCode))
	}

	maxBody := c.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return errResult(finalURL, fmt.Sprintf("read body: %v", err))
	}

	return Result{
		Body: string(body),
		Kind: classify(resp.Header.Get("Content-Type")),
		URL:  finalURL,
	}
}

func errResult(url, msg string) Result {
	return Result{Kind: KindError, URL: url, Err: msg}
}

// classify maps a declared Content-Type to a Kind: text/html variants are
// html, application/json is json, everything else is text.
func classify(contentType string) Kind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch {
	case strings.HasPrefix(ct, "text/html"), strings.HasPrefix(ct, "application/xhtml+xml"):
		return KindHTML
	case strings.HasPrefix(ct, "application/json"):
		return KindJSON
	default:
		return KindText
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
