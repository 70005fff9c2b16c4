// Package http provides an HTTP-based implementation of cpm.Fetcher for
// judge pages. Judges serve static HTML, so no JavaScript rendering is
// needed. A cookie jar keeps the login session across requests.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/cpm"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies cpm to the judges.
const DefaultUserAgent = "cpm (+https://github.com/fwojciec/cpm)"

// Ensure Fetcher implements cpm.Fetcher and cpm.FormPoster at compile time.
var (
	_ cpm.Fetcher    = (*Fetcher)(nil)
	_ cpm.FormPoster = (*Fetcher)(nil)
)

// Fetcher retrieves judge pages over HTTP and submits forms. Response
// bodies are decoded to UTF-8 using the declared or sniffed charset.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher with an empty cookie jar.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	// cookiejar.New only fails for a non-nil PublicSuffixList.
	jar, _ := cookiejar.New(nil)
	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     jar,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	return f.do(req)
}

// PostForm submits values as an URL-encoded form and returns the page the
// server answers with, following redirects.
func (f *Fetcher) PostForm(ctx context.Context, url string, values url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(values.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func (f *Fetcher) do(req *http.Request) (string, error) {
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", cpm.Errorf(cpm.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, req.URL)
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", cpm.Errorf(cpm.EUNAUTHORIZED, "HTTP %d for %s", resp.StatusCode, req.URL)
	default:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, req.URL)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", req.URL, err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// SetCookies adds session cookies for the host of rawURL to the jar.
func (f *Fetcher) SetCookies(rawURL string, cookies []*cpm.Cookie) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return cpm.Errorf(cpm.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	hc := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		hc = append(hc, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	f.client.Jar.SetCookies(u, hc)
	return nil
}

// Cookies returns the cookies the jar would send to rawURL.
func (f *Fetcher) Cookies(rawURL string) ([]*cpm.Cookie, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, cpm.Errorf(cpm.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	hc := f.client.Jar.Cookies(u)
	cookies := make([]*cpm.Cookie, 0, len(hc))
	for _, c := range hc {
		cookies = append(cookies, &cpm.Cookie{Name: c.Name, Value: c.Value})
	}
	return cookies, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
