package cpm

import (
	"context"
	"net/url"
)

// Fetcher retrieves page markup from judge URLs.
// Implementations handle transport, cookies and session replay.
type Fetcher interface {
	// Fetch retrieves the URL and returns the page HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// FormPoster submits HTML forms, e.g. login forms guarded by a CSRF token.
type FormPoster interface {
	// PostForm submits values to the URL and returns the resulting page HTML.
	PostForm(ctx context.Context, url string, values url.Values) (html string, err error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
