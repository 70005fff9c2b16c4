package mock

import (
	"context"
	"net/url"

	"github.com/fwojciec/cpm"
)

var _ cpm.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of cpm.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ cpm.FormPoster = (*FormPoster)(nil)

// FormPoster is a mock implementation of cpm.FormPoster.
type FormPoster struct {
	PostFormFn func(ctx context.Context, url string, values url.Values) (string, error)
}

func (p *FormPoster) PostForm(ctx context.Context, url string, values url.Values) (string, error) {
	return p.PostFormFn(ctx, url, values)
}

var _ cpm.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of cpm.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
