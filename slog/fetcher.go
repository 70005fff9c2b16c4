package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/cpm"
)

// Ensure LoggingFetcher implements cpm.Fetcher.
var _ cpm.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   cpm.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next cpm.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// PostForm delegates to the wrapped fetcher when it can submit forms.
// Form values are not logged since they carry credentials.
func (f *LoggingFetcher) PostForm(ctx context.Context, rawURL string, values url.Values) (html string, err error) {
	poster, ok := f.next.(cpm.FormPoster)
	if !ok {
		return "", cpm.Errorf(cpm.EINVALID, "fetcher cannot submit forms")
	}
	defer func(begin time.Time) {
		f.logger.Info("post form",
			"url", rawURL,
			"fields", len(values),
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return poster.PostForm(ctx, rawURL, values)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
