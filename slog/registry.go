package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/cpm"
)

// Ensure LoggingRegistry implements cpm.ParserRegistry.
var _ cpm.ParserRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a ParserRegistry with debug logging for judge
// detection. Returned parsers are wrapped in LoggingParser.
type LoggingRegistry struct {
	next   cpm.ParserRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next cpm.ParserRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(site cpm.Site) cpm.Parser {
	return r.wrap(r.next.Get(site))
}

// ForURL delegates to the wrapped registry.
func (r *LoggingRegistry) ForURL(rawURL string) (cpm.Parser, error) {
	p, err := r.next.ForURL(rawURL)
	if err != nil {
		return nil, err
	}
	return r.wrap(p), nil
}

// ForHTML detects the judge, logs it, and returns its parser.
func (r *LoggingRegistry) ForHTML(html string) (cpm.Parser, error) {
	begin := time.Now()
	p, err := r.next.ForHTML(html)
	site := "(unknown)"
	if p != nil {
		site = string(p.Site())
	}
	r.logger.Info("judge detection",
		"site", site,
		"duration", time.Since(begin),
	)
	if err != nil {
		return nil, err
	}
	return r.wrap(p), nil
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(parser cpm.Parser) {
	r.next.Register(parser)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []cpm.Site {
	return r.next.List()
}

func (r *LoggingRegistry) wrap(p cpm.Parser) cpm.Parser {
	if p == nil {
		return nil
	}
	return NewLoggingParser(p, r.logger)
}
