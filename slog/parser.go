package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/cpm"
)

// Ensure LoggingParser implements cpm.Parser.
var _ cpm.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser and logs which layout produced the samples
// of each page. Skipped blocks with unrecognized type labels are logged
// as warnings.
type LoggingParser struct {
	next   cpm.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next cpm.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Site delegates to the wrapped parser.
func (p *LoggingParser) Site() cpm.Site {
	return p.next.Site()
}

// ExtractMetadata delegates to the wrapped parser.
func (p *LoggingParser) ExtractMetadata(html string, policy cpm.TitlePolicy) cpm.ProblemMetadata {
	return p.next.ExtractMetadata(html, policy)
}

// ExtractSamples delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) ExtractSamples(html string) (result *cpm.SampleResult, err error) {
	defer func(begin time.Time) {
		p.logSamples(result, time.Since(begin), err)
	}(time.Now())
	return p.next.ExtractSamples(html)
}

// ListSubProblems delegates to the wrapped parser and logs the link count.
func (p *LoggingParser) ListSubProblems(html string, basePath string) (links []string, err error) {
	defer func(begin time.Time) {
		p.logger.Info("list sub-problems",
			"site", string(p.next.Site()),
			"base", basePath,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ListSubProblems(html, basePath)
}

// ExtractStatement delegates to the wrapped parser.
func (p *LoggingParser) ExtractStatement(html string) string {
	return p.next.ExtractStatement(html)
}

// Extract delegates to the wrapped parser and logs the sample outcome.
func (p *LoggingParser) Extract(html string, opts cpm.ExtractOptions) (e *cpm.Extraction, err error) {
	defer func(begin time.Time) {
		var result *cpm.SampleResult
		if e != nil {
			result = e.Samples
		}
		p.logSamples(result, time.Since(begin), err)
	}(time.Now())
	return p.next.Extract(html, opts)
}

func (p *LoggingParser) logSamples(result *cpm.SampleResult, d time.Duration, err error) {
	site := string(p.next.Site())
	if result == nil {
		p.logger.Info("sample extraction", "site", site, "duration", d, "err", err)
		return
	}
	for _, v := range result.Violations {
		p.logger.Warn("unrecognized sample block",
			"layout", v.Layout,
			"type", v.Type,
			"id", v.ID,
		)
	}
	layout := result.Layout
	if layout == "" {
		layout = "(none)"
	}
	p.logger.Info("sample extraction",
		"site", site,
		"layout", layout,
		"cases", len(result.Cases),
		"duration", d,
		"err", err,
	)
}
