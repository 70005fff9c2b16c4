package cpm

import (
	"net/url"
	"strings"
)

// Site identifies a supported judge.
type Site string

// Supported judges.
const (
	SiteUnknown    Site = ""
	SiteAtCoder    Site = "atcoder"
	SiteCodeforces Site = "codeforces"
)

// Host returns the canonical host name of the judge.
func (s Site) Host() string {
	switch s {
	case SiteAtCoder:
		return "atcoder.jp"
	case SiteCodeforces:
		return "codeforces.com"
	}
	return ""
}

// SiteFromHost maps a URL host to a judge.
// Returns SiteUnknown for hosts that are not supported.
func SiteFromHost(host string) Site {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	switch host {
	case "atcoder.jp", "beta.atcoder.jp":
		return SiteAtCoder
	case "codeforces.com", "m1.codeforces.com", "m2.codeforces.com", "m3.codeforces.com":
		return SiteCodeforces
	}
	return SiteUnknown
}

// ProblemMetadata holds the titles found on a problem page.
// An empty field means the title was not found; fields are independent.
type ProblemMetadata struct {
	Title        string `json:"title"`
	ContestTitle string `json:"contestTitle"`
}

// HasTitle reports whether a problem title was found.
func (m ProblemMetadata) HasTitle() bool { return m.Title != "" }

// HasContestTitle reports whether a contest title was found.
func (m ProblemMetadata) HasContestTitle() bool { return m.ContestTitle != "" }

// TitlePolicy controls how whitespace in extracted titles is normalized.
type TitlePolicy int

const (
	// TitleRaw returns the text exactly as it appears in the markup.
	TitleRaw TitlePolicy = iota

	// TitleTrim trims the text and collapses runs of whitespace,
	// including newlines and tabs, into a single space.
	TitleTrim

	// TitleCompact removes all whitespace, for use in file names.
	TitleCompact
)

// NormalizeTitle applies a whitespace policy to title text.
func NormalizeTitle(s string, policy TitlePolicy) string {
	switch policy {
	case TitleTrim:
		return strings.Join(strings.Fields(s), " ")
	case TitleCompact:
		return strings.Join(strings.Fields(s), "")
	}
	return s
}

// Extraction bundles everything recovered from one page.
type Extraction struct {
	Metadata      ProblemMetadata
	Samples       *SampleResult
	Links         []string
	StatementHTML string
}

// ExtractOptions configures Parser.Extract.
type ExtractOptions struct {
	TitlePolicy TitlePolicy

	// ListLinks enables sub-problem link listing, for contest index pages.
	ListLinks bool

	// BasePath restricts listed links to paths with this prefix.
	BasePath string
}

// Parser extracts problem data from the pages of one judge.
// Implementations are stateless and safe for concurrent use.
type Parser interface {
	// Site returns the judge this parser understands.
	Site() Site

	// ExtractMetadata returns the problem and contest titles.
	// Titles that cannot be found are left empty.
	ExtractMetadata(html string, policy TitlePolicy) ProblemMetadata

	// ExtractSamples returns the sample cases of a problem page by trying
	// the judge's known layouts newest first. A page without samples
	// yields an empty, non-nil Cases slice and no error.
	ExtractSamples(html string) (*SampleResult, error)

	// ListSubProblems returns the unique, sorted relative URLs of the
	// problems linked from a contest index page.
	ListSubProblems(html string, basePath string) ([]string, error)

	// ExtractStatement returns the HTML of the problem statement.
	// Returns an empty string when no statement is found.
	ExtractStatement(html string) string

	// Extract parses the page once and runs every lookup against it.
	Extract(html string, opts ExtractOptions) (*Extraction, error)
}

// SiteDetector identifies a judge from page markup.
type SiteDetector interface {
	// Detect returns SiteUnknown when the markup is not recognized.
	Detect(html string) Site
}

// ParserRegistry manages the parsers of supported judges.
type ParserRegistry interface {
	// Get returns the parser for a judge, or nil if none is registered.
	Get(site Site) Parser

	// ForURL returns the parser for the judge hosting rawURL.
	// Returns EINVALID if the URL cannot be parsed or the host is unsupported.
	ForURL(rawURL string) (Parser, error)

	// ForHTML detects the judge from page markup.
	// Returns ENOTFOUND when the judge cannot be determined.
	ForHTML(html string) (Parser, error)

	// Register adds a parser, replacing any parser for the same judge.
	Register(parser Parser)

	// List returns all registered judges.
	List() []Site
}

// parseURL parses a raw URL and maps its host to a judge.
func parseURL(rawURL string) (*url.URL, Site, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, SiteUnknown, Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	site := SiteFromHost(u.Host)
	if site == SiteUnknown {
		return nil, SiteUnknown, Errorf(EINVALID, "unsupported judge URL %q", rawURL)
	}
	return u, site, nil
}
