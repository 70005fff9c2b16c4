package goquery

import (
	"slices"

	"github.com/fwojciec/cpm"
)

var _ cpm.ParserRegistry = (*Registry)(nil)

// Registry manages judge-specific parsers. Parsers are looked up by judge,
// by URL host, or by detecting the judge from page markup.
type Registry struct {
	detector cpm.SiteDetector
	parsers  map[cpm.Site]cpm.Parser
}

// NewRegistry creates an empty Registry using detector for ForHTML.
func NewRegistry(detector cpm.SiteDetector) *Registry {
	return &Registry{
		detector: detector,
		parsers:  make(map[cpm.Site]cpm.Parser),
	}
}

// NewDefaultRegistry creates a Registry with the AtCoder and Codeforces
// parsers registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(NewDetector())
	r.Register(NewAtCoderParser())
	r.Register(NewCodeforcesParser())
	return r
}

// Get returns the parser for a specific judge.
// Returns nil if no parser is registered for the judge.
func (r *Registry) Get(site cpm.Site) cpm.Parser {
	return r.parsers[site]
}

// ForURL returns the parser for the judge hosting rawURL.
func (r *Registry) ForURL(rawURL string) (cpm.Parser, error) {
	ref, err := cpm.ClassifyURL(rawURL)
	if err != nil {
		return nil, err
	}
	p, ok := r.parsers[ref.Site]
	if !ok {
		return nil, cpm.Errorf(cpm.EINVALID, "no parser registered for %s", ref.Site)
	}
	return p, nil
}

// ForHTML detects the judge from HTML and returns its parser.
func (r *Registry) ForHTML(html string) (cpm.Parser, error) {
	site := r.detector.Detect(html)
	if site == cpm.SiteUnknown {
		return nil, cpm.Errorf(cpm.ENOTFOUND, "could not detect judge from page")
	}
	p, ok := r.parsers[site]
	if !ok {
		return nil, cpm.Errorf(cpm.ENOTFOUND, "no parser registered for %s", site)
	}
	return p, nil
}

// Register adds a parser for its judge.
// If a parser is already registered for the judge, it is replaced.
func (r *Registry) Register(parser cpm.Parser) {
	r.parsers[parser.Site()] = parser
}

// List returns all registered judges in name order.
func (r *Registry) List() []cpm.Site {
	sites := make([]cpm.Site, 0, len(r.parsers))
	for s := range r.parsers {
		sites = append(sites, s)
	}
	slices.Sort(sites)
	return sites
}
