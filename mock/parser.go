package mock

import "github.com/fwojciec/cpm"

var _ cpm.Parser = (*Parser)(nil)

// Parser is a mock implementation of cpm.Parser.
type Parser struct {
	SiteFn             func() cpm.Site
	ExtractMetadataFn  func(html string, policy cpm.TitlePolicy) cpm.ProblemMetadata
	ExtractSamplesFn   func(html string) (*cpm.SampleResult, error)
	ListSubProblemsFn  func(html string, basePath string) ([]string, error)
	ExtractStatementFn func(html string) string
	ExtractFn          func(html string, opts cpm.ExtractOptions) (*cpm.Extraction, error)
}

func (p *Parser) Site() cpm.Site {
	return p.SiteFn()
}

func (p *Parser) ExtractMetadata(html string, policy cpm.TitlePolicy) cpm.ProblemMetadata {
	return p.ExtractMetadataFn(html, policy)
}

func (p *Parser) ExtractSamples(html string) (*cpm.SampleResult, error) {
	return p.ExtractSamplesFn(html)
}

func (p *Parser) ListSubProblems(html string, basePath string) ([]string, error) {
	return p.ListSubProblemsFn(html, basePath)
}

func (p *Parser) ExtractStatement(html string) string {
	return p.ExtractStatementFn(html)
}

func (p *Parser) Extract(html string, opts cpm.ExtractOptions) (*cpm.Extraction, error) {
	return p.ExtractFn(html, opts)
}

var _ cpm.SiteDetector = (*SiteDetector)(nil)

// SiteDetector is a mock implementation of cpm.SiteDetector.
type SiteDetector struct {
	DetectFn func(html string) cpm.Site
}

func (d *SiteDetector) Detect(html string) cpm.Site {
	return d.DetectFn(html)
}

var _ cpm.ParserRegistry = (*ParserRegistry)(nil)

// ParserRegistry is a mock implementation of cpm.ParserRegistry.
type ParserRegistry struct {
	GetFn      func(site cpm.Site) cpm.Parser
	ForURLFn   func(rawURL string) (cpm.Parser, error)
	ForHTMLFn  func(html string) (cpm.Parser, error)
	RegisterFn func(parser cpm.Parser)
	ListFn     func() []cpm.Site
}

func (r *ParserRegistry) Get(site cpm.Site) cpm.Parser {
	return r.GetFn(site)
}

func (r *ParserRegistry) ForURL(rawURL string) (cpm.Parser, error) {
	return r.ForURLFn(rawURL)
}

func (r *ParserRegistry) ForHTML(html string) (cpm.Parser, error) {
	return r.ForHTMLFn(html)
}

func (r *ParserRegistry) Register(parser cpm.Parser) {
	r.RegisterFn(parser)
}

func (r *ParserRegistry) List() []cpm.Site {
	return r.ListFn()
}
