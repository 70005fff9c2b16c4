package goquery

import (
	"slices"
	"strings"

	"github.com/fwojciec/cpm"
)

var _ cpm.Parser = (*CodeforcesParser)(nil)

// CodeforcesParser extracts problem data from codeforces.com pages.
type CodeforcesParser struct {
	samples *Assembler
}

// NewCodeforcesParser creates a parser using the Codeforces layout catalog.
func NewCodeforcesParser() *CodeforcesParser {
	return &CodeforcesParser{samples: NewAssembler(CodeforcesLayouts)}
}

// Site returns cpm.SiteCodeforces.
func (p *CodeforcesParser) Site() cpm.Site { return cpm.SiteCodeforces }

// ExtractMetadata returns the problem title and the contest title.
func (p *CodeforcesParser) ExtractMetadata(html string, policy cpm.TitlePolicy) cpm.ProblemMetadata {
	return extractMetadata(p, html, policy)
}

// ExtractSamples returns the sample tests of a problem page.
func (p *CodeforcesParser) ExtractSamples(html string) (*cpm.SampleResult, error) {
	return extractSamples(p, html)
}

// ListSubProblems returns the problem paths under basePath linked from a
// contest page.
func (p *CodeforcesParser) ListSubProblems(html string, basePath string) ([]string, error) {
	return listSubProblems(p, html, basePath)
}

// ExtractStatement returns the problem statement block.
func (p *CodeforcesParser) ExtractStatement(html string) string {
	return extractStatement(p, html)
}

// Extract runs every lookup against a single parse of the page.
func (p *CodeforcesParser) Extract(html string, opts cpm.ExtractOptions) (*cpm.Extraction, error) {
	return extract(p, html, opts)
}

func (p *CodeforcesParser) assembler() *Assembler { return p.samples }

func (p *CodeforcesParser) metadata(doc *Document, policy cpm.TitlePolicy) cpm.ProblemMetadata {
	return cpm.ProblemMetadata{
		Title:        cpm.NormalizeTitle(doc.firstText("div.problem-statement div.header div.title"), policy),
		ContestTitle: cpm.NormalizeTitle(doc.firstText("table.rtable th.left a"), policy),
	}
}

func (p *CodeforcesParser) links(doc *Document, basePath string) []string {
	return linkPaths(doc.Find("a[href]"), cpm.SiteCodeforces, func(path string) bool {
		return strings.HasPrefix(path, basePath) && slices.Contains(cpm.PathSegments(path), "problem")
	})
}

func (p *CodeforcesParser) statement(doc *Document) string {
	return outerHTML(doc.Find("div.problem-statement"))
}
