package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cpm"
)

// siteParser holds the per-judge lookups that run against an already
// parsed Document.
type siteParser interface {
	metadata(doc *Document, policy cpm.TitlePolicy) cpm.ProblemMetadata
	links(doc *Document, basePath string) []string
	statement(doc *Document) string
	assembler() *Assembler
}

// extract parses the page once and runs every lookup against the same tree.
func extract(p siteParser, raw string, opts cpm.ExtractOptions) (*cpm.Extraction, error) {
	doc, err := NewDocument(raw)
	if err != nil {
		return nil, err
	}

	e := &cpm.Extraction{
		Metadata:      p.metadata(doc, opts.TitlePolicy),
		Samples:       p.assembler().Assemble(doc),
		Links:         []string{},
		StatementHTML: p.statement(doc),
	}
	if opts.ListLinks {
		e.Links = p.links(doc, opts.BasePath)
	}
	return e, nil
}

func extractMetadata(p siteParser, raw string, policy cpm.TitlePolicy) cpm.ProblemMetadata {
	doc, err := NewDocument(raw)
	if err != nil {
		return cpm.ProblemMetadata{}
	}
	return p.metadata(doc, policy)
}

func extractSamples(p siteParser, raw string) (*cpm.SampleResult, error) {
	doc, err := NewDocument(raw)
	if err != nil {
		return nil, err
	}
	return p.assembler().Assemble(doc), nil
}

func listSubProblems(p siteParser, raw string, basePath string) ([]string, error) {
	doc, err := NewDocument(raw)
	if err != nil {
		return nil, err
	}
	return p.links(doc, basePath), nil
}

func extractStatement(p siteParser, raw string) string {
	doc, err := NewDocument(raw)
	if err != nil {
		return ""
	}
	return p.statement(doc)
}

// linkPaths returns the paths of the hrefs of sel that are relative or
// point at site, keeping those accepted by keep. Paths lose their trailing
// slash so both spellings of a page yield one link.
func linkPaths(sel *goquery.Selection, site cpm.Site, keep func(path string) bool) []string {
	var paths []string
	sel.Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		u, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		if u.Host != "" && cpm.SiteFromHost(u.Host) != site {
			return
		}
		path := strings.TrimRight(u.Path, "/")
		if keep(path) {
			paths = append(paths, path)
		}
	})
	return cpm.CanonicalLinks(paths)
}

// outerHTML renders the first element of sel, or "" if sel is empty.
func outerHTML(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	out, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return ""
	}
	return out
}
