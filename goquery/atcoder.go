package goquery

import (
	"strings"

	"github.com/fwojciec/cpm"
)

var _ cpm.Parser = (*AtCoderParser)(nil)

// AtCoderParser extracts problem data from atcoder.jp pages.
type AtCoderParser struct {
	samples *Assembler
}

// NewAtCoderParser creates a parser using the AtCoder layout catalog.
func NewAtCoderParser() *AtCoderParser {
	return &AtCoderParser{samples: NewAssembler(AtCoderLayouts)}
}

// Site returns cpm.SiteAtCoder.
func (p *AtCoderParser) Site() cpm.Site { return cpm.SiteAtCoder }

// ExtractMetadata returns the task title and the contest title.
func (p *AtCoderParser) ExtractMetadata(html string, policy cpm.TitlePolicy) cpm.ProblemMetadata {
	return extractMetadata(p, html, policy)
}

// ExtractSamples returns the sample cases of a task page.
func (p *AtCoderParser) ExtractSamples(html string) (*cpm.SampleResult, error) {
	return extractSamples(p, html)
}

// ListSubProblems returns the task paths linked from a contest task list.
func (p *AtCoderParser) ListSubProblems(html string, basePath string) ([]string, error) {
	return listSubProblems(p, html, basePath)
}

// ExtractStatement returns the task statement, preferring the English
// section of bilingual pages.
func (p *AtCoderParser) ExtractStatement(html string) string {
	return extractStatement(p, html)
}

// Extract runs every lookup against a single parse of the page.
func (p *AtCoderParser) Extract(html string, opts cpm.ExtractOptions) (*cpm.Extraction, error) {
	return extract(p, html, opts)
}

func (p *AtCoderParser) assembler() *Assembler { return p.samples }

func (p *AtCoderParser) metadata(doc *Document, policy cpm.TitlePolicy) cpm.ProblemMetadata {
	// The task heading holds buttons next to the title text.
	title := ownText(doc.Find("#main-container span.h2").First())
	if strings.TrimSpace(title) == "" {
		title = doc.firstText("head > title")
	}
	return cpm.ProblemMetadata{
		Title:        cpm.NormalizeTitle(title, policy),
		ContestTitle: cpm.NormalizeTitle(doc.firstText("a.contest-title"), policy),
	}
}

func (p *AtCoderParser) links(doc *Document, basePath string) []string {
	return linkPaths(doc.Find("div#main-container a[href]"), cpm.SiteAtCoder, func(path string) bool {
		return cpm.AtCoderTaskShape.Match(path) && strings.HasPrefix(path, basePath)
	})
}

func (p *AtCoderParser) statement(doc *Document) string {
	stmt := doc.Find("#task-statement").First()
	if en := stmt.Find("span.lang-en").First(); en.Length() > 0 {
		return outerHTML(en)
	}
	return outerHTML(stmt)
}

// CSRFToken returns the csrf_token form value of a judge login page.
func CSRFToken(html string) (string, bool) {
	doc, err := NewDocument(html)
	if err != nil {
		return "", false
	}
	token, ok := doc.Find(`input[name="csrf_token"]`).First().Attr("value")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// HasLoginForm reports whether the page still shows a password form, which
// is how a rejected login looks.
func HasLoginForm(html string) bool {
	doc, err := NewDocument(html)
	if err != nil {
		return false
	}
	return doc.Find(`form input[name="password"]`).Length() > 0
}
