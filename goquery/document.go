// Package goquery implements judge page parsing on top of goquery and the
// structural templates of package pattern.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cpm"
	"golang.org/x/net/html"
)

// Document is a parsed judge page. It is built once per page and shared by
// metadata, sample and link extraction.
type Document struct {
	doc *goquery.Document
}

// NewDocument parses raw page markup.
// Returns EINVALID if the markup cannot be read.
func NewDocument(raw string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, cpm.Errorf(cpm.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Root returns the document node of the page tree.
func (d *Document) Root() *html.Node {
	if len(d.doc.Nodes) == 0 {
		return nil
	}
	return d.doc.Nodes[0]
}

// Find returns the elements matching a CSS selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// ownText returns the text of the selection's direct text children,
// ignoring nested elements such as buttons inside headings.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return b.String()
}

// firstText returns the text of the first element matching one of the
// selectors, trying them in order. Returns "" when none matches.
func (d *Document) firstText(selectors ...string) string {
	for _, sel := range selectors {
		s := d.doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		if text := s.Text(); strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}
