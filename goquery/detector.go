package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cpm"
)

var _ cpm.SiteDetector = (*Detector)(nil)

// Detector identifies the judge that served a page from its markup. It is
// used for pages saved to disk, where no URL is available.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified judge.
// Returns SiteUnknown if the judge cannot be determined.
func (d *Detector) Detect(html string) cpm.Site {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return cpm.SiteUnknown
	}

	// Canonical and og:url links are the most reliable when present
	if site := d.detectFromPageURL(doc); site != cpm.SiteUnknown {
		return site
	}

	// AtCoder task pages: contest header link and task statement container
	if d.hasSelector(doc, "a.contest-title") ||
		d.hasSelector(doc, "#task-statement") ||
		d.hasSelector(doc, "#main-container span.h2") {
		return cpm.SiteAtCoder
	}

	// Codeforces problem and contest pages
	if d.hasSelector(doc, "div.problem-statement div.sample-test") ||
		d.hasSelector(doc, "div.problem-statement div.header") ||
		d.hasSelector(doc, "table.problems td.id") {
		return cpm.SiteCodeforces
	}

	return cpm.SiteUnknown
}

// detectFromPageURL maps the host of the canonical page URL to a judge.
func (d *Detector) detectFromPageURL(doc *goquery.Document) cpm.Site {
	for _, sel := range []struct{ selector, attr string }{
		{`link[rel="canonical"]`, "href"},
		{`meta[property="og:url"]`, "content"},
	} {
		raw, ok := doc.Find(sel.selector).First().Attr(sel.attr)
		if !ok {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if site := cpm.SiteFromHost(u.Host); site != cpm.SiteUnknown {
			return site
		}
	}
	return cpm.SiteUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
