// Package htmltomarkdown renders judge problem statements as Markdown.
package htmltomarkdown

import (
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cpm"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Converter implements cpm.Converter at compile time.
var _ cpm.Converter = (*Converter)(nil)

// Page chrome inside statements that has no place in a Markdown copy.
const chromeSelector = ".btn-copy, .input-output-copier, .div-btn-copy, script, style"

// Converter wraps html-to-markdown to convert statements to Markdown.
// Copy buttons are dropped and AtCoder <var> elements become inline TeX.
// Statements pass a user-content sanitizer policy before conversion.
type Converter struct {
	conv   *converter.Converter
	policy *bluemonday.Policy
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv, policy: bluemonday.UGCPolicy()}
}

// Convert transforms a statement into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", cpm.Errorf(cpm.EINVALID, "empty HTML input")
	}

	cleaned, err := clean(html)
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(c.policy.Sanitize(cleaned))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

// clean removes page chrome and rewrites math markup.
func clean(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", cpm.Errorf(cpm.EINVALID, "failed to parse statement: %v", err)
	}

	doc.Find(chromeSelector).Remove()
	doc.Find("var").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("$" + html.EscapeString(strings.TrimSpace(s.Text())) + "$")
	})

	return doc.Find("body").Html()
}
