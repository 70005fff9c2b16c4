package goquery

import (
	"strings"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/pattern"
	"golang.org/x/net/html"
)

// Assembler turns the sample blocks of a page into ordered sample cases by
// trying an ordered list of layouts and, within a layout, its language
// variants. The first variant yielding at least one case wins; later
// variants and layouts are not tried.
type Assembler struct {
	layouts []Layout
}

// NewAssembler creates an Assembler over layouts, ordered newest first.
func NewAssembler(layouts []Layout) *Assembler {
	return &Assembler{layouts: layouts}
}

// Layouts returns the layouts in the order they are tried.
func (a *Assembler) Layouts() []Layout {
	return a.layouts
}

// Assemble extracts the sample cases of doc. It never fails: a page matching
// no layout yields an empty result. Blocks with an unrecognized type label
// are reported as violations and skipped.
func (a *Assembler) Assemble(doc *Document) *cpm.SampleResult {
	result := &cpm.SampleResult{Cases: []cpm.SampleCase{}}
	root := doc.Root()
	if root == nil {
		return result
	}

	for _, layout := range a.layouts {
		for _, v := range layout.Variants {
			b := collect(layout, v, root)
			result.Violations = append(result.Violations, b.violations...)

			if cases := pair(layout.Pairing, b); len(cases) > 0 {
				result.Cases = cases
				result.Layout = layout.Name()
				return result
			}
		}
	}
	return result
}

type blocks struct {
	inputs     []cpm.Capture
	outputs    []cpm.Capture
	violations []*cpm.FormatViolation
}

func pair(pairing cpm.Pairing, b blocks) []cpm.SampleCase {
	inputs := cpm.DedupeSections(b.inputs)
	outputs := cpm.DedupeSections(b.outputs)
	if pairing == cpm.PairKeyed {
		return cpm.PairByID(inputs, outputs)
	}
	return cpm.PairByPosition(inputs, outputs)
}

// collect returns the sample blocks one variant finds under root.
func collect(layout Layout, v Variant, root *html.Node) blocks {
	var b blocks
	if v.Combined != nil {
		for _, m := range v.Combined.Match(root) {
			c := capture(m)
			switch typ := m.Binding["type"]; typ {
			case cpm.BlockInput:
				b.inputs = append(b.inputs, c)
			case cpm.BlockOutput:
				b.outputs = append(b.outputs, c)
			default:
				b.violations = append(b.violations, &cpm.FormatViolation{
					Layout: layout.Name(),
					Type:   typ,
					ID:     c.ID,
					Value:  c.Value,
				})
			}
		}
	}
	if v.Input != nil {
		for _, m := range v.Input.Match(root) {
			b.inputs = append(b.inputs, capture(m))
		}
	}
	if v.Output != nil {
		for _, m := range v.Output.Match(root) {
			b.outputs = append(b.outputs, capture(m))
		}
	}
	return b
}

func capture(m pattern.Match) cpm.Capture {
	return cpm.Capture{
		ID:      m.Binding["id"],
		Value:   m.Binding["value"],
		Section: sectionOf(m.Node),
	}
}

// sectionOf returns the language section enclosing n: the nearest ancestor
// with a lang-xx class or a lang attribute. Returns "" outside any section.
func sectionOf(n *html.Node) string {
	for p := n; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		for _, a := range p.Attr {
			switch a.Key {
			case "class":
				for _, class := range strings.Fields(a.Val) {
					if lang, ok := strings.CutPrefix(class, "lang-"); ok && lang != "" {
						return lang
					}
				}
			case "lang":
				if a.Val != "" {
					return a.Val
				}
			}
		}
	}
	return ""
}
