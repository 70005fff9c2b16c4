package pattern

import (
	"strings"

	"github.com/fwojciec/cpm"
	"golang.org/x/net/html"
)

// Match is one occurrence of a template in a page.
type Match struct {
	// Binding holds the text captured by each slot.
	Binding cpm.Binding

	// Node is the page node matched by the first top-level template node.
	Node *html.Node
}

// Match returns every non-overlapping occurrence of the template under root,
// in document order. A subtree that took part in a match is not searched
// again. Returns an empty slice when nothing matches.
func (t *Template) Match(root *html.Node) []Match {
	matches := []Match{}
	if root == nil {
		return matches
	}
	t.walk(root, &matches)
	return matches
}

// walk treats n as a parent and looks for the template's top-level nodes
// among its children.
func (t *Template) walk(n *html.Node, matches *[]Match) {
	kids := children(n)
	for i := 0; i < len(kids); i++ {
		if b, last, ok := t.matchAt(kids, i); ok {
			*matches = append(*matches, Match{Binding: b, Node: kids[i]})
			i = last
			continue
		}
		if kids[i].Type == html.ElementNode {
			t.walk(kids[i], matches)
		}
	}
}

// matchAt matches the first top-level node exactly at kids[i] and the
// remaining ones as an ordered subsequence of the following siblings.
// It returns the index of the last sibling consumed.
func (t *Template) matchAt(kids []*html.Node, i int) (cpm.Binding, int, bool) {
	first, ok := matchNode(t.roots[0], kids[i])
	if !ok {
		return nil, 0, false
	}
	rest, last, ok := matchSeq(t.roots[1:], kids, i+1)
	if !ok {
		return nil, 0, false
	}
	return merge(first, rest), last, true
}

// matchSeq matches pats as an ordered subsequence of kids[start:],
// backtracking over candidate positions.
func matchSeq(pats []*node, kids []*html.Node, start int) (cpm.Binding, int, bool) {
	if len(pats) == 0 {
		return cpm.Binding{}, start - 1, true
	}
	for j := start; j < len(kids); j++ {
		b, ok := matchNode(pats[0], kids[j])
		if !ok {
			continue
		}
		rest, last, ok := matchSeq(pats[1:], kids, j+1)
		if !ok {
			continue
		}
		return merge(b, rest), last, true
	}
	return nil, 0, false
}

func matchNode(p *node, n *html.Node) (cpm.Binding, bool) {
	if p.kind == textNode {
		if n.Type != html.TextNode {
			return nil, false
		}
		values, ok := p.text.match(collapse(n.Data))
		return cpm.Binding(values), ok
	}

	if n.Type != html.ElementNode || n.Data != p.tag {
		return nil, false
	}

	b := cpm.Binding{}
	for _, a := range p.attrs {
		values, ok := matchAttr(a, n)
		if !ok {
			return nil, false
		}
		for k, v := range values {
			b[k] = v
		}
	}

	if p.whole != "" {
		b[p.whole] = TextContent(n)
		return b, true
	}

	if len(p.children) == 0 {
		return b, true
	}
	rest, _, ok := matchSeq(p.children, children(n), 0)
	if !ok {
		return nil, false
	}
	return merge(b, rest), true
}

func matchAttr(a *attr, n *html.Node) (map[string]string, bool) {
	val, ok := attrValue(n, a.key)
	if !ok {
		return nil, false
	}
	if a.key == "class" {
		have := strings.Fields(val)
		for _, want := range a.classes {
			if !contains(have, want) {
				return nil, false
			}
		}
		return nil, true
	}
	return a.text.match(val)
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// children returns the significant children of n.
func children(n *html.Node) []*html.Node {
	var kids []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if significant(c) {
			kids = append(kids, c)
		}
	}
	return kids
}

func merge(a, b cpm.Binding) cpm.Binding {
	if len(b) == 0 {
		if a == nil {
			return cpm.Binding{}
		}
		return a
	}
	out := make(cpm.Binding, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
