// Package pattern matches declarative HTML templates against parsed pages.
//
// A template is an HTML fragment whose text and attribute values may contain
// named capture slots written as {{name}}:
//
//	<div class="part"><section><h3>Sample {{type}} {{id}}</h3><pre>{{value}}</pre></section></div>
//
// A template matches a subtree when tags nest the same way and literal text
// outside the slots is equal. Extra attributes, classes and children on the
// page are allowed; template children must appear in order.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Template is a compiled structural template. It is immutable and safe for
// concurrent use.
type Template struct {
	src   string
	roots []*node
	slots []string
}

type nodeKind int

const (
	elementNode nodeKind = iota
	textNode
)

type node struct {
	kind nodeKind

	// element
	tag      string
	attrs    []*attr
	children []*node
	whole    string // slot capturing the element's full text content

	// text
	text *textPattern
}

type attr struct {
	key     string
	classes []string
	text    *textPattern
}

// textPattern matches whitespace-collapsed text. Literal text must be equal;
// each slot captures a non-empty run.
type textPattern struct {
	literal string
	re      *regexp.Regexp
	slots   []string
}

var slotName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Compile parses a template. The template must contain at least one element
// at the top level, slot names must be unique identifiers, and every {{ must
// be closed by }}.
func Compile(src string) (*Template, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("pattern: empty template")
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return nil, fmt.Errorf("pattern: parse template: %w", err)
	}

	t := &Template{src: src}
	seen := make(map[string]bool)
	for _, n := range nodes {
		if !significant(n) {
			continue
		}
		if n.Type != html.ElementNode {
			return nil, fmt.Errorf("pattern: top-level text %q outside an element", strings.TrimSpace(n.Data))
		}
		root, err := compileNode(n, seen, &t.slots)
		if err != nil {
			return nil, err
		}
		t.roots = append(t.roots, root)
	}
	if len(t.roots) == 0 {
		return nil, fmt.Errorf("pattern: template has no elements")
	}

	return t, nil
}

// MustCompile is like Compile but panics if the template cannot be parsed.
// It is intended for package-level template variables.
func MustCompile(src string) *Template {
	t, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return t
}

// Slots returns the slot names of the template in source order.
func (t *Template) Slots() []string {
	return append([]string(nil), t.slots...)
}

// String returns the template source.
func (t *Template) String() string {
	return t.src
}

func compileNode(n *html.Node, seen map[string]bool, slots *[]string) (*node, error) {
	if n.Type == html.TextNode {
		tp, err := compileText(collapse(n.Data), seen, slots)
		if err != nil {
			return nil, err
		}
		return &node{kind: textNode, text: tp}, nil
	}

	el := &node{kind: elementNode, tag: n.Data}
	for _, a := range n.Attr {
		ca := &attr{key: a.Key}
		if a.Key == "class" {
			ca.classes = strings.Fields(a.Val)
		} else {
			tp, err := compileText(a.Val, seen, slots)
			if err != nil {
				return nil, fmt.Errorf("pattern: attribute %s: %w", a.Key, err)
			}
			ca.text = tp
		}
		el.attrs = append(el.attrs, ca)
	}

	var kids []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if significant(c) {
			kids = append(kids, c)
		}
	}

	// <pre>{{value}}</pre> captures everything inside the element.
	if len(kids) == 1 && kids[0].Type == html.TextNode {
		if name, ok := wholeSlot(collapse(kids[0].Data)); ok {
			if err := addSlot(name, seen, slots); err != nil {
				return nil, err
			}
			el.whole = name
			return el, nil
		}
	}

	for _, c := range kids {
		child, err := compileNode(c, seen, slots)
		if err != nil {
			return nil, err
		}
		el.children = append(el.children, child)
	}
	return el, nil
}

// compileText splits s into literal parts and slots and builds an anchored
// expression for it.
func compileText(s string, seen map[string]bool, slots *[]string) (*textPattern, error) {
	tp := &textPattern{literal: s}
	if !strings.Contains(s, "{{") {
		if strings.Contains(s, "}}") {
			return nil, fmt.Errorf("pattern: unbalanced }} in %q", s)
		}
		return tp, nil
	}

	var expr strings.Builder
	expr.WriteString("^")
	rest := s
	for rest != "" {
		open := strings.Index(rest, "{{")
		if open < 0 {
			if strings.Contains(rest, "}}") {
				return nil, fmt.Errorf("pattern: unbalanced }} in %q", s)
			}
			expr.WriteString(regexp.QuoteMeta(rest))
			break
		}
		if strings.Contains(rest[:open], "}}") {
			return nil, fmt.Errorf("pattern: unbalanced }} in %q", s)
		}
		expr.WriteString(regexp.QuoteMeta(rest[:open]))

		end := strings.Index(rest[open+2:], "}}")
		if end < 0 {
			return nil, fmt.Errorf("pattern: unclosed {{ in %q", s)
		}
		name := strings.TrimSpace(rest[open+2 : open+2+end])
		if err := addSlot(name, seen, slots); err != nil {
			return nil, err
		}
		tp.slots = append(tp.slots, name)
		expr.WriteString("(.+?)")
		rest = rest[open+2+end+2:]
	}
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("pattern: compile %q: %w", s, err)
	}
	tp.re = re
	return tp, nil
}

func addSlot(name string, seen map[string]bool, slots *[]string) error {
	if !slotName.MatchString(name) {
		return fmt.Errorf("pattern: invalid slot name %q", name)
	}
	if seen[name] {
		return fmt.Errorf("pattern: duplicate slot %q", name)
	}
	seen[name] = true
	*slots = append(*slots, name)
	return nil
}

// wholeSlot reports whether s consists of exactly one slot.
func wholeSlot(s string) (string, bool) {
	if !strings.HasPrefix(s, "{{") || !strings.HasSuffix(s, "}}") {
		return "", false
	}
	inner := s[2 : len(s)-2]
	if strings.Contains(inner, "{{") || strings.Contains(inner, "}}") {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

// match reports whether text satisfies the pattern and returns the slot values.
func (tp *textPattern) match(text string) (map[string]string, bool) {
	if tp.re == nil {
		return nil, text == tp.literal
	}
	m := tp.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	values := make(map[string]string, len(tp.slots))
	for i, name := range tp.slots {
		values[name] = strings.TrimSpace(m[i+1])
	}
	return values, true
}

// significant reports whether a node takes part in matching. Comments,
// doctypes and whitespace-only text are ignored.
func significant(n *html.Node) bool {
	switch n.Type {
	case html.ElementNode:
		return true
	case html.TextNode:
		return strings.TrimSpace(n.Data) != ""
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
