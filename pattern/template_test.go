package pattern_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return root
}

func TestCompile(t *testing.T) {
	t.Parallel()

	t.Run("collects slots in source order", func(t *testing.T) {
		t.Parallel()

		tpl, err := pattern.Compile(`<section><h3>Sample {{type}} {{id}}</h3><pre>{{value}}</pre></section>`)

		require.NoError(t, err)
		assert.Equal(t, []string{"type", "id", "value"}, tpl.Slots())
	})

	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: "   "},
		{name: "unclosed slot", src: `<h3>Sample {{id</h3>`},
		{name: "stray close", src: `<h3>Sample id}}</h3>`},
		{name: "empty slot name", src: `<h3>Sample {{ }}</h3>`},
		{name: "invalid slot name", src: `<h3>Sample {{1st}}</h3>`},
		{name: "duplicate slot", src: `<div><h3>{{id}}</h3><pre>{{id}}</pre></div>`},
		{name: "top-level text", src: `Sample <pre>{{value}}</pre>`},
		{name: "no elements", src: `<!-- nothing -->`},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := pattern.Compile(tt.src)
			require.Error(t, err)
		})
	}
}

func TestMustCompile_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		pattern.MustCompile(`<h3>{{unclosed</h3>`)
	})
}

func TestTemplate_Match(t *testing.T) {
	t.Parallel()

	t.Run("captures text and whole-element slots in document order", func(t *testing.T) {
		t.Parallel()

		tpl := pattern.MustCompile(`
			<div class="part">
			<section>
			<h3>Sample {{type}} {{id}}</h3><pre>
			{{value}}
			</pre>
			</section>
			</div>`)

		root := parse(t, `<html><body>
			<div class="part"><section><h3>Sample Input 1</h3><pre>2 3</pre></section></div>
			<div class="part"><section><h3>Sample Output 1</h3><pre>2</pre></section></div>
		</body></html>`)

		matches := tpl.Match(root)

		require.Len(t, matches, 2)
		assert.Equal(t, cpm.Binding{"type": "Input", "id": "1", "value": "2 3"}, matches[0].Binding)
		assert.Equal(t, cpm.Binding{"type": "Output", "id": "1", "value": "2"}, matches[1].Binding)
		assert.Equal(t, "div", matches[0].Node.Data)
	})

	t.Run("allows extra classes attributes and children", func(t *testing.T) {
		t.Parallel()

		tpl := pattern.MustCompile(`<div class="part"><section><h3>入力例 {{id}}</h3><pre>{{value}}</pre></section></div>`)

		root := parse(t, `<div class="part wide" id="x"><section>
			<h3>入力例 1 <span class="btn btn-copy">Copy</span></h3>
			<p>note</p>
			<pre id="pre-sample0">1 2
</pre>
			<p>explanation</p>
		</section></div>`)

		matches := tpl.Match(root)

		require.Len(t, matches, 1)
		assert.Equal(t, "1", matches[0].Binding["id"])
		assert.Equal(t, "1 2\n", matches[0].Binding["value"])
	})

	t.Run("requires nesting to align", func(t *testing.T) {
		t.Parallel()

		tpl := pattern.MustCompile(`<div class="part"><section><h3>Sample Input {{id}}</h3><pre>{{value}}</pre></section></div>`)

		// heading outside the section: an older layout
		root := parse(t, `<div class="part"><h3>Sample Input 1</h3><section><pre>1</pre></section></div>`)

		assert.Empty(t, tpl.Match(root))
	})

	t.Run("requires literal text to match exactly", func(t *testing.T) {
		t.Parallel()

		tpl := pattern.MustCompile(`<h3>入力例 {{id}}</h3>`)

		assert.Empty(t, tpl.Match(parse(t, `<h3>入力例1</h3>`)))
		assert.Len(t, tpl.Match(parse(t, `<h3>入力例 1</h3>`)), 1)
	})

	t.Run("requires template children in order", func(t *testing.T) {
		t.Parallel()

		tpl := pattern.MustCompile(`<section><h3>{{title}}</h3><pre>{{value}}</pre></section>`)

		root := parse(t, `<section><pre>1</pre><h3>Sample</h3></section>`)

		assert.Empty(t, tpl.Match(root))
	})

	t.Run("matches multiple top-level nodes as siblings", func(t *testing.T) {
		t.Parallel()

		tpl := pattern.MustCompile(`<h3>出力例{{id}}</h3><pre>{{value}}</pre>`)

		root := parse(t, `<section>
			<h3>出力例1</h3><pre>3</pre>
			<h3>出力例2</h3><p>see below</p><pre>5</pre>
		</section>`)

		matches := tpl.Match(root)

		require.Len(t, matches, 2)
		assert.Equal(t, cpm.Binding{"id": "1", "value": "3"}, matches[0].Binding)
		assert.Equal(t, cpm.Binding{"id": "2", "value": "5"}, matches[1].Binding)
		assert.Equal(t, "h3", matches[1].Node.Data)
	})

	t.Run("does not search inside a matched subtree", func(t *testing.T) {
		t.Parallel()

		tpl := pattern.MustCompile(`<div class="box">{{value}}</div>`)

		root := parse(t, `<div class="box">outer <div class="box">inner</div></div>`)

		matches := tpl.Match(root)

		require.Len(t, matches, 1)
		assert.Equal(t, "outer \ninner\n", matches[0].Binding["value"])
	})

	t.Run("captures attribute slots", func(t *testing.T) {
		t.Parallel()

		tpl := pattern.MustCompile(`<a href="/contests/{{contest}}/tasks/{{task}}">{{label}}</a>`)

		root := parse(t, `<a href="/contests/abc100/tasks/abc100_a">A</a><a href="/contests/abc100/submissions">S</a>`)

		matches := tpl.Match(root)

		require.Len(t, matches, 1)
		assert.Equal(t, cpm.Binding{"contest": "abc100", "task": "abc100_a", "label": "A"}, matches[0].Binding)
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		t.Parallel()

		tpl := pattern.MustCompile(`<pre>{{value}}</pre>`)

		matches := tpl.Match(parse(t, `<p>no samples</p>`))

		assert.NotNil(t, matches)
		assert.Empty(t, matches)
	})

	t.Run("returns empty slice for nil root", func(t *testing.T) {
		t.Parallel()

		tpl := pattern.MustCompile(`<pre>{{value}}</pre>`)

		assert.Empty(t, tpl.Match(nil))
	})
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	t.Run("keeps pre text as is", func(t *testing.T) {
		t.Parallel()

		pre := findPre(parse(t, "<pre>3\n1 2 3\n</pre>"))

		assert.Equal(t, "3\n1 2 3\n", pattern.TextContent(pre))
	})

	t.Run("breaks lines on br and block children", func(t *testing.T) {
		t.Parallel()

		pre := findPre(parse(t, `<pre><div class="test-example-line">1 2</div><div class="test-example-line">3</div></pre>`))
		assert.Equal(t, "1 2\n3\n", pattern.TextContent(pre))

		pre = findPre(parse(t, `<pre>1 2<br>3<br></pre>`))
		assert.Equal(t, "1 2\n3\n", pattern.TextContent(pre))
	})

	t.Run("includes inline elements", func(t *testing.T) {
		t.Parallel()

		pre := findPre(parse(t, `<pre><var>N</var> = 3</pre>`))

		assert.Equal(t, "N = 3", pattern.TextContent(pre))
	})
}

func findPre(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "pre" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findPre(c); found != nil {
			return found
		}
	}
	return nil
}
