package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements cpm.Converter at compile time.
var _ cpm.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<p>Hello, world!</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Title</h1><h2>Subtitle</h2><h3>Section</h3>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
		assert.Contains(t, md, "### Section")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Name</th><th>Age</th></tr></thead>
<tbody><tr><td>Alice</td><td>30</td></tr><tr><td>Bob</td><td>25</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Name")
		assert.Contains(t, md, "Age")
		assert.Contains(t, md, "Alice")
		assert.Contains(t, md, "Bob")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, cpm.EINVALID, cpm.ErrorCode(err))
	})

	t.Run("renders AtCoder variables as inline math", func(t *testing.T) {
		t.Parallel()

		html := `<p>Given are integers <var>N</var> and <var> M </var>.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "$N$")
		assert.Contains(t, md, "$M$")
		assert.NotContains(t, md, "<var>")
	})

	t.Run("drops copy buttons", func(t *testing.T) {
		t.Parallel()

		html := `<h3>Sample Input 1 <span class="btn btn-default btn-sm btn-copy">Copy</span></h3><pre>3 4</pre>
<div class="input"><div class="title">Input<div title="Copy" class="input-output-copier">Copy</div></div><pre>8</pre></div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "### Sample Input 1")
		assert.Contains(t, md, "3 4")
		assert.Contains(t, md, "8")
		assert.NotContains(t, md, "Copy")
	})

	t.Run("strips active content", func(t *testing.T) {
		t.Parallel()

		html := `<p onclick="steal()">Read carefully.</p><iframe src="https://example.com/"></iframe><a href="javascript:alert(1)">here</a>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Read carefully.")
		assert.NotContains(t, md, "steal")
		assert.NotContains(t, md, "iframe")
		assert.NotContains(t, md, "javascript:")
	})

	t.Run("handles a complete AtCoder statement", func(t *testing.T) {
		t.Parallel()

		html := `<span class="lang-en">
<div class="part"><section><h3>Problem Statement</h3><p>AtCoDeer the deer found two positive integers, <var>a</var> and <var>b</var>.
Determine whether the product of <var>a</var> and <var>b</var> is even or odd.</p></section></div>
<div class="part"><section><h3>Constraints</h3><ul><li><var>1 \leq a,b \leq 10000</var></li><li><var>a</var> and <var>b</var> are integers.</li></ul></section></div>
<div class="part"><section><h3>Sample Input 1 <span class="btn btn-default btn-sm btn-copy">Copy</span></h3><pre>3 4
</pre></section></div>
<div class="part"><section><h3>Sample Output 1 <span class="btn btn-default btn-sm btn-copy">Copy</span></h3><pre>Even
</pre><p>As <var>3 \times 4 = 12</var> is even, print <code>Even</code>.</p></section></div>
</span>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "### Problem Statement")
		assert.Contains(t, md, "### Constraints")
		assert.Contains(t, md, "- ")
		assert.Contains(t, md, "```")
		assert.Contains(t, md, "Even")
		assert.Contains(t, md, "`Even`")
		assert.NotContains(t, md, "Copy")
	})
}
