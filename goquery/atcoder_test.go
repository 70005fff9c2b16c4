package goquery_test

import (
	"testing"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atcoderTaskPage = `<!DOCTYPE html>
<html>
<head><title>A - Product</title></head>
<body>
<nav><a class="contest-title" href="/contests/abc086">AtCoder Beginner Contest 086</a></nav>
<div id="main-container" class="container">
<div class="row"><div class="col-sm-12">
<span class="h2">
	A - Product
	<a class="btn btn-default btn-sm" href="/contests/abc086/tasks/abc086_a/editorial">Editorial</a>
</span>
<div id="task-statement">
<span class="lang">
<span class="lang-ja">
<div class="part"><section><h3>問題文</h3><p>二つの正整数 a, b があります。</p></section></div>
<div class="part"><section><h3>入力例 1 <span class="btn btn-default btn-sm btn-copy">Copy</span></h3><pre id="pre-sample0">3 4
</pre></section></div>
<div class="part"><section><h3>出力例 1 <span class="btn btn-default btn-sm btn-copy">Copy</span></h3><pre id="pre-sample1">Even
</pre></section></div>
</span>
<span class="lang-en">
<div class="part"><section><h3>Problem Statement</h3><p>AtCoDeer the deer found two positive integers, a and b.</p></section></div>
<div class="part"><section><h3>Sample Input 1 <span class="btn btn-default btn-sm btn-copy">Copy</span></h3><pre id="pre-sample2">3 4
</pre></section></div>
<div class="part"><section><h3>Sample Output 1 <span class="btn btn-default btn-sm btn-copy">Copy</span></h3><pre id="pre-sample3">Even
</pre></section></div>
<div class="part"><section><h3>Sample Input 2 <span class="btn btn-default btn-sm btn-copy">Copy</span></h3><pre id="pre-sample4">1 21
</pre></section></div>
<div class="part"><section><h3>Sample Output 2 <span class="btn btn-default btn-sm btn-copy">Copy</span></h3><pre id="pre-sample5">Odd
</pre></section></div>
</span>
</span>
</div>
</div></div>
</div>
</body>
</html>`

const atcoderTaskListPage = `<!DOCTYPE html>
<html>
<head><title>Tasks - AtCoder Beginner Contest 086</title></head>
<body>
<nav><a href="/contests/abc086/tasks/abc086_z">Navigation link outside the container</a></nav>
<div id="main-container" class="container">
<table class="table"><tbody>
<tr><td><a href="/contests/abc086/tasks/abc086_c">C</a></td><td><a href="/contests/abc086/tasks/abc086_c">Traveling</a></td></tr>
<tr><td><a href="/contests/abc086/tasks/abc086_a">A</a></td><td><a href="/contests/abc086/tasks/abc086_a">Product</a></td></tr>
<tr><td><a href="https://atcoder.jp/contests/abc086/tasks/abc086_b">B</a></td><td><a href="/contests/abc086/tasks/abc086_b">1 21</a></td></tr>
<tr><td><a href="/contests/abc086/tasks">Tasks</a></td><td><a href="/contests/abc086/submissions?f.Task=abc086_a">Submissions</a></td></tr>
<tr><td><a href="/contests/arc001/tasks/arc001_1">Other contest</a></td><td><a href="https://example.com/contests/abc086/tasks/abc086_d">Elsewhere</a></td></tr>
</tbody></table>
</div>
</body>
</html>`

func TestAtCoderParser_ExtractSamples(t *testing.T) {
	t.Parallel()

	t.Run("extracts English samples of a bilingual task", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		result, err := p.ExtractSamples(atcoderTaskPage)

		require.NoError(t, err)
		assert.Equal(t, []cpm.SampleCase{
			{Input: "3 4\n", Output: "Even\n"},
			{Input: "1 21\n", Output: "Odd\n"},
		}, result.Cases)
		assert.Equal(t, "atcoder/current", result.Layout)
	})

	t.Run("returns empty cases for a page without samples", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		result, err := p.ExtractSamples(atcoderTaskListPage)

		require.NoError(t, err)
		assert.NotNil(t, result.Cases)
		assert.Empty(t, result.Cases)
	})
}

func TestAtCoderParser_ExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("reads the heading text without buttons", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		meta := p.ExtractMetadata(atcoderTaskPage, cpm.TitleTrim)

		assert.Equal(t, "A - Product", meta.Title)
		assert.Equal(t, "AtCoder Beginner Contest 086", meta.ContestTitle)
	})

	t.Run("compacts titles for file names", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		meta := p.ExtractMetadata(atcoderTaskPage, cpm.TitleCompact)

		assert.Equal(t, "A-Product", meta.Title)
		assert.Equal(t, "AtCoderBeginnerContest086", meta.ContestTitle)
	})

	t.Run("keeps raw whitespace when asked", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		meta := p.ExtractMetadata(atcoderTaskPage, cpm.TitleRaw)

		assert.Contains(t, meta.Title, "\n")
		assert.NotContains(t, meta.Title, "Editorial")
	})

	t.Run("falls back to the document title", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		meta := p.ExtractMetadata(`<html><head><title>B - Sum</title></head><body></body></html>`, cpm.TitleTrim)

		assert.Equal(t, "B - Sum", meta.Title)
		assert.False(t, meta.HasContestTitle())
	})

	t.Run("reports each title independently", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		meta := p.ExtractMetadata(`<html><body><a class="contest-title">ARC 001</a></body></html>`, cpm.TitleTrim)

		assert.False(t, meta.HasTitle())
		assert.True(t, meta.HasContestTitle())
	})
}

func TestAtCoderParser_ListSubProblems(t *testing.T) {
	t.Parallel()

	t.Run("lists unique sorted task paths inside the main container", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		links, err := p.ListSubProblems(atcoderTaskListPage, "")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"/contests/abc086/tasks/abc086_a",
			"/contests/abc086/tasks/abc086_b",
			"/contests/abc086/tasks/abc086_c",
			"/contests/arc001/tasks/arc001_1",
		}, links)
	})

	t.Run("filters by base path", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		links, err := p.ListSubProblems(atcoderTaskListPage, "/contests/abc086/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"/contests/abc086/tasks/abc086_a",
			"/contests/abc086/tasks/abc086_b",
			"/contests/abc086/tasks/abc086_c",
		}, links)
	})

	t.Run("does not depend on link order", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()
		forward := `<div id="main-container"><a href="/contests/x/tasks/x_a">a</a><a href="/contests/x/tasks/x_b">b</a><a href="/contests/x/tasks/x_a">a</a></div>`
		reverse := `<div id="main-container"><a href="/contests/x/tasks/x_b">b</a><a href="/contests/x/tasks/x_a">a</a></div>`

		a, err := p.ListSubProblems(forward, "")
		require.NoError(t, err)
		b, err := p.ListSubProblems(reverse, "")
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.Len(t, a, 2)
	})

	t.Run("treats trailing slash and query spellings as one task", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()
		page := `<div id="main-container">
<a href="/contests/abc100/tasks/abc100_a">A</a>
<a href="/contests/abc100/tasks/abc100_a/">A</a>
<a href="https://atcoder.jp/contests/abc100/tasks/abc100_a?lang=en">A</a>
</div>`

		links, err := p.ListSubProblems(page, "/contests/abc100/")

		require.NoError(t, err)
		assert.Equal(t, []string{"/contests/abc100/tasks/abc100_a"}, links)
	})

	t.Run("returns empty list without container", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		links, err := p.ListSubProblems(`<html><body><a href="/contests/x/tasks/x_a">a</a></body></html>`, "")

		require.NoError(t, err)
		assert.Empty(t, links)
	})
}

func TestAtCoderParser_ExtractStatement(t *testing.T) {
	t.Parallel()

	p := goquery.NewAtCoderParser()

	stmt := p.ExtractStatement(atcoderTaskPage)

	assert.Contains(t, stmt, "AtCoDeer the deer")
	assert.NotContains(t, stmt, "二つの正整数")
}

func TestAtCoderParser_Extract(t *testing.T) {
	t.Parallel()

	t.Run("runs every lookup on one parse", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		e, err := p.Extract(atcoderTaskPage, cpm.ExtractOptions{TitlePolicy: cpm.TitleTrim})

		require.NoError(t, err)
		assert.Equal(t, "A - Product", e.Metadata.Title)
		assert.Len(t, e.Samples.Cases, 2)
		assert.Empty(t, e.Links)
		assert.NotEmpty(t, e.StatementHTML)
	})

	t.Run("lists links only when asked", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewAtCoderParser()

		e, err := p.Extract(atcoderTaskListPage, cpm.ExtractOptions{ListLinks: true, BasePath: "/contests/abc086/"})

		require.NoError(t, err)
		assert.Len(t, e.Links, 3)
	})
}

func TestCSRFToken(t *testing.T) {
	t.Parallel()

	t.Run("reads the token from the login form", func(t *testing.T) {
		t.Parallel()

		html := `<form action="/login" method="POST"><input type="hidden" name="csrf_token" value="abc+def="><input name="username"><input type="password" name="password"></form>`

		token, ok := goquery.CSRFToken(html)

		assert.True(t, ok)
		assert.Equal(t, "abc+def=", token)
		assert.True(t, goquery.HasLoginForm(html))
	})

	t.Run("reports a missing token", func(t *testing.T) {
		t.Parallel()

		_, ok := goquery.CSRFToken(`<html><body></body></html>`)

		assert.False(t, ok)
		assert.False(t, goquery.HasLoginForm(`<html><body></body></html>`))
	})
}
