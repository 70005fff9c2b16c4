package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/crawl"
	"github.com/fwojciec/cpm/goquery"
	"github.com/fwojciec/cpm/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contestURL = "https://atcoder.jp/contests/abc086/tasks"

func taskPage(title, input, output string) string {
	return fmt.Sprintf(`<html><body>
<a class="contest-title" href="/contests/abc086">AtCoder Beginner Contest 086</a>
<div id="main-container"><span class="h2">%s</span>
<div id="task-statement"><span class="lang"><span class="lang-en">
<div class="part"><section><h3>Problem Statement</h3><p>Solve it.</p></section></div>
<div class="part"><section><h3>Sample Input 1</h3><pre>%s</pre></section></div>
<div class="part"><section><h3>Sample Output 1</h3><pre>%s</pre></section></div>
</span></span></div></div></body></html>`, title, input, output)
}

const taskListPage = `<html><body><div id="main-container"><table>
<tr><td><a href="/contests/abc086/tasks/abc086_b">B</a></td></tr>
<tr><td><a href="/contests/abc086/tasks/abc086_a">A</a></td></tr>
<tr><td><a href="/contests/abc086/tasks/abc086_a#top">A again</a></td></tr>
<tr><td><a href="/contests/abc086/submissions">Submissions</a></td></tr>
</table></div></body></html>`

// site is an in-memory judge serving fixed pages.
type site map[string]string

func (s site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := s[url]
			if !ok {
				return "", cpm.Errorf(cpm.ENOTFOUND, "HTTP 404 for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

// index is an in-memory problem index.
type index struct {
	mu       sync.Mutex
	problems map[string]*cpm.Problem
}

func newIndex() *index {
	return &index{problems: make(map[string]*cpm.Problem)}
}

func (ix *index) service() *mock.ProblemService {
	return &mock.ProblemService{
		CreateProblemFn: func(_ context.Context, p *cpm.Problem) error {
			ix.mu.Lock()
			defer ix.mu.Unlock()
			p.ID = "id-" + p.URL
			cp := *p
			ix.problems[p.URL] = &cp
			return nil
		},
		FindProblemByURLFn: func(_ context.Context, url string) (*cpm.Problem, error) {
			ix.mu.Lock()
			defer ix.mu.Unlock()
			p, ok := ix.problems[url]
			if !ok {
				return nil, cpm.Errorf(cpm.ENOTFOUND, "problem not found")
			}
			cp := *p
			return &cp, nil
		},
		UpdateProblemFn: func(_ context.Context, id string, upd cpm.ProblemUpdate) (*cpm.Problem, error) {
			ix.mu.Lock()
			defer ix.mu.Unlock()
			for _, p := range ix.problems {
				if p.ID == id {
					p.SamplesHash = *upd.SamplesHash
					p.SampleCount = *upd.SampleCount
					p.Dir = *upd.Dir
					cp := *p
					return &cp, nil
				}
			}
			return nil, cpm.Errorf(cpm.ENOTFOUND, "problem not found")
		},
	}
}

// store records saved problems and writes nothing.
type store struct {
	mu    sync.Mutex
	saved map[string][]cpm.SampleCase
	dir   string
}

func (s *store) mock() *mock.ProblemStore {
	return &mock.ProblemStore{
		SaveFn: func(ctx context.Context, p *cpm.Problem, cases []cpm.SampleCase) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			s.saved[p.URL] = cases
			p.Dir = s.dir
			return nil
		},
	}
}

func newTestCrawler(t *testing.T, pages site) (*crawl.Crawler, *store, *index) {
	t.Helper()
	st := &store{saved: make(map[string][]cpm.SampleCase), dir: t.TempDir()}
	ix := newIndex()
	c := &crawl.Crawler{
		Parsers:     goquery.NewDefaultRegistry(),
		Fetcher:     pages.fetcher(),
		Store:       st.mock(),
		Problems:    ix.service(),
		Concurrency: 2,
		RetryDelays: []time.Duration{0}, // no delay for tests
	}
	return c, st, ix
}

func TestCrawler_Get(t *testing.T) {
	t.Parallel()

	t.Run("downloads a single problem", func(t *testing.T) {
		t.Parallel()

		url := "https://atcoder.jp/contests/abc086/tasks/abc086_a"
		c, st, ix := newTestCrawler(t, site{url: taskPage("A - Product", "3 4", "Even")})

		result, err := c.Get(context.Background(), url, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Cases)
		assert.Equal(t, []cpm.SampleCase{{Input: "3 4", Output: "Even"}}, st.saved[url])

		p := ix.problems[url]
		require.NotNil(t, p)
		assert.Equal(t, "A - Product", p.ProblemName)
		assert.Equal(t, "AtCoder Beginner Contest 086", p.ContestName)
		assert.Equal(t, cpm.SiteAtCoder, p.Site)
		assert.Equal(t, 1, p.SampleCount)
		assert.Equal(t, crawl.HashSamples(st.saved[url]), p.SamplesHash)
	})

	t.Run("downloads every problem listed by a contest", func(t *testing.T) {
		t.Parallel()

		c, st, _ := newTestCrawler(t, site{
			contestURL: taskListPage,
			"https://atcoder.jp/contests/abc086/tasks/abc086_a": taskPage("A - Product", "3 4", "Even"),
			"https://atcoder.jp/contests/abc086/tasks/abc086_b": taskPage("B - 1 21", "1 21", "Yes"),
		})

		result, err := c.Get(context.Background(), contestURL, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 0, result.Failed)
		assert.Len(t, st.saved, 2)
		assert.Equal(t, []cpm.SampleCase{{Input: "1 21", Output: "Yes"}}, st.saved["https://atcoder.jp/contests/abc086/tasks/abc086_b"])
	})

	t.Run("skips problems whose samples did not change", func(t *testing.T) {
		t.Parallel()

		url := "https://atcoder.jp/contests/abc086/tasks/abc086_a"
		c, _, _ := newTestCrawler(t, site{url: taskPage("A - Product", "3 4", "Even")})

		first, err := c.Get(context.Background(), url, nil)
		require.NoError(t, err)
		require.Equal(t, 1, first.Saved)

		second, err := c.Get(context.Background(), url, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, second.Saved)
		assert.Equal(t, 1, second.Unchanged)
	})

	t.Run("saves again when forced or when samples changed", func(t *testing.T) {
		t.Parallel()

		url := "https://atcoder.jp/contests/abc086/tasks/abc086_a"
		pages := site{url: taskPage("A - Product", "3 4", "Even")}
		c, st, ix := newTestCrawler(t, pages)

		_, err := c.Get(context.Background(), url, nil)
		require.NoError(t, err)

		pages[url] = taskPage("A - Product", "3 4", "Odd")
		result, err := c.Get(context.Background(), url, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, []cpm.SampleCase{{Input: "3 4", Output: "Odd"}}, st.saved[url])
		assert.Equal(t, crawl.HashSamples(st.saved[url]), ix.problems[url].SamplesHash)

		c.Force = true
		result, err = c.Get(context.Background(), url, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
	})

	t.Run("counts problems without samples", func(t *testing.T) {
		t.Parallel()

		url := "https://atcoder.jp/contests/abc086/tasks/abc086_a"
		c, st, _ := newTestCrawler(t, site{url: `<html><body><div id="main-container"><span class="h2">A - Product</span></div></body></html>`})

		result, err := c.Get(context.Background(), url, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.NoSamples)
		assert.Empty(t, st.saved)
	})

	t.Run("counts failed pages and continues", func(t *testing.T) {
		t.Parallel()

		c, _, _ := newTestCrawler(t, site{
			contestURL: taskListPage,
			"https://atcoder.jp/contests/abc086/tasks/abc086_a": taskPage("A - Product", "3 4", "Even"),
		})

		var failed []string
		result, err := c.Get(context.Background(), contestURL, func(ev crawl.ProgressEvent) {
			if ev.Type == crawl.ProgressFailed {
				failed = append(failed, ev.URL)
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, []string{"https://atcoder.jp/contests/abc086/tasks/abc086_b"}, failed)
	})

	t.Run("reports progress events in order", func(t *testing.T) {
		t.Parallel()

		url := "https://atcoder.jp/contests/abc086/tasks/abc086_a"
		c, _, _ := newTestCrawler(t, site{url: taskPage("A - Product", "3 4", "Even")})

		var types []crawl.ProgressType
		_, err := c.Get(context.Background(), url, func(ev crawl.ProgressEvent) {
			types = append(types, ev.Type)
		})

		require.NoError(t, err)
		assert.Equal(t, []crawl.ProgressType{crawl.ProgressStarted, crawl.ProgressSaved, crawl.ProgressFinished}, types)
	})

	t.Run("rejects unsupported URLs", func(t *testing.T) {
		t.Parallel()

		c, _, _ := newTestCrawler(t, site{})

		_, err := c.Get(context.Background(), "https://example.com/contest/1", nil)

		assert.Equal(t, cpm.EINVALID, cpm.ErrorCode(err))
	})

	t.Run("converts statements when a converter is set", func(t *testing.T) {
		t.Parallel()

		url := "https://atcoder.jp/contests/abc086/tasks/abc086_a"
		c, _, _ := newTestCrawler(t, site{url: taskPage("A - Product", "3 4", "Even")})
		var statement string
		c.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				statement = html
				return "converted", nil
			},
		}
		var saved *cpm.Problem
		c.Store = &mock.ProblemStore{
			SaveFn: func(_ context.Context, p *cpm.Problem, _ []cpm.SampleCase) error {
				saved = p
				return nil
			},
		}
		c.Problems = nil

		_, err := c.Get(context.Background(), url, nil)

		require.NoError(t, err)
		assert.Contains(t, statement, "Solve it.")
		require.NotNil(t, saved)
		assert.Equal(t, "converted", saved.Statement)
	})
}

func TestCrawler_Get_Concurrency(t *testing.T) {
	t.Parallel()

	const numProblems = 8
	const concurrency = 3

	pages := site{}
	list := `<html><body><div id="main-container">`
	for i := range numProblems {
		url := fmt.Sprintf("https://atcoder.jp/contests/abc086/tasks/abc086_%d", i)
		pages[url] = taskPage(fmt.Sprintf("P%d", i), fmt.Sprint(i), fmt.Sprint(i*i))
		list += fmt.Sprintf(`<a href="/contests/abc086/tasks/abc086_%d">%d</a>`, i, i)
	}
	pages[contestURL] = list + `</div></body></html>`

	var current, maxConcurrent atomic.Int32
	c, _, _ := newTestCrawler(t, pages)
	c.Concurrency = concurrency
	c.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			n := current.Add(1)
			for {
				m := maxConcurrent.Load()
				if n <= m || maxConcurrent.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(30 * time.Millisecond)
			current.Add(-1)
			return pages[url], nil
		},
	}

	result, err := c.Get(context.Background(), contestURL, nil)

	require.NoError(t, err)
	assert.Equal(t, numProblems, result.Saved)
	assert.Greater(t, maxConcurrent.Load(), int32(1), "pages should be fetched in parallel")
	assert.LessOrEqual(t, maxConcurrent.Load(), int32(concurrency))
}

func TestCrawler_Get_MaxPages(t *testing.T) {
	t.Parallel()

	c, st, _ := newTestCrawler(t, site{
		contestURL: taskListPage,
		"https://atcoder.jp/contests/abc086/tasks/abc086_a": taskPage("A", "1", "1"),
		"https://atcoder.jp/contests/abc086/tasks/abc086_b": taskPage("B", "2", "2"),
	})
	c.MaxPages = 2

	result, err := c.Get(context.Background(), contestURL, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	assert.Contains(t, st.saved, "https://atcoder.jp/contests/abc086/tasks/abc086_a", "pages are visited in URL order")
}

func TestCrawler_Get_RateLimits(t *testing.T) {
	t.Parallel()

	url := "https://atcoder.jp/contests/abc086/tasks/abc086_a"
	c, _, _ := newTestCrawler(t, site{url: taskPage("A", "1", "1")})
	var hosts []string
	c.RateLimiter = &mock.DomainLimiter{
		WaitFn: func(_ context.Context, host string) error {
			hosts = append(hosts, host)
			return nil
		},
	}

	_, err := c.Get(context.Background(), url, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"atcoder.jp"}, hosts)
}

func TestCrawler_Get_Canceled(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestCrawler(t, site{contestURL: taskListPage})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, contestURL, nil)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCrawler_Discover(t *testing.T) {
	t.Parallel()

	t.Run("lists problems of a contest", func(t *testing.T) {
		t.Parallel()

		c, _, _ := newTestCrawler(t, site{contestURL: taskListPage})

		urls, err := c.Discover(context.Background(), contestURL)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://atcoder.jp/contests/abc086/tasks/abc086_a",
			"https://atcoder.jp/contests/abc086/tasks/abc086_b",
		}, urls)
	})

	t.Run("returns a problem URL without fetching", func(t *testing.T) {
		t.Parallel()

		c, _, _ := newTestCrawler(t, site{})
		url := "https://codeforces.com/contest/4/problem/A"

		urls, err := c.Discover(context.Background(), url)

		require.NoError(t, err)
		assert.Equal(t, []string{url}, urls)
	})
}
