package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/cpm/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Page not yet added should return false
	assert.False(t, f.Test("https://atcoder.jp/contests/abc086/tasks/abc086_a"))

	f.Add("https://atcoder.jp/contests/abc086/tasks/abc086_a")

	assert.True(t, f.Test("https://atcoder.jp/contests/abc086/tasks/abc086_a"))

	// Different page should still return false
	assert.False(t, f.Test("https://atcoder.jp/contests/abc086/tasks/abc086_b"))
}

func TestFilter_Visit(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.True(t, f.Visit("https://codeforces.com/contest/4/problem/A"), "first visit")
	assert.False(t, f.Visit("https://codeforces.com/contest/4/problem/A"), "second visit")
	assert.True(t, f.Visit("https://codeforces.com/contest/4/problem/B"))
}

func TestKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
	}{
		{
			name: "fragment",
			a:    "https://atcoder.jp/contests/abc086/tasks/abc086_a",
			b:    "https://atcoder.jp/contests/abc086/tasks/abc086_a#sample",
		},
		{
			name: "query",
			a:    "https://atcoder.jp/contests/abc086/tasks/abc086_a",
			b:    "https://atcoder.jp/contests/abc086/tasks/abc086_a?lang=en",
		},
		{
			name: "trailing slash",
			a:    "https://codeforces.com/contest/4",
			b:    "https://codeforces.com/contest/4/",
		},
		{
			name: "mirror host",
			a:    "https://codeforces.com/contest/4/problem/A",
			b:    "https://m1.codeforces.com/contest/4/problem/A",
		},
		{
			name: "scheme",
			a:    "http://atcoder.jp/contests/abc086/tasks",
			b:    "https://atcoder.jp/contests/abc086/tasks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, bloom.Key(tt.a), bloom.Key(tt.b))

			f := bloom.NewFilter(100, 0.01)
			f.Add(tt.a)
			assert.True(t, f.Test(tt.b))
		})
	}
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://atcoder.jp/contests/abc086/tasks/abc086_a")
	f.Add("https://atcoder.jp/contests/abc086/tasks/abc086_b")
	f.Add("https://atcoder.jp/contests/abc086/tasks/abc086_c")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("https://codeforces.com/contest/%d/problem/A", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://codeforces.com/gym/%d/problem/A", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
