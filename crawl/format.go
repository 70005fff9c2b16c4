package crawl

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cpm"
)

// HashSamples returns a content hash of an ordered sample set. Each value
// is length-prefixed, so moving text between cases changes the hash.
func HashSamples(cases []cpm.SampleCase) string {
	d := xxhash.New()
	var n [8]byte
	write := func(s string) {
		binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
		_, _ = d.Write(n[:])
		_, _ = d.WriteString(s)
	}
	for _, c := range cases {
		write(c.Input)
		write(c.Output)
	}
	return fmt.Sprintf("%x", d.Sum64())
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}
