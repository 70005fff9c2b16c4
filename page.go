package cpm

import (
	"net/url"
	"slices"
	"strings"
)

// PageKind classifies a judge URL.
type PageKind int

// Page kinds.
const (
	PageUnknown PageKind = iota
	PageProblem
	PageContest
)

// String returns the kind name used in logs.
func (k PageKind) String() string {
	switch k {
	case PageProblem:
		return "problem"
	case PageContest:
		return "contest"
	}
	return "unknown"
}

// PathShape is a URL path pattern split into segments.
// An empty segment matches any non-empty path segment; other segments
// must match literally.
type PathShape []string

// Match reports whether path has exactly the shape's segments.
// Leading and trailing slashes are ignored.
func (s PathShape) Match(path string) bool {
	segs := PathSegments(path)
	if len(segs) != len(s) {
		return false
	}
	for i, want := range s {
		if segs[i] == "" {
			return false
		}
		if want != "" && segs[i] != want {
			return false
		}
	}
	return true
}

// PathSegments splits a URL path into its segments, ignoring leading and
// trailing slashes.
func PathSegments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Path shapes of judge pages.
var (
	AtCoderTaskListShape = PathShape{"contests", "", "tasks"}
	AtCoderTaskShape     = PathShape{"contests", "", "tasks", ""}

	CodeforcesContestShape    = PathShape{"contest", ""}
	CodeforcesProblemShape    = PathShape{"contest", "", "problem", ""}
	CodeforcesGymShape        = PathShape{"gym", ""}
	CodeforcesGymProblemShape = PathShape{"gym", "", "problem", ""}
	CodeforcesProblemsetShape = PathShape{"problemset", "problem", "", ""}
)

// PageRef is a classified judge URL.
type PageRef struct {
	URL     *url.URL
	Site    Site
	Kind    PageKind
	Contest string
	Problem string
}

// BasePath returns the path prefix shared by the contest's problem URLs.
func (r *PageRef) BasePath() string {
	segs := PathSegments(r.URL.Path)
	switch r.Site {
	case SiteAtCoder:
		return "/contests/" + r.Contest + "/"
	case SiteCodeforces:
		if len(segs) > 0 && segs[0] == "gym" {
			return "/gym/" + r.Contest + "/"
		}
		return "/contest/" + r.Contest + "/"
	}
	return "/"
}

// ClassifyURL determines the judge and page kind of rawURL.
// Returns EINVALID for unparsable URLs and unsupported hosts. Supported
// hosts with unrecognized paths yield PageUnknown without error.
func ClassifyURL(rawURL string) (*PageRef, error) {
	u, site, err := parseURL(rawURL)
	if err != nil {
		return nil, err
	}

	ref := &PageRef{URL: u, Site: site, Kind: PageUnknown}
	segs := PathSegments(u.Path)

	switch site {
	case SiteAtCoder:
		switch {
		case AtCoderTaskListShape.Match(u.Path):
			ref.Kind, ref.Contest = PageContest, segs[1]
		case AtCoderTaskShape.Match(u.Path):
			ref.Kind, ref.Contest, ref.Problem = PageProblem, segs[1], segs[3]
		}
	case SiteCodeforces:
		switch {
		case CodeforcesContestShape.Match(u.Path), CodeforcesGymShape.Match(u.Path):
			ref.Kind, ref.Contest = PageContest, segs[1]
		case CodeforcesProblemShape.Match(u.Path), CodeforcesGymProblemShape.Match(u.Path):
			ref.Kind, ref.Contest, ref.Problem = PageProblem, segs[1], segs[3]
		case CodeforcesProblemsetShape.Match(u.Path):
			ref.Kind, ref.Contest, ref.Problem = PageProblem, segs[2], segs[3]
		}
	}

	return ref, nil
}

// CanonicalLinks returns the unique links in ascending order.
// The result does not depend on the order of the input.
func CanonicalLinks(links []string) []string {
	seen := make(map[string]bool, len(links))
	result := make([]string, 0, len(links))
	for _, l := range links {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		result = append(result, l)
	}
	slices.Sort(result)
	return result
}
