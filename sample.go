package cpm

import "fmt"

// SampleCase is one sample test case of a problem. The position of a case in
// a slice is significant: sample files are numbered from it.
type SampleCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Binding maps the named capture slots of a structural template to the text
// captured by one match.
type Binding map[string]string

// Sample block types carried by the type slot of combined templates.
const (
	BlockInput  = "Input"
	BlockOutput = "Output"
)

// Capture is a single sample block value found on a page.
type Capture struct {
	// ID is the sample number printed in the block heading, if any.
	ID string

	// Value is the block content.
	Value string

	// Section is the language section the block was found in
	// (e.g., "ja", "en"). Empty when the page is not split by language.
	Section string
}

// SampleResult is the outcome of sample extraction for one page.
type SampleResult struct {
	// Cases is never nil. An empty slice means the page has no
	// recognizable samples, which is a valid outcome.
	Cases []SampleCase

	// Layout names the layout that produced Cases.
	// Empty when every known layout was tried without result.
	Layout string

	// Violations lists matched blocks that were skipped because their
	// type label was not recognized.
	Violations []*FormatViolation
}

// FormatViolation reports a matched sample block whose type label is outside
// the recognized set. The block is skipped; extraction continues.
type FormatViolation struct {
	Layout string
	Type   string
	ID     string
	Value  string
}

// Error implements the error interface.
func (v *FormatViolation) Error() string {
	return fmt.Sprintf("layout %s: unrecognized sample block type %q (id %q)", v.Layout, v.Type, v.ID)
}

// PairByPosition zips inputs and outputs in encounter order. The result is
// truncated to the shorter sequence; an input without an output is dropped.
func PairByPosition(inputs, outputs []Capture) []SampleCase {
	n := min(len(inputs), len(outputs))
	cases := make([]SampleCase, 0, n)
	for i := 0; i < n; i++ {
		cases = append(cases, SampleCase{Input: inputs[i].Value, Output: outputs[i].Value})
	}
	return cases
}

// PairByID pairs inputs and outputs by sample id.
//
// Inputs keep their first-seen id order; a repeated input id is ignored.
// Outputs form an ordered lookup keyed by id where the first value wins.
// An input whose id has no output is paired with the empty string, so the
// number of cases always equals the number of distinct input ids.
func PairByID(inputs, outputs []Capture) []SampleCase {
	lookup := make(map[string]string, len(outputs))
	for _, out := range outputs {
		if _, ok := lookup[out.ID]; !ok {
			lookup[out.ID] = out.Value
		}
	}

	seen := make(map[string]bool, len(inputs))
	cases := make([]SampleCase, 0, len(inputs))
	for _, in := range inputs {
		if seen[in.ID] {
			continue
		}
		seen[in.ID] = true
		cases = append(cases, SampleCase{Input: in.Value, Output: lookup[in.ID]})
	}
	return cases
}

// DedupeSections collapses blocks that bilingual pages render once per
// language section. A capture is dropped when an identical value was already
// captured in a different language section. Repeats within one section are
// kept, since distinct samples may legitimately share a value.
func DedupeSections(captures []Capture) []Capture {
	// value -> sections it was seen in
	seen := make(map[string]map[string]bool, len(captures))
	result := make([]Capture, 0, len(captures))
	for _, c := range captures {
		sections := seen[c.Value]
		if sections != nil && otherSection(sections, c.Section) {
			continue
		}
		if sections == nil {
			sections = make(map[string]bool)
			seen[c.Value] = sections
		}
		sections[c.Section] = true
		result = append(result, c)
	}
	return result
}

func otherSection(sections map[string]bool, section string) bool {
	for s := range sections {
		if s != section {
			return true
		}
	}
	return false
}
