// Package fs provides file-based storage for downloaded problems.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/cpm"
)

// Sample file names. n is 1-indexed and follows the order of the cases.
const (
	inputFileFormat  = "sample_input_%d.txt"
	outputFileFormat = "sample_output_%d.txt"
)

var sampleFileRe = regexp.MustCompile(`^sample_(input|output)_(\d+)\.txt$`)

// InputFileName returns the name of the n-th sample input file.
func InputFileName(n int) string { return fmt.Sprintf(inputFileFormat, n) }

// OutputFileName returns the name of the n-th sample output file.
func OutputFileName(n int) string { return fmt.Sprintf(outputFileFormat, n) }

// SanitizeName makes a title usable as a single path segment.
// Whitespace is removed and slashes become backslashes.
func SanitizeName(s string) string {
	s = cpm.NormalizeTitle(s, cpm.TitleCompact)
	return strings.ReplaceAll(s, "/", `\`)
}

// sanitizeProblemName additionally replaces dots and drops asterisks,
// which problem titles such as "A. Watermelon" or "C*" carry.
func sanitizeProblemName(s string) string {
	s = SanitizeName(s)
	s = strings.ReplaceAll(s, ".", "_")
	return strings.ReplaceAll(s, "*", "")
}

// ProblemPath returns the directory of a problem relative to the store
// root: {site}/{contest}/{problem}. A missing contest name falls back to
// the contest id in the problem URL.
func ProblemPath(problem *cpm.Problem) (string, error) {
	contest := SanitizeName(problem.ContestName)
	if contest == "" {
		ref, err := cpm.ClassifyURL(problem.URL)
		if err != nil {
			return "", err
		}
		contest = SanitizeName(ref.Contest)
	}
	name := sanitizeProblemName(problem.ProblemName)
	if contest == "" || name == "" {
		return "", cpm.Errorf(cpm.EINVALID, "cannot name directory for %s", problem.URL)
	}
	for _, seg := range []string{contest, name} {
		if seg == "." || seg == ".." {
			return "", cpm.Errorf(cpm.EINVALID, "path traversal in problem name %q", seg)
		}
	}
	return filepath.Join(string(problem.Site), contest, name), nil
}

// WriteSamples writes numbered sample files for cases into dir, creating
// dir if needed. Sample files left over from an earlier, longer set are
// removed.
func WriteSamples(dir string, cases []cpm.SampleCase) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for i, c := range cases {
		if err := writeFile(filepath.Join(dir, InputFileName(i+1)), []byte(c.Input)); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(dir, OutputFileName(i+1)), []byte(c.Output)); err != nil {
			return err
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		m := sampleFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, _ := strconv.Atoi(m[2]); n > len(cases) {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeFile replaces path with data through a hidden temporary file in
// the same directory, so readers never see a partial file.
func writeFile(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// ReadSamples reads the numbered sample files in dir in numeric order.
// Inputs without a matching output file are skipped.
func ReadSamples(dir string) ([]cpm.SampleCase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	inputs := make(map[int]bool)
	outputs := make(map[int]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := sampleFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if m[1] == "input" {
			inputs[n] = true
		} else {
			outputs[n] = true
		}
	}

	nums := make([]int, 0, len(inputs))
	for n := range inputs {
		if outputs[n] {
			nums = append(nums, n)
		}
	}
	slices.Sort(nums)

	cases := make([]cpm.SampleCase, 0, len(nums))
	for _, n := range nums {
		in, err := os.ReadFile(filepath.Join(dir, InputFileName(n)))
		if err != nil {
			return nil, err
		}
		out, err := os.ReadFile(filepath.Join(dir, OutputFileName(n)))
		if err != nil {
			return nil, err
		}
		cases = append(cases, cpm.SampleCase{Input: string(in), Output: string(out)})
	}
	return cases, nil
}

// FormatStatement formats a Markdown statement with YAML frontmatter.
func FormatStatement(problem *cpm.Problem, downloaded time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(problem.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(problem.ProblemName)
	b.WriteString("\ncontest: ")
	b.WriteString(problem.ContestName)
	b.WriteString("\ndownloaded: ")
	b.WriteString(downloaded.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(problem.Statement)
	return b.String()
}
