package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/cpm"
)

// Ensure Store implements cpm.ProblemStore at compile time.
var _ cpm.ProblemStore = (*Store)(nil)

// Sidecar and statement file names inside a problem directory.
const (
	SidecarFile   = ".problem.json"
	StatementFile = "problem.md"
)

// Store implements cpm.ProblemStore. The problem directory is the user's
// workspace: the store only replaces its own files there, each through a
// temporary file, and leaves everything else untouched.
type Store struct {
	root string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewStore creates a Store that lays problems out under root.
func NewStore(root string) *Store {
	return &Store{root: root, Now: time.Now}
}

// Root returns the directory problems are stored under.
func (s *Store) Root() string { return s.root }

// Sidecar is the metadata record written next to the samples.
type Sidecar struct {
	URL         string    `json:"url"`
	Site        cpm.Site  `json:"site"`
	ContestName string    `json:"contestName"`
	ProblemName string    `json:"problemName"`
	SamplesHash string    `json:"samplesHash,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Save writes the samples, the sidecar and, when the problem carries one,
// the Markdown statement. It sets problem.Dir to the final directory.
func (s *Store) Save(ctx context.Context, problem *cpm.Problem, cases []cpm.SampleCase) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := problem.Validate(); err != nil {
		return err
	}

	rel, err := ProblemPath(problem)
	if err != nil {
		return err
	}
	dir := filepath.Join(s.root, rel)
	if err := s.write(dir, problem, cases); err != nil {
		return err
	}

	problem.Dir = dir
	return nil
}

func (s *Store) write(dir string, problem *cpm.Problem, cases []cpm.SampleCase) error {
	if err := WriteSamples(dir, cases); err != nil {
		return err
	}

	now := s.Now()
	created := problem.CreatedAt
	if created.IsZero() {
		created = now
	}
	data, err := json.Marshal(Sidecar{
		URL:         problem.URL,
		Site:        problem.Site,
		ContestName: problem.ContestName,
		ProblemName: problem.ProblemName,
		SamplesHash: problem.SamplesHash,
		CreatedAt:   created.UTC(),
	})
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, SidecarFile), data); err != nil {
		return err
	}

	if problem.Statement == "" {
		return nil
	}
	return writeFile(filepath.Join(dir, StatementFile), []byte(FormatStatement(problem, now)))
}

// ReadSidecar reads the metadata record of the problem stored in dir.
// Returns ENOTFOUND if dir holds no sidecar.
func ReadSidecar(dir string) (*Sidecar, error) {
	data, err := os.ReadFile(filepath.Join(dir, SidecarFile))
	if os.IsNotExist(err) {
		return nil, cpm.Errorf(cpm.ENOTFOUND, "no problem metadata in %s", dir)
	} else if err != nil {
		return nil, err
	}
	var sc Sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, cpm.Errorf(cpm.EINVALID, "invalid %s in %s: %v", SidecarFile, dir, err)
	}
	return &sc, nil
}
