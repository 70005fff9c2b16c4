package cpm

import (
	"context"
	"time"
)

// Problem is a downloaded judge problem.
type Problem struct {
	ID          string    `json:"id,omitempty"`
	URL         string    `json:"url"`
	Site        Site      `json:"site"`
	ContestName string    `json:"contestName"`
	ProblemName string    `json:"problemName"`
	Dir         string    `json:"dir,omitempty"`
	SampleCount int       `json:"sampleCount"`
	SamplesHash string    `json:"samplesHash"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Statement is the problem statement in Markdown. It is written next
	// to the samples but not indexed.
	Statement string `json:"-"`
}

// Validate returns an error if the problem contains invalid fields.
func (p *Problem) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "problem URL required")
	}
	if p.Site == SiteUnknown {
		return Errorf(EINVALID, "problem site required")
	}
	if p.ProblemName == "" {
		return Errorf(EINVALID, "problem name required")
	}
	return nil
}

// ProblemStore writes a problem and its samples to local storage.
type ProblemStore interface {
	// Save writes numbered sample files in the order of cases and a
	// metadata record. It sets problem.Dir to the directory written.
	Save(ctx context.Context, problem *Problem, cases []SampleCase) error
}

// ProblemService represents a service for managing the index of
// downloaded problems.
type ProblemService interface {
	// CreateProblem creates a new problem.
	CreateProblem(ctx context.Context, problem *Problem) error

	// FindProblemByURL retrieves a problem by its URL.
	// Returns ENOTFOUND if the problem does not exist.
	FindProblemByURL(ctx context.Context, url string) (*Problem, error)

	// FindProblems retrieves problems matching the filter.
	FindProblems(ctx context.Context, filter ProblemFilter) ([]*Problem, error)

	// UpdateProblem updates an existing problem.
	// Returns ENOTFOUND if the problem does not exist.
	UpdateProblem(ctx context.Context, id string, upd ProblemUpdate) (*Problem, error)

	// DeleteProblem permanently removes a problem from the index.
	// Returns ENOTFOUND if the problem does not exist.
	DeleteProblem(ctx context.Context, id string) error
}

// ProblemFilter represents a filter for FindProblems.
type ProblemFilter struct {
	Site        *Site   `json:"site"`
	ContestName *string `json:"contestName"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ProblemUpdate represents fields that can be updated on a problem.
type ProblemUpdate struct {
	ContestName *string `json:"contestName"`
	ProblemName *string `json:"problemName"`
	Dir         *string `json:"dir"`
	SampleCount *int    `json:"sampleCount"`
	SamplesHash *string `json:"samplesHash"`
}
