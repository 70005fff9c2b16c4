package mock

import (
	"context"

	"github.com/fwojciec/cpm"
)

var _ cpm.ProblemService = (*ProblemService)(nil)

// ProblemService is a mock implementation of cpm.ProblemService.
type ProblemService struct {
	CreateProblemFn    func(ctx context.Context, problem *cpm.Problem) error
	FindProblemByURLFn func(ctx context.Context, url string) (*cpm.Problem, error)
	FindProblemsFn     func(ctx context.Context, filter cpm.ProblemFilter) ([]*cpm.Problem, error)
	UpdateProblemFn    func(ctx context.Context, id string, upd cpm.ProblemUpdate) (*cpm.Problem, error)
	DeleteProblemFn    func(ctx context.Context, id string) error
}

func (s *ProblemService) CreateProblem(ctx context.Context, problem *cpm.Problem) error {
	return s.CreateProblemFn(ctx, problem)
}

func (s *ProblemService) FindProblemByURL(ctx context.Context, url string) (*cpm.Problem, error) {
	return s.FindProblemByURLFn(ctx, url)
}

func (s *ProblemService) FindProblems(ctx context.Context, filter cpm.ProblemFilter) ([]*cpm.Problem, error) {
	return s.FindProblemsFn(ctx, filter)
}

func (s *ProblemService) UpdateProblem(ctx context.Context, id string, upd cpm.ProblemUpdate) (*cpm.Problem, error) {
	return s.UpdateProblemFn(ctx, id, upd)
}

func (s *ProblemService) DeleteProblem(ctx context.Context, id string) error {
	return s.DeleteProblemFn(ctx, id)
}

var _ cpm.ProblemStore = (*ProblemStore)(nil)

// ProblemStore is a mock implementation of cpm.ProblemStore.
type ProblemStore struct {
	SaveFn func(ctx context.Context, problem *cpm.Problem, cases []cpm.SampleCase) error
}

func (s *ProblemStore) Save(ctx context.Context, problem *cpm.Problem, cases []cpm.SampleCase) error {
	return s.SaveFn(ctx, problem, cases)
}
