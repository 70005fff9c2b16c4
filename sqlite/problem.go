package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/cpm"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cpm.ProblemService = (*ProblemService)(nil)

// ProblemService implements cpm.ProblemService using SQLite.
type ProblemService struct {
	db *DB
}

// NewProblemService creates a new ProblemService.
func NewProblemService(db *DB) *ProblemService {
	return &ProblemService{db: db}
}

const problemColumns = "id, url, site, contest_name, problem_name, dir, sample_count, samples_hash, created_at, updated_at"

// CreateProblem creates a new problem.
// Returns EINVALID if a problem with the same URL is already indexed.
func (s *ProblemService) CreateProblem(ctx context.Context, problem *cpm.Problem) error {
	if err := problem.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM problems WHERE url = ?", problem.URL).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return cpm.Errorf(cpm.EINVALID, "problem already indexed: %s", problem.URL)
	}

	problem.ID = uuid.New().String()
	now := time.Now().UTC()
	problem.CreatedAt = now
	problem.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO problems (`+problemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, problem.ID, problem.URL, string(problem.Site), problem.ContestName, problem.ProblemName,
		problem.Dir, problem.SampleCount, problem.SamplesHash,
		problem.CreatedAt.Format(time.RFC3339), problem.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindProblemByURL retrieves a problem by its URL.
func (s *ProblemService) FindProblemByURL(ctx context.Context, url string) (*cpm.Problem, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+problemColumns+" FROM problems WHERE url = ?", url)
	problem, err := scanProblem(row)
	if err == sql.ErrNoRows {
		return nil, cpm.Errorf(cpm.ENOTFOUND, "problem not found")
	}
	if err != nil {
		return nil, err
	}
	return problem, nil
}

// FindProblems retrieves problems matching the filter, grouped by judge and
// contest and ordered by problem name.
func (s *ProblemService) FindProblems(ctx context.Context, filter cpm.ProblemFilter) ([]*cpm.Problem, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + problemColumns + " FROM problems WHERE 1=1")

	if filter.Site != nil {
		query.WriteString(" AND site = ?")
		args = append(args, string(*filter.Site))
	}
	if filter.ContestName != nil {
		query.WriteString(" AND contest_name = ?")
		args = append(args, *filter.ContestName)
	}

	query.WriteString(" ORDER BY site, contest_name, problem_name")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	problems := []*cpm.Problem{}
	for rows.Next() {
		problem, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		problems = append(problems, problem)
	}

	return problems, rows.Err()
}

// UpdateProblem updates an existing problem.
func (s *ProblemService) UpdateProblem(ctx context.Context, id string, upd cpm.ProblemUpdate) (*cpm.Problem, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+problemColumns+" FROM problems WHERE id = ?", id)
	problem, err := scanProblem(row)
	if err == sql.ErrNoRows {
		return nil, cpm.Errorf(cpm.ENOTFOUND, "problem not found")
	}
	if err != nil {
		return nil, err
	}

	if upd.ContestName != nil {
		problem.ContestName = *upd.ContestName
	}
	if upd.ProblemName != nil {
		problem.ProblemName = *upd.ProblemName
	}
	if upd.Dir != nil {
		problem.Dir = *upd.Dir
	}
	if upd.SampleCount != nil {
		problem.SampleCount = *upd.SampleCount
	}
	if upd.SamplesHash != nil {
		problem.SamplesHash = *upd.SamplesHash
	}

	if err := problem.Validate(); err != nil {
		return nil, err
	}

	problem.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE problems
		SET contest_name = ?, problem_name = ?, dir = ?, sample_count = ?, samples_hash = ?, updated_at = ?
		WHERE id = ?
	`, problem.ContestName, problem.ProblemName, problem.Dir, problem.SampleCount, problem.SamplesHash,
		problem.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return problem, nil
}

// DeleteProblem permanently removes a problem from the index.
func (s *ProblemService) DeleteProblem(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM problems WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return cpm.Errorf(cpm.ENOTFOUND, "problem not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProblem(row scanner) (*cpm.Problem, error) {
	var problem cpm.Problem
	var site, createdAt, updatedAt string

	if err := row.Scan(&problem.ID, &problem.URL, &site, &problem.ContestName, &problem.ProblemName,
		&problem.Dir, &problem.SampleCount, &problem.SamplesHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	problem.Site = cpm.Site(site)

	var err error
	if problem.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if problem.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &problem, nil
}
