package pro

import (
	"context"
	"database/sql"
	"fmt"
)

// Store provides access to the job board database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the job board database at path.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, committing on success and
// rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// querier is the subset of database handles the scan helpers accept,
// so they work inside and outside transactions.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const jobColumns = `id, name, description, requirements, max_workers, auto_review,
	is_complete, is_archived, marked_for_review, created_by, created_at, completed_at`

func scanJob(row *sql.Row) (Job, error) {
	var job Job
	var createdBy sql.NullInt64
	var completedAt sql.NullTime
	err := row.Scan(
		&job.ID, &job.Name, &job.Description, &job.Requirements,
		&job.MaxWorkers, &job.AutoReview, &job.Complete, &job.Archived,
		&job.MarkedForReview, &createdBy, &job.CreatedAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return Job{}, ErrJobNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("scan job: %w", err)
	}
	job.CreatedBy = createdBy.Int64
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	return job, nil
}

func getJob(ctx context.Context, q querier, id int64) (Job, error) {
	return scanJob(q.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
}

func getWorker(ctx context.Context, q querier, id int64) (Worker, error) {
	var worker Worker
	err := q.QueryRowContext(ctx,
		`SELECT id, username, initials, role, created_at FROM workers WHERE id = ?`, id,
	).Scan(&worker.ID, &worker.Username, &worker.Initials, &worker.Role, &worker.CreatedAt)
	if err == sql.ErrNoRows {
		return Worker{}, ErrWorkerNotFound
	}
	if err != nil {
		return Worker{}, fmt.Errorf("scan worker: %w", err)
	}
	return worker, nil
}

func assignmentExists(ctx context.Context, q querier, jobID, workerID int64) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM job_assignments WHERE job_id = ? AND worker_id = ?`, jobID, workerID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return true, nil
}

func hasOpenEntry(ctx context.Context, q querier, jobID, workerID int64) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM time_entries WHERE job_id = ? AND worker_id = ? AND clock_out IS NULL`,
		jobID, workerID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check open entry: %w", err)
	}
	return true, nil
}
