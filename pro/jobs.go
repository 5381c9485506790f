package pro

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// CreateJobOptions configures a new job.
type CreateJobOptions struct {
	Name         string
	Description  string
	Requirements string

	// MaxWorkers defaults to 1 when zero.
	MaxWorkers int

	// AutoReview is fixed for the life of the job.
	AutoReview bool
}

// UpdateJobOptions specifies job fields to update. Nil fields are
// unchanged. AutoReview is intentionally absent.
type UpdateJobOptions struct {
	Name         *string
	Description  *string
	Requirements *string
	MaxWorkers   *int
}

func validateJobName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyJobName
	}
	if len(name) > MaxJobNameLength {
		return fmt.Errorf("%w: %d > %d", ErrJobNameTooLong, len(name), MaxJobNameLength)
	}
	return nil
}

// CreateJob posts a new job. Admin only.
func (s *Store) CreateJob(ctx context.Context, actor Worker, opts CreateJobOptions) (Job, error) {
	if !actor.IsAdmin() {
		return Job{}, ErrForbidden
	}
	if err := validateJobName(opts.Name); err != nil {
		return Job{}, err
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers == 0 {
		maxWorkers = 1
	}
	if maxWorkers < 1 {
		return Job{}, fmt.Errorf("%w: %d", ErrInvalidMaxWorkers, maxWorkers)
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (name, description, requirements, max_workers, auto_review, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		opts.Name, opts.Description, opts.Requirements, maxWorkers, opts.AutoReview, actor.ID, now,
	)
	if err != nil {
		return Job{}, fmt.Errorf("insert job: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Job{}, fmt.Errorf("job id: %w", err)
	}

	return Job{
		ID:           id,
		Name:         opts.Name,
		Description:  opts.Description,
		Requirements: opts.Requirements,
		MaxWorkers:   maxWorkers,
		AutoReview:   opts.AutoReview,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
	}, nil
}

// GetJob returns the full board view of a job.
func (s *Store) GetJob(ctx context.Context, id int64) (JobView, error) {
	var view JobView
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		view, err = buildJobView(ctx, tx, id)
		return err
	})
	if err != nil {
		return JobView{}, err
	}
	return view, nil
}

// UpdateJob modifies a job's fields. Admin only; nil options are
// unchanged.
func (s *Store) UpdateJob(ctx context.Context, actor Worker, id int64, opts UpdateJobOptions) (JobView, error) {
	if !actor.IsAdmin() {
		return JobView{}, ErrForbidden
	}

	var view JobView
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		job, err := getJob(ctx, tx, id)
		if err != nil {
			return err
		}

		if opts.Name != nil {
			if err := validateJobName(*opts.Name); err != nil {
				return err
			}
			job.Name = *opts.Name
		}
		if opts.Description != nil {
			job.Description = *opts.Description
		}
		if opts.Requirements != nil {
			job.Requirements = *opts.Requirements
		}
		if opts.MaxWorkers != nil {
			if *opts.MaxWorkers < 1 {
				return fmt.Errorf("%w: %d", ErrInvalidMaxWorkers, *opts.MaxWorkers)
			}
			job.MaxWorkers = *opts.MaxWorkers
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE jobs SET name = ?, description = ?, requirements = ?, max_workers = ? WHERE id = ?`,
			job.Name, job.Description, job.Requirements, job.MaxWorkers, id,
		)
		if err != nil {
			return fmt.Errorf("update job: %w", err)
		}

		view, err = buildJobView(ctx, tx, id)
		return err
	})
	if err != nil {
		return JobView{}, err
	}
	return view, nil
}

// DeleteJob removes a job along with its assignments and time entries.
// Admin only.
func (s *Store) DeleteJob(ctx context.Context, actor Worker, id int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getJob(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM time_entries WHERE job_id = ?`, id); err != nil {
			return fmt.Errorf("delete time entries: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM job_assignments WHERE job_id = ?`, id); err != nil {
			return fmt.Errorf("delete assignments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete job: %w", err)
		}
		return nil
	})
}

// ListJobs returns the board: non-archived jobs, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]JobView, error) {
	return s.listJobViews(ctx,
		`SELECT id FROM jobs WHERE is_archived = 0 ORDER BY created_at DESC, id DESC`)
}

// ListArchivedJobs returns archived jobs, most recently completed first.
func (s *Store) ListArchivedJobs(ctx context.Context) ([]JobView, error) {
	return s.listJobViews(ctx,
		`SELECT id FROM jobs WHERE is_archived = 1 ORDER BY completed_at DESC, id DESC`)
}

func (s *Store) listJobViews(ctx context.Context, query string) ([]JobView, error) {
	var views []JobView
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		var jobIDs []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("scan job id: %w", err)
			}
			jobIDs = append(jobIDs, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, id := range jobIDs {
			view, err := buildJobView(ctx, tx, id)
			if err != nil {
				return err
			}
			views = append(views, view)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

// buildJobView assembles a job's board state: assignments with
// clocked-in flags and the running time total.
func buildJobView(ctx context.Context, q querier, jobID int64) (JobView, error) {
	job, err := getJob(ctx, q, jobID)
	if err != nil {
		return JobView{}, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT a.id, a.worker_id, w.username, w.initials, a.assigned_by, a.assigned_at,
			EXISTS (
				SELECT 1 FROM time_entries e
				WHERE e.job_id = a.job_id AND e.worker_id = a.worker_id AND e.clock_out IS NULL
			)
		FROM job_assignments a
		JOIN workers w ON w.id = a.worker_id
		WHERE a.job_id = ?
		ORDER BY a.assigned_at, a.id`, jobID)
	if err != nil {
		return JobView{}, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	assignments := []Assignment{}
	for rows.Next() {
		a := Assignment{JobID: jobID}
		var assignedBy sql.NullInt64
		if err := rows.Scan(&a.ID, &a.WorkerID, &a.Username, &a.Initials, &assignedBy, &a.AssignedAt, &a.ClockedIn); err != nil {
			return JobView{}, fmt.Errorf("scan assignment: %w", err)
		}
		a.AssignedBy = assignedBy.Int64
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return JobView{}, err
	}

	total, err := jobTotalSeconds(ctx, q, jobID, time.Now().UTC())
	if err != nil {
		return JobView{}, err
	}

	return JobView{
		Job:              job,
		CurrentWorkers:   len(assignments),
		Assignments:      assignments,
		TotalTimeSeconds: total,
	}, nil
}

// jobTotalSeconds sums all time entries for a job. Open entries count
// up to now.
func jobTotalSeconds(ctx context.Context, q querier, jobID int64, now time.Time) (int64, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT clock_in, clock_out FROM time_entries WHERE job_id = ?`, jobID)
	if err != nil {
		return 0, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	var total time.Duration
	for rows.Next() {
		var clockIn time.Time
		var clockOut sql.NullTime
		if err := rows.Scan(&clockIn, &clockOut); err != nil {
			return 0, fmt.Errorf("scan time entry: %w", err)
		}
		end := now
		if clockOut.Valid {
			end = clockOut.Time
		}
		if end.After(clockIn) {
			total += end.Sub(clockIn)
		}
	}
	return int64(total.Seconds()), rows.Err()
}
