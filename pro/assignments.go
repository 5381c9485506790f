package pro

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Join adds the actor to a job's assignment list. The capacity check
// and the insert share a transaction, so concurrent joins on the last
// slot can't both succeed.
func (s *Store) Join(ctx context.Context, actor Worker, jobID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return addAssignment(ctx, tx, jobID, actor.ID, actor.ID, true)
	})
}

// Assign puts another worker on a job. Admin only. Unlike Join, the
// worker cap is not enforced: an admin can overstaff a job on purpose.
func (s *Store) Assign(ctx context.Context, actor Worker, jobID, workerID int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getWorker(ctx, tx, workerID); err != nil {
			return err
		}
		return addAssignment(ctx, tx, jobID, workerID, actor.ID, false)
	})
}

func addAssignment(ctx context.Context, tx *sql.Tx, jobID, workerID, assignedBy int64, enforceCap bool) error {
	job, err := getJob(ctx, tx, jobID)
	if err != nil {
		return err
	}
	if !job.Open() {
		return fmt.Errorf("%w: %s", ErrJobClosed, job.Name)
	}

	assigned, err := assignmentExists(ctx, tx, jobID, workerID)
	if err != nil {
		return err
	}
	if assigned {
		return ErrAlreadyAssigned
	}

	if enforceCap {
		var count int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM job_assignments WHERE job_id = ?`, jobID,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("count assignments: %w", err)
		}
		if count >= job.MaxWorkers {
			return fmt.Errorf("%w: %s", ErrJobFull, job.Name)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO job_assignments (job_id, worker_id, assigned_by, assigned_at) VALUES (?, ?, ?, ?)`,
		jobID, workerID, assignedBy, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// Leave removes the actor from a job's assignment list. The actor must
// be clocked out first.
func (s *Store) Leave(ctx context.Context, actor Worker, jobID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		assigned, err := assignmentExists(ctx, tx, jobID, actor.ID)
		if err != nil {
			return err
		}
		if !assigned {
			return ErrNotAssigned
		}

		clockedIn, err := hasOpenEntry(ctx, tx, jobID, actor.ID)
		if err != nil {
			return err
		}
		if clockedIn {
			return ErrWorkerClockedIn
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM job_assignments WHERE job_id = ? AND worker_id = ?`, jobID, actor.ID)
		if err != nil {
			return fmt.Errorf("delete assignment: %w", err)
		}
		return nil
	})
}
