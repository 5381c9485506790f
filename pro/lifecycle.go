package pro

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MarkComplete declares the work on a job done. Any assigned worker
// (or an admin) can call it. All open time entries on the job are
// force-closed. Auto-review jobs archive immediately; everything else
// is flagged for admin review.
//
// The returned bool reports whether the job auto-completed.
func (s *Store) MarkComplete(ctx context.Context, actor Worker, jobID int64) (bool, error) {
	var autoCompleted bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		job, err := getJob(ctx, tx, jobID)
		if err != nil {
			return err
		}

		assigned, err := assignmentExists(ctx, tx, jobID, actor.ID)
		if err != nil {
			return err
		}
		if !assigned && !actor.IsAdmin() {
			return fmt.Errorf("%w: %s", ErrNotAssigned, job.Name)
		}

		now := time.Now().UTC()
		_, err = tx.ExecContext(ctx,
			`UPDATE time_entries SET clock_out = ? WHERE job_id = ? AND clock_out IS NULL`,
			now, jobID,
		)
		if err != nil {
			return fmt.Errorf("close time entries: %w", err)
		}

		if job.AutoReview {
			autoCompleted = true
			_, err = tx.ExecContext(ctx,
				`UPDATE jobs SET is_complete = 1, is_archived = 1, completed_at = ? WHERE id = ?`,
				now, jobID,
			)
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE jobs SET marked_for_review = 1 WHERE id = ?`, jobID)
		}
		if err != nil {
			return fmt.Errorf("update job: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return autoCompleted, nil
}

// Approve completes and archives a job, clearing its review flag.
// Admin only. Approving an already-archived job just refreshes
// completed_at, so repeated approvals are harmless.
func (s *Store) Approve(ctx context.Context, actor Worker, jobID int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getJob(ctx, tx, jobID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE jobs SET is_complete = 1, is_archived = 1, marked_for_review = 0, completed_at = ? WHERE id = ?`,
			time.Now().UTC(), jobID,
		)
		if err != nil {
			return fmt.Errorf("approve job: %w", err)
		}
		return nil
	})
}

// Reopen clears a job's review flag, putting it back on the board.
// Admin only. Archived jobs stay archived; approval is final.
func (s *Store) Reopen(ctx context.Context, actor Worker, jobID int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		job, err := getJob(ctx, tx, jobID)
		if err != nil {
			return err
		}
		if job.Archived {
			return fmt.Errorf("%w: %s", ErrJobArchived, job.Name)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE jobs SET marked_for_review = 0 WHERE id = ?`, jobID)
		if err != nil {
			return fmt.Errorf("reopen job: %w", err)
		}
		return nil
	})
}
