package pro

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ClockIn opens a time entry for the actor on a job. The actor must be
// assigned, the job must be open, and the actor must not already have
// an open entry on it.
func (s *Store) ClockIn(ctx context.Context, actor Worker, jobID int64) (time.Time, error) {
	var clockIn time.Time
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		job, err := getJob(ctx, tx, jobID)
		if err != nil {
			return err
		}
		if !job.Open() {
			return fmt.Errorf("%w: %s", ErrJobClosed, job.Name)
		}

		assigned, err := assignmentExists(ctx, tx, jobID, actor.ID)
		if err != nil {
			return err
		}
		if !assigned {
			return ErrNotAssigned
		}

		open, err := hasOpenEntry(ctx, tx, jobID, actor.ID)
		if err != nil {
			return err
		}
		if open {
			return ErrAlreadyClockedIn
		}

		clockIn = time.Now().UTC()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO time_entries (job_id, worker_id, clock_in) VALUES (?, ?, ?)`,
			jobID, actor.ID, clockIn,
		)
		if err != nil {
			return fmt.Errorf("insert time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return clockIn, nil
}

// ClockOut closes the actor's open time entry on a job.
func (s *Store) ClockOut(ctx context.Context, actor Worker, jobID int64) (time.Time, error) {
	var clockOut time.Time
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		open, err := hasOpenEntry(ctx, tx, jobID, actor.ID)
		if err != nil {
			return err
		}
		if !open {
			return ErrNotClockedIn
		}

		clockOut = time.Now().UTC()
		_, err = tx.ExecContext(ctx,
			`UPDATE time_entries SET clock_out = ? WHERE job_id = ? AND worker_id = ? AND clock_out IS NULL`,
			clockOut, jobID, actor.ID,
		)
		if err != nil {
			return fmt.Errorf("close time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return clockOut, nil
}

// ActiveClocks returns the jobs the actor is currently clocked in to.
func (s *Store) ActiveClocks(ctx context.Context, actor Worker) ([]ActiveClock, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.job_id, j.name, e.clock_in
		FROM time_entries e
		JOIN jobs j ON j.id = e.job_id
		WHERE e.worker_id = ? AND e.clock_out IS NULL
		ORDER BY e.clock_in`, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list active clocks: %w", err)
	}
	defer rows.Close()

	var clocks []ActiveClock
	for rows.Next() {
		var clock ActiveClock
		if err := rows.Scan(&clock.JobID, &clock.JobName, &clock.ClockIn); err != nil {
			return nil, fmt.Errorf("scan active clock: %w", err)
		}
		clocks = append(clocks, clock)
	}
	return clocks, rows.Err()
}
