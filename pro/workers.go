package pro

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// CreateWorkerOptions configures a new worker.
type CreateWorkerOptions struct {
	Username string
	Initials string
	Role     Role
}

// CreateWorker registers a worker. Initials are stored uppercase; the
// role defaults to basic.
func (s *Store) CreateWorker(ctx context.Context, opts CreateWorkerOptions) (Worker, error) {
	username := strings.TrimSpace(opts.Username)
	if username == "" {
		return Worker{}, fmt.Errorf("username cannot be empty")
	}

	role := opts.Role
	if role == "" {
		role = RoleBasic
	}
	if !role.IsValid() {
		return Worker{}, fmt.Errorf("%w: %q", ErrInvalidRole, opts.Role)
	}

	initials := strings.ToUpper(strings.TrimSpace(opts.Initials))
	if initials == "" {
		initials = strings.ToUpper(username[:min(2, len(username))])
	}

	var worker Worker
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM workers WHERE username = ?`, username).Scan(&one)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrUsernameTaken, username)
		}

		now := time.Now().UTC()
		result, err := tx.ExecContext(ctx,
			`INSERT INTO workers (username, initials, role, created_at) VALUES (?, ?, ?, ?)`,
			username, initials, role, now,
		)
		if err != nil {
			return fmt.Errorf("insert worker: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("worker id: %w", err)
		}

		worker = Worker{ID: id, Username: username, Initials: initials, Role: role, CreatedAt: now}
		return nil
	})
	if err != nil {
		return Worker{}, err
	}
	return worker, nil
}

// GetWorker returns the worker with the given ID.
func (s *Store) GetWorker(ctx context.Context, id int64) (Worker, error) {
	return getWorker(ctx, s.db, id)
}

// GetWorkerByUsername returns the worker with the given username.
func (s *Store) GetWorkerByUsername(ctx context.Context, username string) (Worker, error) {
	var worker Worker
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, initials, role, created_at FROM workers WHERE username = ?`,
		strings.TrimSpace(username),
	).Scan(&worker.ID, &worker.Username, &worker.Initials, &worker.Role, &worker.CreatedAt)
	if err != nil {
		return Worker{}, ErrWorkerNotFound
	}
	return worker, nil
}

// ListWorkers returns all registered workers, oldest first.
func (s *Store) ListWorkers(ctx context.Context) ([]Worker, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, initials, role, created_at FROM workers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()

	var workers []Worker
	for rows.Next() {
		var worker Worker
		if err := rows.Scan(&worker.ID, &worker.Username, &worker.Initials, &worker.Role, &worker.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		workers = append(workers, worker)
	}
	return workers, rows.Err()
}

// DeleteWorker removes a worker and their assignments. Time entries
// are kept so job totals survive.
func (s *Store) DeleteWorker(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getWorker(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM job_assignments WHERE worker_id = ?`, id); err != nil {
			return fmt.Errorf("delete assignments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM workers WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete worker: %w", err)
		}
		return nil
	})
}
