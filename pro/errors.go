package pro

import "errors"

var (
	// ErrJobNotFound is returned when a job with the given ID doesn't exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrWorkerNotFound is returned when a worker with the given ID doesn't exist.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrForbidden is returned when the acting worker lacks the role
	// an operation requires.
	ErrForbidden = errors.New("admin role required")

	// ErrEmptyJobName is returned when a job name is empty.
	ErrEmptyJobName = errors.New("job name cannot be empty")

	// ErrJobNameTooLong is returned when a job name exceeds MaxJobNameLength.
	ErrJobNameTooLong = errors.New("job name exceeds maximum length")

	// ErrInvalidMaxWorkers is returned when a job's worker cap is below one.
	ErrInvalidMaxWorkers = errors.New("max workers must be at least 1")

	// ErrInvalidRole is returned when a worker role is neither admin nor basic.
	ErrInvalidRole = errors.New("invalid role")

	// ErrUsernameTaken is returned when creating a worker with a
	// username that already exists.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrJobClosed is returned when joining, assigning, or clocking in
	// to a job that is complete or archived.
	ErrJobClosed = errors.New("job is already complete")

	// ErrAlreadyAssigned is returned when a worker is already on the
	// job's assignment list.
	ErrAlreadyAssigned = errors.New("already assigned to this job")

	// ErrJobFull is returned when the job's assignment list is at its
	// worker cap.
	ErrJobFull = errors.New("job is full")

	// ErrNotAssigned is returned when an operation requires the worker
	// to be on the job's assignment list.
	ErrNotAssigned = errors.New("not assigned to this job")

	// ErrWorkerClockedIn is returned when leaving a job while still on
	// the clock.
	ErrWorkerClockedIn = errors.New("clock out first before leaving")

	// ErrAlreadyClockedIn is returned when clocking in to a job with
	// an open time entry.
	ErrAlreadyClockedIn = errors.New("already clocked in to this job")

	// ErrNotClockedIn is returned when clocking out of a job with no
	// open time entry.
	ErrNotClockedIn = errors.New("not clocked in to this job")

	// ErrJobArchived is returned when reopening a job that was already
	// approved and archived.
	ErrJobArchived = errors.New("job is archived")
)
