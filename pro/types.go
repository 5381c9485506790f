// Package pro implements the multi-user HoneyBadger job board.
//
// Jobs are posted by admins, picked up by workers, and tracked through
// a clock-in/clock-out time clock. Completion goes through an optional
// review step: jobs created with auto-review archive themselves when a
// worker marks them complete, everything else waits for an admin to
// approve or reopen.
//
// State lives in a SQLite database. Every operation that reads state
// before writing it (joining a job with limited slots, clocking in)
// runs inside a transaction so concurrent callers can't both get the
// last slot.
package pro

import "time"

// Role determines what a worker is allowed to do.
type Role string

const (
	// RoleAdmin can manage jobs, workers, and reviews.
	RoleAdmin Role = "admin"

	// RoleBasic can join jobs, track time, and mark work complete.
	RoleBasic Role = "basic"
)

// IsValid returns true if the role is a known valid value.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleBasic
}

// Worker is a registered account on the job board. Credentials are
// handled upstream; the registry only tracks identity and role.
type Worker struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Initials  string    `json:"initials"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the worker has the admin role.
func (w Worker) IsAdmin() bool {
	return w.Role == RoleAdmin
}

// MaxJobNameLength is the maximum allowed length for a job name.
const MaxJobNameLength = 200

// Job is a posted piece of work.
type Job struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Requirements is free text describing what the job needs.
	Requirements string `json:"requirements,omitempty"`

	// MaxWorkers caps how many workers can be assigned at once.
	MaxWorkers int `json:"max_workers"`

	// AutoReview skips the admin review step on completion. Fixed at
	// creation time.
	AutoReview bool `json:"auto_review"`

	// Complete and Archived are both set when the job is finished;
	// MarkedForReview is set instead when the job awaits admin review.
	Complete        bool `json:"is_complete"`
	Archived        bool `json:"is_archived"`
	MarkedForReview bool `json:"marked_for_review"`

	CreatedBy   int64      `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Open reports whether the job can still accept assignments and time.
func (j Job) Open() bool {
	return !j.Complete && !j.Archived
}

// Assignment links a worker to a job.
type Assignment struct {
	ID         int64     `json:"id"`
	JobID      int64     `json:"job_id"`
	WorkerID   int64     `json:"worker_id"`
	Username   string    `json:"username"`
	Initials   string    `json:"initials"`
	AssignedBy int64     `json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`

	// ClockedIn reports whether the worker has an open time entry on
	// this job.
	ClockedIn bool `json:"is_clocked_in"`
}

// JobView is a job plus its computed board state: who's assigned,
// who's on the clock, and total time spent. Open entries count up to
// the moment the view is built.
type JobView struct {
	Job
	CurrentWorkers   int          `json:"current_workers"`
	Assignments      []Assignment `json:"assignments"`
	TotalTimeSeconds int64        `json:"total_time_seconds"`
}

// ActiveClock is one open time entry from a worker's perspective.
type ActiveClock struct {
	JobID   int64     `json:"job_id"`
	JobName string    `json:"job_name"`
	ClockIn time.Time `json:"clock_in"`
}
