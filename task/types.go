// Package task implements the single-user HoneyBadger task tracker.
//
// Tasks live in a single JSON document with an active list and an
// archived list, stored under the user's data directory. Every mutation
// loads the document, applies the change, and writes the whole document
// back atomically.
//
// The public API mirrors the CLI commands:
//   - Create, Update, Delete for the task records themselves
//   - PunchIn, PunchOut, DeleteTimeEntry for timed work sessions
//   - Archive, Unarchive for the task lifecycle
//   - ActiveTasks, ArchivedTasks, Show, CurrentTasks for querying
package task

import "time"

// Priority represents the importance of a task.
type Priority string

const (
	// PriorityLow indicates the task can wait.
	PriorityLow Priority = "Low"

	// PriorityNormal is the default priority.
	PriorityNormal Priority = "Normal"

	// PriorityHigh indicates the task should be worked on soon.
	PriorityHigh Priority = "High"

	// PriorityUrgent indicates the task needs immediate attention.
	PriorityUrgent Priority = "Urgent"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// PriorityRank returns the sort rank for a priority (0 = most urgent).
// Unknown values rank with Normal.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// MaxNameLength is the maximum allowed length for a task name.
const MaxNameLength = 200

// TimeEntry is one contiguous punch-in to punch-out interval on a task.
type TimeEntry struct {
	// PunchIn is when the session opened.
	PunchIn time.Time `json:"punch_in"`

	// PunchOut is when the session closed (nil while still open).
	PunchOut *time.Time `json:"punch_out,omitempty"`
}

// Open reports whether the entry is still in progress.
func (e TimeEntry) Open() bool {
	return e.PunchOut == nil
}

// Duration returns the elapsed time of the entry. Open entries are
// measured against now.
func (e TimeEntry) Duration(now time.Time) time.Duration {
	end := now
	if e.PunchOut != nil {
		end = *e.PunchOut
	}
	if end.Before(e.PunchIn) {
		return 0
	}
	return end.Sub(e.PunchIn)
}

// Task represents a single tracked piece of work.
type Task struct {
	// ID is a unique identifier (8-char alphanumeric, derived from the
	// initial name + creation timestamp).
	ID string `json:"id"`

	// Name is the short summary of the task.
	Name string `json:"name"`

	// Notes provides additional context, rendered as markdown.
	Notes string `json:"notes,omitempty"`

	// Priority orders the active list.
	Priority Priority `json:"priority"`

	// TimeEntries records punch-in/punch-out sessions, oldest first.
	TimeEntries []TimeEntry `json:"time_entries"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// ArchivedAt is when the task was archived (nil while active).
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

// PunchedIn reports whether the task has an open time entry.
func (t Task) PunchedIn() bool {
	return t.openEntryIndex() >= 0
}

func (t Task) openEntryIndex() int {
	for i, entry := range t.TimeEntries {
		if entry.Open() {
			return i
		}
	}
	return -1
}

// TotalDuration sums the durations of all time entries. Open entries
// grow with wall-clock time, so the result is recomputed per call.
func TotalDuration(t Task, now time.Time) time.Duration {
	var total time.Duration
	for _, entry := range t.TimeEntries {
		total += entry.Duration(now)
	}
	return total
}

// TotalHours returns TotalDuration expressed in fractional hours.
func TotalHours(t Task, now time.Time) float64 {
	return TotalDuration(t, now).Hours()
}

// Document is the on-disk shape of the tracker: the active list and
// the archive, rewritten in full on every mutation.
type Document struct {
	Active   []Task `json:"active"`
	Archived []Task `json:"archived"`
}
