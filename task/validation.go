package task

import (
	"errors"
	"fmt"

	"github.com/Austuin/HoneyBadgerTool/internal/strings"
)

var (
	// ErrEmptyName is returned when a task name is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNameTooLong is returned when a task name exceeds MaxNameLength.
	ErrNameTooLong = errors.New("name exceeds maximum length")

	// ErrInvalidPriority is returned when an unknown priority is provided.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousTaskIDPrefix is returned when an ID prefix matches multiple tasks.
	ErrAmbiguousTaskIDPrefix = errors.New("ambiguous task ID prefix")

	// ErrAlreadyPunchedIn is returned when punching in to a task that
	// already has an open time entry.
	ErrAlreadyPunchedIn = errors.New("already punched in to this task")

	// ErrNotPunchedIn is returned when punching out of a task with no
	// open time entry.
	ErrNotPunchedIn = errors.New("not currently punched in")

	// ErrTaskPunchedIn is returned when archiving or deleting a task
	// while it still has an open time entry.
	ErrTaskPunchedIn = errors.New("punch out first")

	// ErrInvalidEntryIndex is returned when a time entry index is out of range.
	ErrInvalidEntryIndex = errors.New("invalid entry index")

	// ErrEntryOpen is returned when deleting a time entry that is still open.
	ErrEntryOpen = errors.New("cannot delete an open time entry")
)

// ValidateName checks if the name is valid.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %d > %d", ErrNameTooLong, len(name), MaxNameLength)
	}
	return nil
}

// normalizePriorityInput title-cases a priority value and rejects
// unknown ones. Unset input defaults to Normal.
func normalizePriorityInput(priority Priority) (Priority, error) {
	if priority == "" {
		return PriorityNormal, nil
	}
	normalized := normalizePriority(priority)
	if !normalized.IsValid() {
		return "", fmt.Errorf("%w: %q (valid: Low, Normal, High, Urgent)", ErrInvalidPriority, priority)
	}
	return normalized, nil
}

// normalizePriority maps case-insensitive priority input onto the
// canonical spellings. Unknown values pass through unchanged so the
// caller can reject them.
func normalizePriority(priority Priority) Priority {
	switch strings.NormalizeLowerTrimSpace(string(priority)) {
	case "low":
		return PriorityLow
	case "normal":
		return PriorityNormal
	case "high":
		return PriorityHigh
	case "urgent":
		return PriorityUrgent
	default:
		return priority
	}
}

// ValidateTask checks if a task struct is valid.
func ValidateTask(t *Task) error {
	if err := ValidateName(t.Name); err != nil {
		return err
	}

	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}

	open := 0
	for _, entry := range t.TimeEntries {
		if entry.PunchIn.IsZero() {
			return fmt.Errorf("time entry missing punch_in")
		}
		if entry.Open() {
			open++
		}
	}
	if open > 1 {
		return fmt.Errorf("task has %d open time entries, expected at most one", open)
	}

	return nil
}
