package task

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// CreateOptions configures a new task.
type CreateOptions struct {
	// Notes provides additional context, rendered as markdown.
	Notes string

	// Priority is the importance level. Defaults to PriorityNormal.
	Priority Priority
}

// UpdateOptions specifies fields to update. Nil fields are unchanged.
type UpdateOptions struct {
	Name     *string
	Notes    *string
	Priority *Priority
}

// Create creates a new active task with the given name.
func (s *Store) Create(name string, opts CreateOptions) (*Task, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	priority, err := normalizePriorityInput(opts.Priority)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := Task{
		ID:        GenerateID(name, now),
		Name:      name,
		Notes:     opts.Notes,
		Priority:  priority,
		CreatedAt: now,
	}

	err = s.update(func(doc *Document) error {
		doc.Active = append(doc.Active, task)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Show returns the task for an ID or unique prefix, searching the
// active list first and the archive second.
func (s *Store) Show(id string) (*Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	task, _, err := findTask(doc, id)
	if err != nil {
		return nil, err
	}

	result := *task
	return &result, nil
}

// Update modifies an active task's fields. Nil options are unchanged.
func (s *Store) Update(id string, opts UpdateOptions) (*Task, error) {
	var updated Task

	err := s.update(func(doc *Document) error {
		task, err := findActive(doc, id)
		if err != nil {
			return err
		}

		if opts.Name != nil {
			if err := ValidateName(*opts.Name); err != nil {
				return err
			}
			task.Name = *opts.Name
		}
		if opts.Notes != nil {
			task.Notes = *opts.Notes
		}
		if opts.Priority != nil {
			priority, err := normalizePriorityInput(*opts.Priority)
			if err != nil {
				return err
			}
			task.Priority = priority
		}

		updated = *task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes a task permanently. Active tasks must be punched out
// first; archived tasks (fromArchive) can be deleted regardless since
// archiving already closed their entries.
func (s *Store) Delete(id string, fromArchive bool) (*Task, error) {
	var deleted Task

	err := s.update(func(doc *Document) error {
		list := &doc.Active
		if fromArchive {
			list = &doc.Archived
		}

		index, err := resolveIndex(*list, id)
		if err != nil {
			return err
		}

		task := (*list)[index]
		if !fromArchive && task.PunchedIn() {
			return fmt.Errorf("%w: %s", ErrTaskPunchedIn, task.ID)
		}

		deleted = task
		*list = append((*list)[:index], (*list)[index+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &deleted, nil
}

// PunchIn opens a time entry on an active task. A task can have at
// most one open entry, but several tasks may be punched in at once.
func (s *Store) PunchIn(id string) (*Task, error) {
	var updated Task

	err := s.update(func(doc *Document) error {
		task, err := findActive(doc, id)
		if err != nil {
			return err
		}

		if task.PunchedIn() {
			return fmt.Errorf("%w: %s", ErrAlreadyPunchedIn, task.ID)
		}

		task.TimeEntries = append(task.TimeEntries, TimeEntry{PunchIn: time.Now()})
		updated = *task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// PunchOut closes the open time entry on an active task.
func (s *Store) PunchOut(id string) (*Task, error) {
	var updated Task

	err := s.update(func(doc *Document) error {
		task, err := findActive(doc, id)
		if err != nil {
			return err
		}

		index := task.openEntryIndex()
		if index < 0 {
			return fmt.Errorf("%w: %s", ErrNotPunchedIn, task.ID)
		}

		now := time.Now()
		task.TimeEntries[index].PunchOut = &now
		updated = *task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteTimeEntry removes a closed time entry from a task by index.
func (s *Store) DeleteTimeEntry(id string, index int) (*Task, error) {
	var updated Task

	err := s.update(func(doc *Document) error {
		task, err := findActive(doc, id)
		if err != nil {
			return err
		}

		if index < 0 || index >= len(task.TimeEntries) {
			return fmt.Errorf("%w: %d", ErrInvalidEntryIndex, index)
		}
		if task.TimeEntries[index].Open() {
			return ErrEntryOpen
		}

		task.TimeEntries = append(task.TimeEntries[:index], task.TimeEntries[index+1:]...)
		updated = *task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Archive moves an active task to the archive. The task must be
// punched out first.
func (s *Store) Archive(id string) (*Task, error) {
	var archived Task

	err := s.update(func(doc *Document) error {
		index, err := resolveIndex(doc.Active, id)
		if err != nil {
			return err
		}

		task := doc.Active[index]
		if task.PunchedIn() {
			return fmt.Errorf("%w: %s", ErrTaskPunchedIn, task.ID)
		}

		now := time.Now()
		task.ArchivedAt = &now

		doc.Active = append(doc.Active[:index], doc.Active[index+1:]...)
		doc.Archived = append(doc.Archived, task)
		archived = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &archived, nil
}

// Unarchive moves an archived task back to the active list.
func (s *Store) Unarchive(id string) (*Task, error) {
	var restored Task

	err := s.update(func(doc *Document) error {
		index, err := resolveIndex(doc.Archived, id)
		if err != nil {
			return err
		}

		task := doc.Archived[index]
		task.ArchivedAt = nil

		doc.Archived = append(doc.Archived[:index], doc.Archived[index+1:]...)
		doc.Active = append(doc.Active, task)
		restored = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &restored, nil
}

// ActiveTasks returns active tasks ordered by priority, most urgent
// first. The sort is stable, so tasks of equal priority keep their
// creation order.
func (s *Store) ActiveTasks() ([]Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, len(doc.Active))
	copy(tasks, doc.Active)
	sort.SliceStable(tasks, func(i, j int) bool {
		return PriorityRank(tasks[i].Priority) < PriorityRank(tasks[j].Priority)
	})
	return tasks, nil
}

// ArchivedTasks returns archived tasks in archive order.
func (s *Store) ArchivedTasks() ([]Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	tasks := make([]Task, len(doc.Archived))
	copy(tasks, doc.Archived)
	return tasks, nil
}

// CurrentTasks returns the active tasks that are punched in.
func (s *Store) CurrentTasks() ([]Task, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	var current []Task
	for _, task := range doc.Active {
		if task.PunchedIn() {
			current = append(current, task)
		}
	}
	return current, nil
}

// findActive resolves an ID or prefix against the active list and
// returns a pointer into the document so callers can mutate in place.
func findActive(doc *Document, id string) (*Task, error) {
	index, err := resolveIndex(doc.Active, id)
	if err != nil {
		return nil, err
	}
	return &doc.Active[index], nil
}

// findTask resolves an ID or prefix against the active list first and
// the archive second. It reports whether the match came from the
// archive.
func findTask(doc *Document, id string) (*Task, bool, error) {
	if index, err := resolveIndex(doc.Active, id); err == nil {
		return &doc.Active[index], false, nil
	} else if !isNotFound(err) {
		return nil, false, err
	}

	index, err := resolveIndex(doc.Archived, id)
	if err != nil {
		return nil, false, err
	}
	return &doc.Archived[index], true, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound)
}

// resolveIndex finds the list index for an ID or unique prefix.
func resolveIndex(tasks []Task, id string) (int, error) {
	fullID, err := NewIDIndex(tasks).Resolve(id)
	if err != nil {
		return 0, err
	}
	for i := range tasks {
		if tasks[i].ID == fullID {
			return i, nil
		}
	}
	return 0, ErrTaskNotFound
}
