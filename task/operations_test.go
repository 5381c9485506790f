package task

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

func TestStore_Create(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Fix login bug", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if task.Name != "Fix login bug" {
		t.Errorf("expected name 'Fix login bug', got %q", task.Name)
	}
	if task.Priority != PriorityNormal {
		t.Errorf("expected priority Normal, got %q", task.Priority)
	}
	if len(task.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", task.ID)
	}
	if task.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
	if task.ArchivedAt != nil {
		t.Error("expected archived_at to be nil")
	}
}

func TestStore_Create_WithOptions(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Ship release", CreateOptions{
		Notes:    "Cut the branch first",
		Priority: PriorityUrgent,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if task.Notes != "Cut the branch first" {
		t.Errorf("expected notes to be set, got %q", task.Notes)
	}
	if task.Priority != PriorityUrgent {
		t.Errorf("expected priority Urgent, got %q", task.Priority)
	}
}

func TestStore_Create_NormalizesPriorityCase(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Case test", CreateOptions{Priority: "urgent"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if task.Priority != PriorityUrgent {
		t.Errorf("expected priority Urgent, got %q", task.Priority)
	}
}

func TestStore_Create_InvalidPriority(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create("Bad priority", CreateOptions{Priority: "critical"})
	if !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestStore_Create_EmptyName(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create("", CreateOptions{})
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestStore_Create_NameTooLong(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create(strings.Repeat("x", MaxNameLength+1), CreateOptions{})
	if !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Original name", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	newName := "Renamed"
	newNotes := "Some context"
	newPriority := PriorityHigh
	updated, err := store.Update(task.ID, UpdateOptions{
		Name:     &newName,
		Notes:    &newNotes,
		Priority: &newPriority,
	})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	if updated.Name != "Renamed" {
		t.Errorf("expected name 'Renamed', got %q", updated.Name)
	}
	if updated.Notes != "Some context" {
		t.Errorf("expected notes 'Some context', got %q", updated.Notes)
	}
	if updated.Priority != PriorityHigh {
		t.Errorf("expected priority High, got %q", updated.Priority)
	}
}

func TestStore_Update_PartialLeavesOtherFields(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Keep me", CreateOptions{Notes: "keep these notes", Priority: PriorityLow})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	newPriority := PriorityUrgent
	updated, err := store.Update(task.ID, UpdateOptions{Priority: &newPriority})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	if updated.Name != "Keep me" {
		t.Errorf("expected name unchanged, got %q", updated.Name)
	}
	if updated.Notes != "keep these notes" {
		t.Errorf("expected notes unchanged, got %q", updated.Notes)
	}
	if updated.Priority != PriorityUrgent {
		t.Errorf("expected priority Urgent, got %q", updated.Priority)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	store := newTestStore(t)

	name := "nope"
	_, err := store.Update("deadbeef", UpdateOptions{Name: &name})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestStore_Show_PrefixResolution(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Findable", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	found, err := store.Show(task.ID[:4])
	if err != nil {
		t.Fatalf("failed to show task by prefix: %v", err)
	}
	if found.ID != task.ID {
		t.Errorf("expected ID %q, got %q", task.ID, found.ID)
	}
}

func TestStore_Show_FindsArchivedTask(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("To archive", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := store.Archive(task.ID); err != nil {
		t.Fatalf("failed to archive task: %v", err)
	}

	found, err := store.Show(task.ID)
	if err != nil {
		t.Fatalf("failed to show archived task: %v", err)
	}
	if found.ArchivedAt == nil {
		t.Error("expected archived_at to be set")
	}
}

func TestStore_PunchInOut(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Timed work", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	punched, err := store.PunchIn(task.ID)
	if err != nil {
		t.Fatalf("failed to punch in: %v", err)
	}
	if !punched.PunchedIn() {
		t.Fatal("expected task to be punched in")
	}
	if len(punched.TimeEntries) != 1 {
		t.Fatalf("expected 1 time entry, got %d", len(punched.TimeEntries))
	}

	done, err := store.PunchOut(task.ID)
	if err != nil {
		t.Fatalf("failed to punch out: %v", err)
	}
	if done.PunchedIn() {
		t.Error("expected task to be punched out")
	}
	entry := done.TimeEntries[0]
	if entry.PunchOut == nil {
		t.Fatal("expected punch_out to be set")
	}
	if entry.PunchOut.Before(entry.PunchIn) {
		t.Error("expected punch_out to be at or after punch_in")
	}
}

func TestStore_PunchIn_AlreadyPunchedIn(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Double punch", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := store.PunchIn(task.ID); err != nil {
		t.Fatalf("failed to punch in: %v", err)
	}

	_, err = store.PunchIn(task.ID)
	if !errors.Is(err, ErrAlreadyPunchedIn) {
		t.Fatalf("expected ErrAlreadyPunchedIn, got %v", err)
	}

	// The failed punch-in must not have added an entry.
	current, err := store.Show(task.ID)
	if err != nil {
		t.Fatalf("failed to show task: %v", err)
	}
	if len(current.TimeEntries) != 1 {
		t.Errorf("expected 1 time entry, got %d", len(current.TimeEntries))
	}
}

func TestStore_PunchOut_NotPunchedIn(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Never started", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	_, err = store.PunchOut(task.ID)
	if !errors.Is(err, ErrNotPunchedIn) {
		t.Fatalf("expected ErrNotPunchedIn, got %v", err)
	}
}

func TestStore_PunchIn_MultipleTasks(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Create("First", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	second, err := store.Create("Second", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if _, err := store.PunchIn(first.ID); err != nil {
		t.Fatalf("failed to punch in first: %v", err)
	}
	if _, err := store.PunchIn(second.ID); err != nil {
		t.Fatalf("failed to punch in second: %v", err)
	}

	current, err := store.CurrentTasks()
	if err != nil {
		t.Fatalf("failed to list current tasks: %v", err)
	}
	if len(current) != 2 {
		t.Errorf("expected 2 punched-in tasks, got %d", len(current))
	}
}

func TestStore_DeleteTimeEntry(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Entry cleanup", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := store.PunchIn(task.ID); err != nil {
		t.Fatalf("failed to punch in: %v", err)
	}
	if _, err := store.PunchOut(task.ID); err != nil {
		t.Fatalf("failed to punch out: %v", err)
	}

	updated, err := store.DeleteTimeEntry(task.ID, 0)
	if err != nil {
		t.Fatalf("failed to delete time entry: %v", err)
	}
	if len(updated.TimeEntries) != 0 {
		t.Errorf("expected 0 time entries, got %d", len(updated.TimeEntries))
	}
}

func TestStore_DeleteTimeEntry_OpenEntry(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Still running", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := store.PunchIn(task.ID); err != nil {
		t.Fatalf("failed to punch in: %v", err)
	}

	_, err = store.DeleteTimeEntry(task.ID, 0)
	if !errors.Is(err, ErrEntryOpen) {
		t.Fatalf("expected ErrEntryOpen, got %v", err)
	}
}

func TestStore_DeleteTimeEntry_InvalidIndex(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("No entries", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	_, err = store.DeleteTimeEntry(task.ID, 0)
	if !errors.Is(err, ErrInvalidEntryIndex) {
		t.Fatalf("expected ErrInvalidEntryIndex, got %v", err)
	}

	_, err = store.DeleteTimeEntry(task.ID, -1)
	if !errors.Is(err, ErrInvalidEntryIndex) {
		t.Fatalf("expected ErrInvalidEntryIndex for negative index, got %v", err)
	}
}

func TestStore_Archive(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Done with this", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	archived, err := store.Archive(task.ID)
	if err != nil {
		t.Fatalf("failed to archive task: %v", err)
	}
	if archived.ArchivedAt == nil {
		t.Error("expected archived_at to be set")
	}

	active, err := store.ActiveTasks()
	if err != nil {
		t.Fatalf("failed to list active tasks: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected 0 active tasks, got %d", len(active))
	}

	archivedList, err := store.ArchivedTasks()
	if err != nil {
		t.Fatalf("failed to list archived tasks: %v", err)
	}
	if len(archivedList) != 1 {
		t.Errorf("expected 1 archived task, got %d", len(archivedList))
	}
}

func TestStore_Archive_WhilePunchedIn(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Still working", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := store.PunchIn(task.ID); err != nil {
		t.Fatalf("failed to punch in: %v", err)
	}

	_, err = store.Archive(task.ID)
	if !errors.Is(err, ErrTaskPunchedIn) {
		t.Fatalf("expected ErrTaskPunchedIn, got %v", err)
	}
}

func TestStore_Unarchive(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Back again", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := store.Archive(task.ID); err != nil {
		t.Fatalf("failed to archive task: %v", err)
	}

	restored, err := store.Unarchive(task.ID)
	if err != nil {
		t.Fatalf("failed to unarchive task: %v", err)
	}
	if restored.ArchivedAt != nil {
		t.Error("expected archived_at to be cleared")
	}

	active, err := store.ActiveTasks()
	if err != nil {
		t.Fatalf("failed to list active tasks: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("expected 1 active task, got %d", len(active))
	}
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Remove me", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	deleted, err := store.Delete(task.ID, false)
	if err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}
	if deleted.ID != task.ID {
		t.Errorf("expected deleted ID %q, got %q", task.ID, deleted.ID)
	}

	_, err = store.Show(task.ID)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestStore_Delete_WhilePunchedIn(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Busy", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := store.PunchIn(task.ID); err != nil {
		t.Fatalf("failed to punch in: %v", err)
	}

	_, err = store.Delete(task.ID, false)
	if !errors.Is(err, ErrTaskPunchedIn) {
		t.Fatalf("expected ErrTaskPunchedIn, got %v", err)
	}
}

func TestStore_Delete_FromArchive(t *testing.T) {
	store := newTestStore(t)

	task, err := store.Create("Archived then gone", CreateOptions{})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := store.Archive(task.ID); err != nil {
		t.Fatalf("failed to archive task: %v", err)
	}

	if _, err := store.Delete(task.ID, true); err != nil {
		t.Fatalf("failed to delete archived task: %v", err)
	}

	archived, err := store.ArchivedTasks()
	if err != nil {
		t.Fatalf("failed to list archived tasks: %v", err)
	}
	if len(archived) != 0 {
		t.Errorf("expected 0 archived tasks, got %d", len(archived))
	}
}

func TestStore_ActiveTasks_SortsByPriority(t *testing.T) {
	store := newTestStore(t)

	// Created out of priority order, with two Normal tasks to check
	// stability.
	names := []struct {
		name     string
		priority Priority
	}{
		{"low one", PriorityLow},
		{"normal one", PriorityNormal},
		{"urgent one", PriorityUrgent},
		{"normal two", PriorityNormal},
		{"high one", PriorityHigh},
	}
	for _, n := range names {
		if _, err := store.Create(n.name, CreateOptions{Priority: n.priority}); err != nil {
			t.Fatalf("failed to create task %q: %v", n.name, err)
		}
	}

	active, err := store.ActiveTasks()
	if err != nil {
		t.Fatalf("failed to list active tasks: %v", err)
	}

	want := []string{"urgent one", "high one", "normal one", "normal two", "low one"}
	if len(active) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(active))
	}
	for i, name := range want {
		if active[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, active[i].Name)
		}
	}
}

func TestIDIndex_Resolve(t *testing.T) {
	index := NewIDIndex([]Task{
		{ID: "abc12345"},
		{ID: "abd67890"},
		{ID: "xyz00000"},
	})

	if _, err := index.Resolve("ab"); !errors.Is(err, ErrAmbiguousTaskIDPrefix) {
		t.Errorf("expected ErrAmbiguousTaskIDPrefix for 'ab', got %v", err)
	}

	id, err := index.Resolve("abc")
	if err != nil {
		t.Fatalf("failed to resolve 'abc': %v", err)
	}
	if id != "abc12345" {
		t.Errorf("expected 'abc12345', got %q", id)
	}

	id, err = index.Resolve("x")
	if err != nil {
		t.Fatalf("failed to resolve 'x': %v", err)
	}
	if id != "xyz00000" {
		t.Errorf("expected 'xyz00000', got %q", id)
	}

	if _, err := index.Resolve("q"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound for 'q', got %v", err)
	}
	if _, err := index.Resolve(""); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound for empty prefix, got %v", err)
	}
}

func TestTotalDuration(t *testing.T) {
	now := time.Now()
	punchOut := now.Add(-30 * time.Minute)
	task := Task{
		TimeEntries: []TimeEntry{
			{PunchIn: now.Add(-2 * time.Hour), PunchOut: &punchOut},
			{PunchIn: now.Add(-15 * time.Minute)},
		},
	}

	got := TotalDuration(task, now)
	want := 90*time.Minute + 15*time.Minute
	if got != want {
		t.Errorf("expected total %v, got %v", want, got)
	}
}

func TestTotalDuration_ClampsNegative(t *testing.T) {
	now := time.Now()
	task := Task{
		TimeEntries: []TimeEntry{
			{PunchIn: now.Add(time.Hour)},
		},
	}

	if got := TotalDuration(task, now); got != 0 {
		t.Errorf("expected 0 for future punch-in, got %v", got)
	}
}
