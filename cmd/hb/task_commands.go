package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Austuin/HoneyBadgerTool/task"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Track your own tasks and time",
}

// task create
var taskCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskCreate,
}

var (
	taskCreateNotes    string
	taskCreatePriority string
)

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active tasks by priority",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

var taskListJSON bool

// task archived
var taskArchivedCmd = &cobra.Command{
	Use:   "archived",
	Short: "List archived tasks",
	Args:  cobra.NoArgs,
	RunE:  runTaskArchived,
}

var taskArchivedJSON bool

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show detailed information about a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

// task update
var taskUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Update a task",
	Aliases: []string{"edit"},
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskUpdate,
}

var (
	taskUpdateName     string
	taskUpdateNotes    string
	taskUpdatePriority string
)

// task delete
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task permanently",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

var taskDeleteArchived bool

// task in
var taskInCmd = &cobra.Command{
	Use:   "in <id>",
	Short: "Punch in to a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskIn,
}

// task out
var taskOutCmd = &cobra.Command{
	Use:   "out <id>",
	Short: "Punch out of a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskOut,
}

// task entry-delete
var taskEntryDeleteCmd = &cobra.Command{
	Use:   "entry-delete <id> <index>",
	Short: "Delete a time entry from a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskEntryDelete,
}

// task archive
var taskArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskArchive,
}

// task unarchive
var taskUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Restore a task from the archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUnarchive,
}

// task current
var taskCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show tasks you are punched in to",
	Args:  cobra.NoArgs,
	RunE:  runTaskCurrent,
}

var taskCurrentJSON bool

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskCreateCmd, taskListCmd, taskArchivedCmd, taskShowCmd, taskUpdateCmd,
		taskDeleteCmd, taskInCmd, taskOutCmd, taskEntryDeleteCmd, taskArchiveCmd,
		taskUnarchiveCmd, taskCurrentCmd)

	// task create flags
	taskCreateCmd.Flags().StringVarP(&taskCreateNotes, "notes", "n", "", "Notes in markdown")
	taskCreateCmd.Flags().StringVarP(&taskCreatePriority, "priority", "p", "", "Priority (Low, Normal, High, Urgent)")

	// task update flags
	taskUpdateCmd.Flags().StringVar(&taskUpdateName, "name", "", "New name")
	taskUpdateCmd.Flags().StringVarP(&taskUpdateNotes, "notes", "n", "", "New notes")
	taskUpdateCmd.Flags().StringVarP(&taskUpdatePriority, "priority", "p", "", "New priority (Low, Normal, High, Urgent)")

	// task delete flags
	taskDeleteCmd.Flags().BoolVar(&taskDeleteArchived, "archived", false, "Delete from the archive")

	// list output flags
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output as JSON")
	taskArchivedCmd.Flags().BoolVar(&taskArchivedJSON, "json", false, "Output as JSON")
	taskShowCmd.Flags().BoolVar(&taskShowJSON, "json", false, "Output as JSON")
	taskCurrentCmd.Flags().BoolVar(&taskCurrentJSON, "json", false, "Output as JSON")
}

func runTaskCreate(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	created, err := store.Create(args[0], task.CreateOptions{
		Notes:    taskCreateNotes,
		Priority: task.Priority(taskCreatePriority),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created task %s: %s\n", created.ID, created.Name)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	tasks, err := store.ActiveTasks()
	if err != nil {
		return err
	}

	if taskListJSON {
		return printJSON(tasks)
	}

	printTaskTable(tasks, time.Now())
	return nil
}

func runTaskArchived(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	tasks, err := store.ArchivedTasks()
	if err != nil {
		return err
	}

	if taskArchivedJSON {
		return printJSON(tasks)
	}

	printArchivedTaskTable(tasks, time.Now())
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	found, err := store.Show(args[0])
	if err != nil {
		return err
	}

	if taskShowJSON {
		return printJSON(found)
	}

	fmt.Print(formatTaskDetail(*found, time.Now()))
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	if !anyFlagChanged(cmd.Flags(), "name", "notes", "priority") {
		return fmt.Errorf("nothing to update: pass --name, --notes, or --priority")
	}

	opts := task.UpdateOptions{}
	if cmd.Flags().Changed("name") {
		opts.Name = &taskUpdateName
	}
	if cmd.Flags().Changed("notes") {
		opts.Notes = &taskUpdateNotes
	}
	if cmd.Flags().Changed("priority") {
		priority := task.Priority(taskUpdatePriority)
		opts.Priority = &priority
	}

	updated, err := store.Update(args[0], opts)
	if err != nil {
		return err
	}

	fmt.Printf("Updated task %s\n", updated.ID)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	deleted, err := store.Delete(args[0], taskDeleteArchived)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted task %s: %s\n", deleted.ID, deleted.Name)
	return nil
}

func runTaskIn(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	punched, err := store.PunchIn(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Punched in to %s: %s\n", punched.ID, punched.Name)
	return nil
}

func runTaskOut(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	punched, err := store.PunchOut(args[0])
	if err != nil {
		return err
	}

	entry := punched.TimeEntries[len(punched.TimeEntries)-1]
	fmt.Printf("Punched out of %s after %s\n", punched.ID, formatTaskHours(entry.Duration(time.Now())))
	return nil
}

func runTaskEntryDelete(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid entry index %q", args[1])
	}

	updated, err := store.DeleteTimeEntry(args[0], index)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted entry %d from %s\n", index, updated.ID)
	return nil
}

func runTaskArchive(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	archived, err := store.Archive(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Archived task %s: %s\n", archived.ID, archived.Name)
	return nil
}

func runTaskUnarchive(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	restored, err := store.Unarchive(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Restored task %s: %s\n", restored.ID, restored.Name)
	return nil
}

func runTaskCurrent(cmd *cobra.Command, args []string) error {
	store, err := openTaskStore()
	if err != nil {
		return err
	}

	tasks, err := store.CurrentTasks()
	if err != nil {
		return err
	}

	if taskCurrentJSON {
		return printJSON(tasks)
	}

	if len(tasks) == 0 {
		fmt.Println("Not punched in to anything.")
		return nil
	}
	printTaskTable(tasks, time.Now())
	return nil
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
