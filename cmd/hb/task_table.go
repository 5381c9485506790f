package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Austuin/HoneyBadgerTool/internal/ui"
	"github.com/Austuin/HoneyBadgerTool/task"
)

// printTaskTable prints active tasks in a table format.
func printTaskTable(tasks []task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	fmt.Print(formatTaskTable(tasks, now))
}

func formatTaskTable(tasks []task.Task, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "PRI", "STATE", "AGE", "TIME", "NAME"}, len(tasks))

	prefixLengths := task.NewIDIndex(tasks).PrefixLengths()
	for _, t := range tasks {
		builder.AddRow([]string{
			ui.HighlightID(t.ID, ui.PrefixLength(prefixLengths, t.ID)),
			ui.ColorPriority(string(t.Priority)),
			taskState(t),
			ui.FormatTimeAgeShort(t.CreatedAt, now),
			formatTaskHours(task.TotalDuration(t, now)),
			ui.TruncateTableCell(t.Name),
		})
	}

	return builder.String()
}

// printArchivedTaskTable prints archived tasks in a table format.
func printArchivedTaskTable(tasks []task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Println("No archived tasks.")
		return
	}

	builder := ui.NewTableBuilder([]string{"ID", "PRI", "ARCHIVED", "TIME", "NAME"}, len(tasks))

	prefixLengths := task.NewIDIndex(tasks).PrefixLengths()
	for _, t := range tasks {
		archivedAge := "-"
		if t.ArchivedAt != nil {
			archivedAge = ui.FormatTimeAgeShort(*t.ArchivedAt, now)
		}
		builder.AddRow([]string{
			ui.HighlightID(t.ID, ui.PrefixLength(prefixLengths, t.ID)),
			ui.ColorPriority(string(t.Priority)),
			ui.ColorArchived(archivedAge),
			formatTaskHours(task.TotalDuration(t, now)),
			ui.TruncateTableCell(t.Name),
		})
	}

	fmt.Print(builder.String())
}

func taskState(t task.Task) string {
	if t.PunchedIn() {
		return ui.ColorClockedIn("in")
	}
	return "out"
}

// formatTaskHours renders a duration the way totals are reported:
// whole minutes under an hour, hours and minutes above.
func formatTaskHours(duration time.Duration) string {
	return ui.FormatHours(duration.Hours())
}

func formatEntryRange(entry task.TimeEntry, now time.Time) string {
	var builder strings.Builder
	builder.WriteString(ui.FormatClock(entry.PunchIn))
	builder.WriteString(" - ")
	if entry.PunchOut != nil {
		builder.WriteString(ui.FormatClock(*entry.PunchOut))
	} else {
		builder.WriteString("now")
	}
	builder.WriteString(fmt.Sprintf(" (%s)", formatTaskHours(entry.Duration(now))))
	return builder.String()
}
