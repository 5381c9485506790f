package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Austuin/HoneyBadgerTool/internal/markdown"
	"github.com/Austuin/HoneyBadgerTool/internal/ui"
	"github.com/Austuin/HoneyBadgerTool/task"
	"github.com/muesli/reflow/wordwrap"
)

const taskDetailLineWidth = 80

// formatTaskDetail renders the full record of a task: fields, notes,
// and the time entry log.
func formatTaskDetail(t task.Task, now time.Time) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "ID:       %s\n", ui.HighlightID(t.ID, len(t.ID)))
	fmt.Fprintf(&builder, "Name:     %s\n", wrapTaskText(t.Name))
	fmt.Fprintf(&builder, "Priority: %s\n", ui.ColorPriority(string(t.Priority)))
	fmt.Fprintf(&builder, "Created:  %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))

	if t.ArchivedAt != nil {
		fmt.Fprintf(&builder, "Archived: %s\n", t.ArchivedAt.Format("2006-01-02 15:04:05"))
	}
	if t.PunchedIn() {
		fmt.Fprintf(&builder, "State:    %s\n", ui.ColorClockedIn("punched in"))
	}

	fmt.Fprintf(&builder, "Total:    %s\n", formatTaskHours(task.TotalDuration(t, now)))

	if t.Notes != "" {
		fmt.Fprintf(&builder, "\nNotes:\n%s\n", renderTaskNotes(t.Notes))
	}

	if len(t.TimeEntries) > 0 {
		builder.WriteString("\nTime entries:\n")
		for i, entry := range t.TimeEntries {
			fmt.Fprintf(&builder, "  [%d] %s\n", i, formatEntryRange(entry, now))
		}
	}

	return builder.String()
}

func renderTaskNotes(value string) string {
	rendered := string(markdown.Render(taskDetailLineWidth, 2, []byte(value)))
	if strings.TrimSpace(rendered) == "" {
		return "-"
	}
	return rendered
}

// wrapTaskText wraps long single-line values so the detail view stays
// readable on narrow terminals.
func wrapTaskText(value string) string {
	return wordwrap.String(value, taskDetailLineWidth)
}
