package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Austuin/HoneyBadgerTool/internal/ui"
	"github.com/Austuin/HoneyBadgerTool/pro"
)

// printJobTable prints jobs in a table format.
func printJobTable(jobs []pro.JobView) {
	if len(jobs) == 0 {
		fmt.Println("No jobs found.")
		return
	}

	fmt.Print(formatJobTable(jobs, time.Now()))
}

func formatJobTable(jobs []pro.JobView, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "STATUS", "WORKERS", "AGE", "TIME", "NAME"}, len(jobs))

	for _, j := range jobs {
		builder.AddRow([]string{
			strconv.FormatInt(j.ID, 10),
			jobStatus(j),
			fmt.Sprintf("%d/%d", j.CurrentWorkers, j.MaxWorkers),
			ui.FormatTimeAgeShort(j.CreatedAt, now),
			formatJobHours(j.TotalTimeSeconds),
			ui.TruncateTableCell(j.Name),
		})
	}

	return builder.String()
}

func jobStatus(j pro.JobView) string {
	switch {
	case j.Archived:
		return ui.ColorArchived("done")
	case j.MarkedForReview:
		return ui.ColorReview("review")
	default:
		return "open"
	}
}

func formatJobHours(seconds int64) string {
	return ui.FormatHours(float64(seconds) / 3600)
}

func formatJobDetail(view pro.JobView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Job:      %d\n", view.ID)
	fmt.Fprintf(&b, "Name:     %s\n", view.Name)
	fmt.Fprintf(&b, "Status:   %s\n", jobStatus(view))
	fmt.Fprintf(&b, "Workers:  %d/%d\n", view.CurrentWorkers, view.MaxWorkers)
	fmt.Fprintf(&b, "Created:  %s\n", ui.FormatClock(view.CreatedAt))
	if view.CompletedAt != nil {
		fmt.Fprintf(&b, "Finished: %s\n", ui.FormatClock(*view.CompletedAt))
	}
	fmt.Fprintf(&b, "Time:     %s\n", formatJobHours(view.TotalTimeSeconds))

	if view.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", view.Description)
	}
	if view.Requirements != "" {
		fmt.Fprintf(&b, "\nRequirements:\n%s\n", view.Requirements)
	}

	if len(view.Assignments) > 0 {
		b.WriteString("\nAssigned:\n")
		for _, a := range view.Assignments {
			marker := ""
			if a.ClockedIn {
				marker = " " + ui.ColorClockedIn("(on the clock)")
			}
			fmt.Fprintf(&b, "  %s [%s]%s\n", a.Username, a.Initials, marker)
		}
	}

	return b.String()
}
