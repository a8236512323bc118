package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/taskdeck/internal/ui"
	"github.com/amonks/taskdeck/task"
)

// printTaskTable prints tasks in a table format.
func printTaskTable(tasks []task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}
	fmt.Print(formatTaskTable(tasks, now))
}

func formatTaskTable(tasks []task.Task, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "PRI", "CATEGORY", "STATUS", "DUE", "TITLE"}, len(tasks))

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	prefixes := ui.UniqueIDPrefixLengths(ids)

	for _, t := range tasks {
		due := ui.FormatDue(t.Deadline, now)
		if t.Status == task.StatusPending && t.Deadline.Before(now) {
			due = ui.Overdue(due)
		}
		builder.AddRow([]string{
			ui.HighlightID(t.ID, prefixes[strings.ToLower(t.ID)]),
			ui.PriorityBadge(t.Priority),
			string(t.Category),
			ui.StatusBadge(t.Status),
			due,
			ui.TruncateCell(t.Title),
		})
	}

	return builder.String()
}
