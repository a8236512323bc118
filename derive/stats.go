package derive

import (
	"time"

	"github.com/amonks/taskdeck/task"
)

// Stats summarizes the active task set for the dashboard.
type Stats struct {
	Total     int
	Completed int
	Pending   int

	// Overdue counts pending tasks whose deadline has passed.
	Overdue int
}

// ComputeStats derives dashboard counters from the active set only;
// archived and deleted tasks are excluded.
func ComputeStats(tasks []task.Task, now time.Time) Stats {
	var stats Stats
	for _, t := range tasks {
		if !t.Active() {
			continue
		}
		stats.Total++
		if t.Status == task.StatusCompleted {
			stats.Completed++
			continue
		}
		stats.Pending++
		if t.Deadline.Before(now) {
			stats.Overdue++
		}
	}
	return stats
}
