package derive

import (
	"time"

	"github.com/amonks/taskdeck/task"
)

// PriorityCount is one bucket of the priority distribution chart.
type PriorityCount struct {
	Priority task.Priority
	Count    int
}

// PriorityDistribution counts pending active tasks per priority.
// Buckets are zero-filled and ordered High, Medium, Low.
func PriorityDistribution(tasks []task.Task) []PriorityCount {
	counts := make(map[task.Priority]int)
	for _, t := range tasks {
		if t.Active() && t.Status == task.StatusPending {
			counts[t.Priority]++
		}
	}

	distribution := make([]PriorityCount, 0, len(task.Priorities()))
	for _, p := range task.Priorities() {
		distribution = append(distribution, PriorityCount{Priority: p, Count: counts[p]})
	}
	return distribution
}

// SeriesDays is the span of the activity chart.
const SeriesDays = 30

// SeriesPoint is one day of the creation-activity chart.
type SeriesPoint struct {
	Day       time.Time
	Completed int
	Pending   int
}

// ActivitySeries buckets active tasks by creation day over the last
// SeriesDays calendar days, today included, split by status. Buckets
// compare the full calendar date, so the same day-of-month in another
// month or year never aliases in.
func ActivitySeries(tasks []task.Task, now time.Time) []SeriesPoint {
	series := make([]SeriesPoint, 0, SeriesDays)
	for i := SeriesDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		point := SeriesPoint{Day: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())}

		for _, t := range tasks {
			if !t.Active() || !sameDay(t.CreatedAt, day) {
				continue
			}
			if t.Status == task.StatusCompleted {
				point.Completed++
			} else {
				point.Pending++
			}
		}

		series = append(series, point)
	}
	return series
}
