// Package calendar places tasks onto a month grid. Placement works at
// day granularity: a task occupies every calendar day from its start
// date through its deadline, regardless of time of day.
package calendar

import (
	"time"

	"github.com/amonks/taskdeck/task"
)

// DateInRange reports whether day falls within the task's span,
// inclusive on both ends. Only the calendar date matters.
func DateInRange(t task.Task, day time.Time) bool {
	d := dateOnly(day)
	start := dateOnly(t.StartDate)
	end := dateOnly(t.Deadline)
	return !d.Before(start) && !d.After(end)
}

// IsStartDay reports whether day is the task's start date.
func IsStartDay(t task.Task, day time.Time) bool {
	return sameDay(t.StartDate, day)
}

// TasksOn returns the active tasks whose span covers day, preserving
// input order.
func TasksOn(tasks []task.Task, day time.Time) []task.Task {
	var out []task.Task
	for _, t := range tasks {
		if !t.Active() {
			continue
		}
		if DateInRange(t, day) {
			out = append(out, t)
		}
	}
	return out
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first day of the month.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
