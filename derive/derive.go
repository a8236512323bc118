// Package derive computes the read models every surface consumes:
// dashboard stats, chart series, notifications, filtered task views,
// and the kanban grouping.
//
// Everything here is a pure function of the task collection, the
// activity log, and an explicit clock. Nothing is cached; callers
// recompute on every read.
package derive

import (
	"sort"
	"strings"
	"time"

	"github.com/amonks/taskdeck/task"
)

// View selects the base set of tasks a surface shows.
type View string

const (
	ViewDashboard  View = "dashboard"
	ViewTasks      View = "tasks"
	ViewArchived   View = "archived"
	ViewRecycleBin View = "recycle_bin"
	ViewCalendar   View = "calendar"
)

// StatusFilter narrows a view by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "All"
	StatusActive    StatusFilter = "Active"
	StatusCompleted StatusFilter = "Completed"
)

// SortOrder selects how a filtered view is ordered.
type SortOrder string

const (
	// SortDeadline orders by deadline, soonest first.
	SortDeadline SortOrder = "deadline"

	// SortCreated orders by creation time, newest first.
	SortCreated SortOrder = "created"

	// SortPriority orders High before Medium before Low.
	SortPriority SortOrder = "priority"
)

// Query configures the filter pipeline. Zero values mean "no filter";
// the zero View is ViewTasks.
type Query struct {
	View View

	// Search is a case-insensitive substring match on the title.
	Search string

	Priority task.Priority
	Category task.Category
	Status   StatusFilter
	Sort     SortOrder
}

// Filter selects the base set for the query's view, applies search and
// field filters, and sorts. The sort is stable: ties keep insertion
// order.
func Filter(tasks []task.Task, q Query) []task.Task {
	base := baseSet(tasks, q.View)

	search := strings.ToLower(q.Search)
	var result []task.Task
	for _, t := range base {
		if search != "" && !strings.Contains(strings.ToLower(t.Title), search) {
			continue
		}
		if q.Priority != "" && t.Priority != q.Priority {
			continue
		}
		if q.Category != "" && t.Category != q.Category {
			continue
		}
		switch q.Status {
		case StatusActive:
			if t.Status != task.StatusPending {
				continue
			}
		case StatusCompleted:
			if t.Status != task.StatusCompleted {
				continue
			}
		}
		result = append(result, t)
	}

	switch q.Sort {
	case SortDeadline:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Deadline.Before(result[j].Deadline)
		})
	case SortCreated:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	case SortPriority:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority.Rank() > result[j].Priority.Rank()
		})
	}

	return result
}

// baseSet applies view membership. Deletion dominates archiving: a
// deleted task belongs to the recycle bin no matter its archive flag.
func baseSet(tasks []task.Task, view View) []task.Task {
	var base []task.Task
	for _, t := range tasks {
		switch view {
		case ViewRecycleBin:
			if t.Deleted() {
				base = append(base, t)
			}
		case ViewArchived:
			if t.Archived && !t.Deleted() {
				base = append(base, t)
			}
		default:
			if t.Active() {
				base = append(base, t)
			}
		}
	}
	return base
}

// Board is the two-column kanban grouping of an already-filtered set.
type Board struct {
	Pending   []task.Task
	Completed []task.Task
}

// GroupBoard splits tasks into kanban columns, preserving order.
func GroupBoard(tasks []task.Task) Board {
	var board Board
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			board.Completed = append(board.Completed, t)
		} else {
			board.Pending = append(board.Pending, t)
		}
	}
	return board
}

// sameDay reports whether two times fall on the same calendar day.
// Full year/month/day comparison; the original implementation compared
// day and month only, which aliased across years.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
