package derive

import (
	"fmt"
	"sort"
	"time"

	"github.com/amonks/taskdeck/task"
)

// NotificationType classifies a notification feed item.
type NotificationType string

const (
	NotifyOverdue  NotificationType = "overdue"
	NotifyDueToday NotificationType = "due_today"
	NotifyActivity NotificationType = "activity"
)

// Notification is one item of the merged notification feed.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	Timestamp time.Time

	// TaskID is set for overdue/due-today items only.
	TaskID string
}

// recentActivityCount is how many log entries join the feed.
const recentActivityCount = 3

// Notifications merges overdue and due-today items for active pending
// tasks with the most recent activity entries, newest first.
func Notifications(tasks []task.Task, activities []task.Activity, now time.Time) []Notification {
	var feed []Notification

	for _, t := range tasks {
		if !t.Active() || t.Status != task.StatusPending {
			continue
		}
		switch {
		case t.Deadline.Before(now):
			feed = append(feed, Notification{
				ID:        "overdue-" + t.ID,
				Type:      NotifyOverdue,
				Message:   fmt.Sprintf("Task overdue: %s", t.Title),
				Timestamp: t.Deadline,
				TaskID:    t.ID,
			})
		case sameDay(t.Deadline, now):
			feed = append(feed, Notification{
				ID:        "due-" + t.ID,
				Type:      NotifyDueToday,
				Message:   fmt.Sprintf("Due today: %s", t.Title),
				Timestamp: t.Deadline,
				TaskID:    t.ID,
			})
		}
	}

	recent := activities
	if len(recent) > recentActivityCount {
		recent = recent[:recentActivityCount]
	}
	for _, entry := range recent {
		feed = append(feed, Notification{
			ID:        "act-" + entry.ID,
			Type:      NotifyActivity,
			Message:   fmt.Sprintf("%s: %s by %s", entry.Action, entry.Target, entry.User),
			Timestamp: entry.Timestamp,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	return feed
}
