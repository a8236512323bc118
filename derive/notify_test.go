package derive

import (
	"strings"
	"testing"
	"time"

	"github.com/amonks/taskdeck/task"
)

func TestNotifications_OverdueAndDueToday(t *testing.T) {
	now := testClock
	tasks := []task.Task{
		makeTask("n1", "Late report", func(t *task.Task) { t.Deadline = now.Add(-2 * time.Hour) }),
		makeTask("n2", "Evening errand", func(t *task.Task) { t.Deadline = now.Add(3 * time.Hour) }),
		makeTask("n3", "Next week", func(t *task.Task) { t.Deadline = now.AddDate(0, 0, 7) }),
		// Completed tasks never notify.
		makeTask("n4", "Done late", func(t *task.Task) {
			t.Status = task.StatusCompleted
			t.Deadline = now.Add(-time.Hour)
		}),
	}

	feed := Notifications(tasks, nil, now)
	if len(feed) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(feed))
	}

	byType := map[NotificationType]Notification{}
	for _, item := range feed {
		byType[item.Type] = item
	}
	overdue, ok := byType[NotifyOverdue]
	if !ok || overdue.TaskID != "n1" || !strings.Contains(overdue.Message, "Late report") {
		t.Errorf("overdue item wrong: %+v", overdue)
	}
	due, ok := byType[NotifyDueToday]
	if !ok || due.TaskID != "n2" {
		t.Errorf("due-today item wrong: %+v", due)
	}
}

func TestNotifications_MergesRecentActivity(t *testing.T) {
	now := testClock
	activities := []task.Activity{
		{ID: "a1", Action: task.ActionCreated, Target: "One", Timestamp: now.Add(-time.Minute), User: "Administrator"},
		{ID: "a2", Action: task.ActionUpdated, Target: "Two", Timestamp: now.Add(-2 * time.Minute), User: "Administrator"},
		{ID: "a3", Action: task.ActionDeleted, Target: "Three", Timestamp: now.Add(-3 * time.Minute), User: "Administrator"},
		{ID: "a4", Action: task.ActionMoved, Target: "Four", Timestamp: now.Add(-4 * time.Minute), User: "Administrator"},
	}

	feed := Notifications(nil, activities, now)
	if len(feed) != 3 {
		t.Fatalf("only the 3 most recent activity entries join the feed, got %d", len(feed))
	}
	for _, item := range feed {
		if item.Type != NotifyActivity {
			t.Errorf("unexpected type %q", item.Type)
		}
		if item.ID == "act-a4" {
			t.Error("fourth entry should be excluded")
		}
	}
	if !strings.Contains(feed[0].Message, "Created: One by Administrator") {
		t.Errorf("message format wrong: %q", feed[0].Message)
	}
}

func TestNotifications_SortedNewestFirst(t *testing.T) {
	now := testClock
	tasks := []task.Task{
		makeTask("n5", "Old overdue", func(t *task.Task) { t.Deadline = now.Add(-48 * time.Hour) }),
	}
	activities := []task.Activity{
		{ID: "a5", Action: task.ActionCreated, Target: "Fresh", Timestamp: now.Add(-time.Minute), User: "Administrator"},
	}

	feed := Notifications(tasks, activities, now)
	if len(feed) != 2 {
		t.Fatalf("expected 2 items, got %d", len(feed))
	}
	if feed[0].Type != NotifyActivity || feed[1].Type != NotifyOverdue {
		t.Errorf("expected newest first, got %q then %q", feed[0].Type, feed[1].Type)
	}
}
