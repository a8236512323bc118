package derive

import (
	"testing"
	"time"

	"github.com/amonks/taskdeck/task"
)

var testClock = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func makeTask(id, title string, mutate func(*task.Task)) task.Task {
	t := task.Task{
		ID:        id,
		Title:     title,
		StartDate: testClock.Add(-time.Hour),
		Deadline:  testClock.Add(24 * time.Hour),
		Priority:  task.PriorityMedium,
		Category:  task.CategoryWork,
		Status:    task.StatusPending,
		Subtasks:  []task.Subtask{},
		CreatedAt: testClock.Add(-48 * time.Hour),
	}
	if mutate != nil {
		mutate(&t)
	}
	return t
}

func deletedAt(stamp time.Time) *time.Time {
	return &stamp
}

func TestFilter_ViewBaseSets(t *testing.T) {
	tasks := []task.Task{
		makeTask("a1", "Active", nil),
		makeTask("a2", "Archived", func(t *task.Task) { t.Archived = true }),
		makeTask("a3", "Deleted", func(t *task.Task) { t.DeletedAt = deletedAt(testClock) }),
		makeTask("a4", "Deleted and archived", func(t *task.Task) {
			t.Archived = true
			t.DeletedAt = deletedAt(testClock)
		}),
	}

	tests := []struct {
		view View
		want []string
	}{
		{ViewTasks, []string{"a1"}},
		{ViewDashboard, []string{"a1"}},
		{ViewCalendar, []string{"a1"}},
		{ViewArchived, []string{"a2"}},
		// Deletion dominates archiving: a4 is in the bin, not archived.
		{ViewRecycleBin, []string{"a3", "a4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			got := Filter(tasks, Query{View: tt.view})
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tasks, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("task %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	tasks := []task.Task{
		makeTask("b1", "Review Q3 Budget", nil),
		makeTask("b2", "Buy Groceries", nil),
	}

	got := Filter(tasks, Query{Search: "budget"})
	if len(got) != 1 || got[0].ID != "b1" {
		t.Errorf("expected b1 only, got %+v", got)
	}
}

func TestFilter_FieldFilters(t *testing.T) {
	tasks := []task.Task{
		makeTask("c1", "High work", func(t *task.Task) { t.Priority = task.PriorityHigh }),
		makeTask("c2", "Low health", func(t *task.Task) {
			t.Priority = task.PriorityLow
			t.Category = task.CategoryHealth
		}),
		makeTask("c3", "Done", func(t *task.Task) { t.Status = task.StatusCompleted }),
	}

	if got := Filter(tasks, Query{Priority: task.PriorityHigh}); len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("priority filter: got %+v", got)
	}
	if got := Filter(tasks, Query{Category: task.CategoryHealth}); len(got) != 1 || got[0].ID != "c2" {
		t.Errorf("category filter: got %+v", got)
	}
	if got := Filter(tasks, Query{Status: StatusActive}); len(got) != 2 {
		t.Errorf("Active filter: got %d tasks, want 2", len(got))
	}
	if got := Filter(tasks, Query{Status: StatusCompleted}); len(got) != 1 || got[0].ID != "c3" {
		t.Errorf("Completed filter: got %+v", got)
	}
}

func TestFilter_Sorting(t *testing.T) {
	tasks := []task.Task{
		makeTask("d1", "Mid", func(t *task.Task) {
			t.Deadline = testClock.Add(48 * time.Hour)
			t.CreatedAt = testClock.Add(-2 * time.Hour)
		}),
		makeTask("d2", "Soonest, low", func(t *task.Task) {
			t.Deadline = testClock.Add(1 * time.Hour)
			t.Priority = task.PriorityLow
			t.CreatedAt = testClock.Add(-1 * time.Hour)
		}),
		makeTask("d3", "Latest, high", func(t *task.Task) {
			t.Deadline = testClock.Add(72 * time.Hour)
			t.Priority = task.PriorityHigh
			t.CreatedAt = testClock.Add(-3 * time.Hour)
		}),
	}

	byDeadline := Filter(tasks, Query{Sort: SortDeadline})
	if byDeadline[0].ID != "d2" || byDeadline[2].ID != "d3" {
		t.Errorf("deadline sort wrong: %s, %s, %s", byDeadline[0].ID, byDeadline[1].ID, byDeadline[2].ID)
	}

	byCreated := Filter(tasks, Query{Sort: SortCreated})
	if byCreated[0].ID != "d2" || byCreated[2].ID != "d3" {
		t.Errorf("created sort wrong: %s, %s, %s", byCreated[0].ID, byCreated[1].ID, byCreated[2].ID)
	}

	byPriority := Filter(tasks, Query{Sort: SortPriority})
	if byPriority[0].ID != "d3" || byPriority[2].ID != "d2" {
		t.Errorf("priority sort wrong: %s, %s, %s", byPriority[0].ID, byPriority[1].ID, byPriority[2].ID)
	}
}

func TestFilter_StableSortPreservesTies(t *testing.T) {
	tasks := []task.Task{
		makeTask("e1", "First", nil),
		makeTask("e2", "Second", nil),
		makeTask("e3", "Third", nil),
	}

	got := Filter(tasks, Query{Sort: SortPriority})
	if got[0].ID != "e1" || got[1].ID != "e2" || got[2].ID != "e3" {
		t.Errorf("equal priorities must keep insertion order: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestGroupBoard(t *testing.T) {
	tasks := []task.Task{
		makeTask("f1", "Open one", nil),
		makeTask("f2", "Done one", func(t *task.Task) { t.Status = task.StatusCompleted }),
		makeTask("f3", "Open two", nil),
	}

	board := GroupBoard(tasks)
	if len(board.Pending) != 2 || len(board.Completed) != 1 {
		t.Fatalf("got %d pending / %d completed, want 2/1", len(board.Pending), len(board.Completed))
	}
	if board.Pending[0].ID != "f1" || board.Pending[1].ID != "f3" {
		t.Error("board columns must preserve order")
	}
}
