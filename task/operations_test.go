package task

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestStore_Create(t *testing.T) {
	store := openTestStore(t)

	created := mustCreate(t, store, validDraft("Review Q3 Budget"))

	if created.Title != "Review Q3 Budget" {
		t.Errorf("expected title 'Review Q3 Budget', got %q", created.Title)
	}
	if created.Status != StatusPending {
		t.Errorf("expected status Pending, got %q", created.Status)
	}
	if created.Priority != PriorityMedium {
		t.Errorf("expected default priority Medium, got %q", created.Priority)
	}
	if created.Category != CategoryWork {
		t.Errorf("expected default category Work, got %q", created.Category)
	}
	if len(created.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if created.Deleted() || created.Archived {
		t.Error("new task should be active")
	}
}

func TestStore_Create_InvalidDraftLeavesStoreUnchanged(t *testing.T) {
	store := openTestStore(t)
	mustCreate(t, store, validDraft("Existing"))

	bad := validDraft("Doctor Appointment")
	bad.Deadline = bad.StartDate.Add(-time.Hour)

	if _, err := store.Create(bad); !errors.Is(err, ErrDeadlineBeforeStart) {
		t.Fatalf("got %v, want ErrDeadlineBeforeStart", err)
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("failed to read tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("store size changed on failed create: %d tasks", len(tasks))
	}
}

func TestStore_Create_AssignsSubtaskIDs(t *testing.T) {
	store := openTestStore(t)

	draft := validDraft("Design New Landing Page")
	draft.Subtasks = []Subtask{{Title: "Wireframe"}, {Title: "Palette"}}

	created := mustCreate(t, store, draft)

	if len(created.Subtasks) != 2 {
		t.Fatalf("expected 2 subtasks, got %d", len(created.Subtasks))
	}
	for i, sub := range created.Subtasks {
		if sub.ID == "" {
			t.Errorf("subtask %d has no ID", i)
		}
		if sub.Completed {
			t.Errorf("subtask %d should start incomplete", i)
		}
	}
	if created.Subtasks[0].ID == created.Subtasks[1].ID {
		t.Error("subtask IDs must be unique")
	}
}

func TestStore_Update(t *testing.T) {
	store := openTestStore(t)
	created := mustCreate(t, store, validDraft("Fix Bug #404"))

	draft := validDraft("Fix Bug #405")
	draft.Priority = PriorityHigh
	draft.Category = CategoryPersonal
	draft.Description = "Regression from last release"

	updated, err := store.Update(created.ID, draft)
	if err != nil {
		t.Fatalf("failed to update: %v", err)
	}

	if updated.ID != created.ID {
		t.Error("update must preserve the ID")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update must preserve CreatedAt")
	}
	if updated.Title != "Fix Bug #405" || updated.Priority != PriorityHigh {
		t.Errorf("fields not merged: %+v", updated)
	}
	if updated.Status != StatusPending {
		t.Error("update must preserve status")
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Update("missing1", validDraft("x")); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_SoftDeleteRestore_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	draft := validDraft("Clean Garage")
	draft.Subtasks = []Subtask{{Title: "Sort boxes"}}
	created := mustCreate(t, store, draft)

	deleted, err := store.SoftDelete(created.ID)
	if err != nil {
		t.Fatalf("failed to soft delete: %v", err)
	}
	if !deleted.Deleted() {
		t.Fatal("expected DeletedAt to be set")
	}

	restored, err := store.Restore(created.ID)
	if err != nil {
		t.Fatalf("failed to restore: %v", err)
	}
	if restored.Deleted() {
		t.Fatal("expected DeletedAt to be cleared")
	}

	// The restored record matches the original exactly.
	if fmt.Sprintf("%+v", *restored) != fmt.Sprintf("%+v", *created) {
		t.Errorf("restore did not reproduce the original record:\n got %+v\nwant %+v", *restored, *created)
	}
}

func TestStore_SoftDelete_Idempotent(t *testing.T) {
	store := openTestStore(t)
	created := mustCreate(t, store, validDraft("Update Portfolio"))

	first, err := store.SoftDelete(created.ID)
	if err != nil {
		t.Fatalf("first delete: %v", err)
	}
	second, err := store.SoftDelete(created.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if second.DeletedAt == nil || first.DeletedAt == nil {
		t.Fatal("expected deletion stamps")
	}
	if second.DeletedAt.Before(*first.DeletedAt) {
		t.Error("second delete should refresh the timestamp")
	}
}

func TestStore_Purge(t *testing.T) {
	store := openTestStore(t)
	created := mustCreate(t, store, validDraft("Client Call"))
	if _, err := store.SoftDelete(created.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	erased, err := store.Purge(created.ID)
	if err != nil {
		t.Fatalf("failed to purge: %v", err)
	}
	if erased.Title != "Client Call" {
		t.Errorf("expected erased record back, got %+v", erased)
	}

	// Gone from every view, including the recycle bin.
	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("read tasks: %v", err)
	}
	for _, task := range tasks {
		if task.ID == created.ID {
			t.Fatal("purged task still present in the store")
		}
	}

	if _, err := store.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}

	// The erase is recorded with the pre-erase title.
	activities, err := store.Activities()
	if err != nil {
		t.Fatalf("read activities: %v", err)
	}
	if activities[0].Action != ActionDeleted || activities[0].Target != "Client Call" {
		t.Errorf("expected Deleted entry for 'Client Call', got %+v", activities[0])
	}
}

func TestStore_ToggleArchive(t *testing.T) {
	store := openTestStore(t)
	created := mustCreate(t, store, validDraft("Team Meeting"))

	archived, err := store.ToggleArchive(created.ID)
	if err != nil {
		t.Fatalf("failed to archive: %v", err)
	}
	if !archived.Archived {
		t.Error("expected Archived true")
	}

	unarchived, err := store.ToggleArchive(created.ID)
	if err != nil {
		t.Fatalf("failed to unarchive: %v", err)
	}
	if unarchived.Archived {
		t.Error("expected Archived false")
	}

	activities, err := store.Activities()
	if err != nil {
		t.Fatalf("read activities: %v", err)
	}
	if activities[0].Action != ActionRestored || activities[1].Action != ActionArchived {
		t.Errorf("expected Restored then Archived at head, got %v, %v", activities[0].Action, activities[1].Action)
	}
}

func TestStore_ToggleStatus(t *testing.T) {
	store := openTestStore(t)
	created := mustCreate(t, store, validDraft("Buy Groceries"))

	completed, err := store.ToggleStatus(created.ID)
	if err != nil {
		t.Fatalf("failed to toggle: %v", err)
	}
	if completed.Status != StatusCompleted {
		t.Errorf("expected Completed, got %q", completed.Status)
	}

	reopened, err := store.ToggleStatus(created.ID)
	if err != nil {
		t.Fatalf("failed to toggle back: %v", err)
	}
	if reopened.Status != StatusPending {
		t.Errorf("expected Pending, got %q", reopened.Status)
	}

	activities, err := store.Activities()
	if err != nil {
		t.Fatalf("read activities: %v", err)
	}
	if activities[0].Action != ActionReopened || activities[1].Action != ActionCompleted {
		t.Errorf("expected Reopened then Completed at head, got %v, %v", activities[0].Action, activities[1].Action)
	}
}

func TestStore_ToggleSubtask_StatusPropagation(t *testing.T) {
	store := openTestStore(t)
	draft := validDraft("Doctor Appointment")
	draft.Subtasks = []Subtask{{Title: "Book slot"}, {Title: "Collect referral"}}
	created := mustCreate(t, store, draft)

	first, err := store.ToggleSubtask(created.ID, created.Subtasks[0].ID)
	if err != nil {
		t.Fatalf("failed to toggle subtask: %v", err)
	}
	if first.Status != StatusPending {
		t.Errorf("one of two complete: expected Pending, got %q", first.Status)
	}

	both, err := store.ToggleSubtask(created.ID, created.Subtasks[1].ID)
	if err != nil {
		t.Fatalf("failed to toggle subtask: %v", err)
	}
	if both.Status != StatusCompleted {
		t.Errorf("all complete: expected Completed, got %q", both.Status)
	}

	// Un-completing any one sets the parent back to Pending, even if
	// the user completed it directly in the meantime.
	undone, err := store.ToggleSubtask(created.ID, created.Subtasks[0].ID)
	if err != nil {
		t.Fatalf("failed to toggle subtask: %v", err)
	}
	if undone.Status != StatusPending {
		t.Errorf("expected Pending after un-completing, got %q", undone.Status)
	}
}

func TestStore_ToggleSubtask_TwiceRestoresOriginal(t *testing.T) {
	store := openTestStore(t)
	draft := validDraft("Update Portfolio")
	draft.Subtasks = []Subtask{{Title: "Screenshots"}}
	created := mustCreate(t, store, draft)

	once, err := store.ToggleSubtask(created.ID, created.Subtasks[0].ID)
	if err != nil {
		t.Fatalf("failed to toggle: %v", err)
	}
	if !once.Subtasks[0].Completed || once.Status != StatusCompleted {
		t.Fatalf("expected completed subtask and Completed parent, got %+v", once)
	}

	twice, err := store.ToggleSubtask(created.ID, created.Subtasks[0].ID)
	if err != nil {
		t.Fatalf("failed to toggle back: %v", err)
	}
	if twice.Subtasks[0].Completed != created.Subtasks[0].Completed {
		t.Error("double toggle should restore the subtask state")
	}
	if twice.Status != created.Status {
		t.Errorf("double toggle should restore the derived status: got %q, want %q", twice.Status, created.Status)
	}
}

func TestStore_ToggleSubtask_UnknownSubtask(t *testing.T) {
	store := openTestStore(t)
	created := mustCreate(t, store, validDraft("No checklist"))

	_, err := store.ToggleSubtask(created.ID, "missing1")
	if !errors.Is(err, ErrSubtaskNotFound) {
		t.Errorf("got %v, want ErrSubtaskNotFound", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("subtask errors should wrap ErrNotFound, got %v", err)
	}
}

func TestStore_StatusToggle_IgnoresEmptyChecklist(t *testing.T) {
	store := openTestStore(t)
	created := mustCreate(t, store, validDraft("Zero subtasks"))

	// A task without subtasks keeps whatever status the user set; only
	// ToggleSubtask triggers recomputation and it needs a subtask.
	completed, err := store.ToggleStatus(created.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if completed.Status != StatusCompleted {
		t.Errorf("expected Completed, got %q", completed.Status)
	}
}

func TestStore_Reschedule_KeepsTimeAndDuration(t *testing.T) {
	store := openTestStore(t)

	draft := Draft{
		Title:     "Design review",
		StartDate: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Deadline:  time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	created := mustCreate(t, store, draft)

	moved, err := store.Reschedule(created.ID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("failed to reschedule: %v", err)
	}

	wantStart := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	wantDeadline := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	if !moved.StartDate.Equal(wantStart) {
		t.Errorf("start = %v, want %v", moved.StartDate, wantStart)
	}
	if !moved.Deadline.Equal(wantDeadline) {
		t.Errorf("deadline = %v, want %v", moved.Deadline, wantDeadline)
	}

	activities, err := store.Activities()
	if err != nil {
		t.Fatalf("read activities: %v", err)
	}
	if activities[0].Action != ActionMoved {
		t.Errorf("expected Moved entry, got %v", activities[0].Action)
	}
}

func TestStore_ActivityLog_CappedAtLimit(t *testing.T) {
	store := openTestStore(t)
	created := mustCreate(t, store, validDraft("Churn"))

	// Each toggle logs one entry; push well past the cap.
	for i := 0; i < ActivityLimit+10; i++ {
		if _, err := store.ToggleStatus(created.ID); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}

	activities, err := store.Activities()
	if err != nil {
		t.Fatalf("read activities: %v", err)
	}
	if len(activities) != ActivityLimit {
		t.Errorf("expected %d entries, got %d", ActivityLimit, len(activities))
	}

	// Newest first: the head reflects the most recent toggle, and the
	// original Created entry has been evicted.
	for _, entry := range activities {
		if entry.Action == ActionCreated {
			t.Error("oldest entry should have been evicted")
		}
	}
}

func TestStore_Replace(t *testing.T) {
	store := openTestStore(t)
	mustCreate(t, store, validDraft("Old"))

	incoming := []Task{{
		ID:        "import01",
		Title:     "Imported task",
		StartDate: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Deadline:  time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		Priority:  PriorityLow,
		Category:  CategoryOther,
		Status:    StatusPending,
		Subtasks:  []Subtask{},
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}}

	if err := store.Replace(incoming, "Imported 1 tasks from JSON"); err != nil {
		t.Fatalf("failed to replace: %v", err)
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("read tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "import01" {
		t.Errorf("expected replaced collection, got %+v", tasks)
	}

	activities, err := store.Activities()
	if err != nil {
		t.Fatalf("read activities: %v", err)
	}
	if activities[0].Action != ActionSystem {
		t.Errorf("expected one aggregate System entry, got %v", activities[0].Action)
	}
}

func TestStore_Append(t *testing.T) {
	store := openTestStore(t)
	mustCreate(t, store, validDraft("Existing"))

	incoming := []Task{{
		ID:        "import02",
		Title:     "CSV row",
		StartDate: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Deadline:  time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		Priority:  PriorityHigh,
		Category:  CategoryWork,
		Status:    StatusPending,
		Subtasks:  []Subtask{},
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}}

	if err := store.Append(incoming, "Imported 1 tasks from CSV"); err != nil {
		t.Fatalf("failed to append: %v", err)
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("read tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks after append, got %d", len(tasks))
	}
}

func TestStore_Replace_RejectsInvalidRecord(t *testing.T) {
	store := openTestStore(t)
	mustCreate(t, store, validDraft("Keep me"))

	bad := []Task{{ID: "x", Title: ""}}
	if err := store.Replace(bad, "bad import"); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}

	tasks, err := store.Tasks()
	if err != nil {
		t.Fatalf("read tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Keep me" {
		t.Error("failed replace must leave the store untouched")
	}
}
