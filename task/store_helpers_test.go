package task

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), OpenOptions{User: "Administrator"})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return store
}

func validDraft(title string) Draft {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return Draft{
		Title:     title,
		StartDate: start,
		Deadline:  start.Add(24 * time.Hour),
	}
}

func mustCreate(t *testing.T, store *Store, draft Draft) *Task {
	t.Helper()
	created, err := store.Create(draft)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return created
}
