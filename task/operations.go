package task

import (
	"fmt"
	"time"
)

// Draft holds the user-editable fields of a task. The same draft shape
// drives both create and update; validation is identical for both.
type Draft struct {
	Title       string
	Description string
	StartDate   time.Time
	Deadline    time.Time

	// Priority defaults to Medium when empty.
	Priority Priority

	// Category defaults to Work when empty.
	Category Category

	ImageURL string

	// Subtasks in display order. Entries without IDs are assigned one.
	Subtasks []Subtask
}

func (d *Draft) applyDefaults() {
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if d.Category == "" {
		d.Category = CategoryWork
	}
}

func (s *Store) assignSubtaskIDs(subs []Subtask, now time.Time) []Subtask {
	if subs == nil {
		return nil
	}
	assigned := make([]Subtask, len(subs))
	copy(assigned, subs)
	for i := range assigned {
		if assigned[i].ID == "" {
			assigned[i].ID = NewID(fmt.Sprintf("subtask-%d-%s", i, assigned[i].Title), now)
		}
	}
	return assigned
}

// Create validates the draft and appends a new pending task.
func (s *Store) Create(draft Draft) (*Task, error) {
	draft.applyDefaults()
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	now := s.now()
	created := Task{
		ID:          NewID(draft.Title, now),
		Title:       draft.Title,
		Description: draft.Description,
		StartDate:   draft.StartDate,
		Deadline:    draft.Deadline,
		Priority:    draft.Priority,
		Category:    draft.Category,
		Status:      StatusPending,
		ImageURL:    draft.ImageURL,
		Subtasks:    s.assignSubtaskIDs(draft.Subtasks, now),
		CreatedAt:   now,
	}
	if created.Subtasks == nil {
		created.Subtasks = []Subtask{}
	}

	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, created)
	if err := s.writeTasks(tasks); err != nil {
		return nil, err
	}

	if err := s.logActivity(ActionCreated, created.Title); err != nil {
		return nil, err
	}
	result := created.Clone()
	return &result, nil
}

// Update validates the draft and merges it into an existing task.
// ID, creation time, status, and lifecycle flags are preserved.
func (s *Store) Update(id string, draft Draft) (*Task, error) {
	draft.applyDefaults()
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	var updated *Task
	err := s.mutate(id, func(t *Task) error {
		t.Title = draft.Title
		t.Description = draft.Description
		t.StartDate = draft.StartDate
		t.Deadline = draft.Deadline
		t.Priority = draft.Priority
		t.Category = draft.Category
		t.ImageURL = draft.ImageURL
		if draft.Subtasks != nil {
			t.Subtasks = s.assignSubtaskIDs(draft.Subtasks, s.now())
		}
		return nil
	}, &updated)
	if err != nil {
		return nil, err
	}

	if err := s.logActivity(ActionUpdated, updated.Title); err != nil {
		return nil, err
	}
	return updated, nil
}

// SoftDelete moves a task to the recycle bin. Idempotent: deleting an
// already-deleted task refreshes the deletion timestamp.
func (s *Store) SoftDelete(id string) (*Task, error) {
	var deleted *Task
	err := s.mutate(id, func(t *Task) error {
		stamp := s.now()
		t.DeletedAt = &stamp
		return nil
	}, &deleted)
	if err != nil {
		return nil, err
	}

	if err := s.logActivity(ActionDeleted, deleted.Title); err != nil {
		return nil, err
	}
	return deleted, nil
}

// Restore takes a task out of the recycle bin.
func (s *Store) Restore(id string) (*Task, error) {
	var restored *Task
	err := s.mutate(id, func(t *Task) error {
		t.DeletedAt = nil
		return nil
	}, &restored)
	if err != nil {
		return nil, err
	}

	if err := s.logActivity(ActionRestored, restored.Title); err != nil {
		return nil, err
	}
	return restored, nil
}

// Purge permanently erases a task. Irreversible. The activity entry is
// written before the record disappears, using the pre-erase title, and
// the erased record is returned to the caller.
func (s *Store) Purge(id string) (*Task, error) {
	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range tasks {
		if tasks[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	erased := tasks[index].Clone()
	tasks = append(tasks[:index], tasks[index+1:]...)
	if err := s.writeTasks(tasks); err != nil {
		return nil, err
	}

	if err := s.logActivity(ActionDeleted, erased.Title); err != nil {
		return nil, err
	}
	return &erased, nil
}

// ToggleArchive flips the archive flag.
func (s *Store) ToggleArchive(id string) (*Task, error) {
	var toggled *Task
	err := s.mutate(id, func(t *Task) error {
		t.Archived = !t.Archived
		return nil
	}, &toggled)
	if err != nil {
		return nil, err
	}

	action := ActionArchived
	if !toggled.Archived {
		action = ActionRestored
	}
	if err := s.logActivity(action, toggled.Title); err != nil {
		return nil, err
	}
	return toggled, nil
}

// ToggleStatus flips a task between Pending and Completed.
func (s *Store) ToggleStatus(id string) (*Task, error) {
	var toggled *Task
	err := s.mutate(id, func(t *Task) error {
		t.Status = t.Status.Toggle()
		return nil
	}, &toggled)
	if err != nil {
		return nil, err
	}

	action := ActionCompleted
	if toggled.Status == StatusPending {
		action = ActionReopened
	}
	if err := s.logActivity(action, toggled.Title); err != nil {
		return nil, err
	}
	return toggled, nil
}

// ToggleSubtask flips one subtask's completion and recomputes the
// parent status. Subtask toggles write no activity entry: checklist
// churn would drown the feed.
func (s *Store) ToggleSubtask(taskID, subtaskID string) (*Task, error) {
	var toggled *Task
	err := s.mutate(taskID, func(t *Task) error {
		found := false
		for i := range t.Subtasks {
			if t.Subtasks[i].ID == subtaskID {
				t.Subtasks[i].Completed = !t.Subtasks[i].Completed
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrSubtaskNotFound, subtaskID)
		}
		recomputeStatus(t)
		return nil
	}, &toggled)
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// recomputeStatus derives the parent status from the checklist. This is
// the single place the subtask-to-status invariant lives: a non-empty,
// fully completed checklist forces Completed; a checklist with any open
// item forces Pending, overriding a directly set status. A task without
// subtasks is never auto-toggled.
func recomputeStatus(t *Task) {
	if len(t.Subtasks) == 0 {
		return
	}
	if t.AllSubtasksCompleted() {
		t.Status = StatusCompleted
	} else {
		t.Status = StatusPending
	}
}

// Reschedule moves a task so it starts on the given calendar day,
// keeping the original clock time and the original duration.
func (s *Store) Reschedule(id string, day time.Time) (*Task, error) {
	var moved *Task
	err := s.mutate(id, func(t *Task) error {
		oldStart := t.StartDate
		duration := t.Deadline.Sub(oldStart)

		newStart := time.Date(day.Year(), day.Month(), day.Day(),
			oldStart.Hour(), oldStart.Minute(), oldStart.Second(), oldStart.Nanosecond(),
			oldStart.Location())

		t.StartDate = newStart
		t.Deadline = newStart.Add(duration)
		return nil
	}, &moved)
	if err != nil {
		return nil, err
	}

	if err := s.logActivity(ActionMoved, moved.Title); err != nil {
		return nil, err
	}
	return moved, nil
}

// Replace swaps the entire task collection and logs one aggregate
// System entry. Used by JSON import and demo-data reset.
func (s *Store) Replace(tasks []Task, note string) error {
	for i := range tasks {
		if err := ValidateTask(&tasks[i]); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}
	if err := s.writeTasks(tasks); err != nil {
		return err
	}
	return s.logActivity(ActionSystem, note)
}

// Append adds tasks to the existing collection and logs one aggregate
// System entry. Used by CSV import.
func (s *Store) Append(tasks []Task, note string) error {
	for i := range tasks {
		if err := ValidateTask(&tasks[i]); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}

	existing, err := s.readTasks()
	if err != nil {
		return err
	}
	existing = append(existing, tasks...)
	if err := s.writeTasks(existing); err != nil {
		return err
	}
	return s.logActivity(ActionSystem, note)
}

// mutate reads the collection, applies fn to the task with the given
// ID, validates it, and writes the collection back. A copy of the
// mutated task is stored in out. Validation or fn failure leaves the
// store unchanged.
func (s *Store) mutate(id string, fn func(*Task) error, out **Task) error {
	tasks, err := s.readTasks()
	if err != nil {
		return err
	}

	index := -1
	for i := range tasks {
		if tasks[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := fn(&tasks[index]); err != nil {
		return err
	}
	if err := ValidateTask(&tasks[index]); err != nil {
		return err
	}

	if err := s.writeTasks(tasks); err != nil {
		return err
	}

	mutated := tasks[index].Clone()
	*out = &mutated
	return nil
}
