package task

import "time"

// Subtask is a checklist item owned by exactly one task.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is the central record of the store.
type Task struct {
	// ID is a unique identifier assigned at creation, never mutated.
	ID string `json:"id"`

	// Title is the short display string for the task.
	Title string `json:"title"`

	// Description provides additional context. May be empty.
	Description string `json:"description"`

	// StartDate is when work on the task begins.
	StartDate time.Time `json:"startDate"`

	// Deadline is when the task is due. Never before StartDate.
	Deadline time.Time `json:"deadline"`

	Priority Priority `json:"priority"`
	Category Category `json:"category"`

	// Status is Pending or Completed. Toggling a subtask recomputes it:
	// a non-empty, fully completed checklist forces Completed, anything
	// less forces Pending.
	Status Status `json:"status"`

	// ImageURL is an optional display-only attachment URL.
	ImageURL string `json:"imageUrl,omitempty"`

	// Subtasks in display order.
	Subtasks []Subtask `json:"subtasks"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"createdAt"`

	// DeletedAt marks the task soft-deleted (in the recycle bin) when
	// set. A deleted task is excluded from active and archived views
	// regardless of the Archived flag.
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Archived hides the task from default views without deleting it.
	Archived bool `json:"isArchived"`
}

// Deleted reports whether the task is in the recycle bin.
func (t *Task) Deleted() bool {
	return t.DeletedAt != nil
}

// Active reports whether the task appears in default views.
func (t *Task) Active() bool {
	return t.DeletedAt == nil && !t.Archived
}

// AllSubtasksCompleted reports whether the checklist is non-empty and
// fully completed.
func (t *Task) AllSubtasksCompleted() bool {
	if len(t.Subtasks) == 0 {
		return false
	}
	for _, sub := range t.Subtasks {
		if !sub.Completed {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	copied := t
	if t.Subtasks != nil {
		copied.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(copied.Subtasks, t.Subtasks)
	}
	if t.DeletedAt != nil {
		stamp := *t.DeletedAt
		copied.DeletedAt = &stamp
	}
	return copied
}
