// Package task implements the task store at the heart of taskdeck.
//
// Tasks live in a JSON file in the state directory, alongside a capped
// activity log recording user-visible mutations. The public API mirrors
// the CLI commands:
//   - Create, Update, ToggleStatus, ToggleSubtask for editing
//   - SoftDelete, Restore, Purge, ToggleArchive for lifecycle
//   - Reschedule for calendar drags
//   - Tasks, Get, Activities for querying
package task

// Priority is the importance level of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities returns all valid priority values, highest first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range Priorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Rank returns the sort rank for a priority (higher sorts first).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Category groups tasks by area of life.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryHealth   Category = "Health"
	CategoryOther    Category = "Other"
)

// Categories returns all valid category values.
func Categories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth, CategoryOther}
}

// IsValid returns true if the category is a known valid value.
func (c Category) IsValid() bool {
	for _, valid := range Categories() {
		if c == valid {
			return true
		}
	}
	return false
}

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// MaxTitleLength is the maximum allowed length for a task title.
const MaxTitleLength = 500
