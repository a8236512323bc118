package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is the base error for all draft validation failures.
	ErrValidation = errors.New("invalid task")

	// ErrNotFound is returned when a task with the given ID doesn't exist.
	ErrNotFound = errors.New("task not found")

	// ErrSubtaskNotFound is returned when a subtask ID doesn't exist on
	// the addressed task.
	ErrSubtaskNotFound = fmt.Errorf("%w: no such subtask", ErrNotFound)

	// ErrTitleRequired is returned when a draft title is empty.
	ErrTitleRequired = fmt.Errorf("%w: title is required", ErrValidation)

	// ErrTitleTooLong is returned when a title exceeds MaxTitleLength.
	ErrTitleTooLong = fmt.Errorf("%w: title exceeds maximum length", ErrValidation)

	// ErrStartDateRequired is returned when a draft has no start date.
	ErrStartDateRequired = fmt.Errorf("%w: start date is required", ErrValidation)

	// ErrDeadlineRequired is returned when a draft has no deadline.
	ErrDeadlineRequired = fmt.Errorf("%w: deadline is required", ErrValidation)

	// ErrDeadlineBeforeStart is returned when a deadline precedes the
	// start date.
	ErrDeadlineBeforeStart = fmt.Errorf("%w: deadline cannot be before start date", ErrValidation)

	// ErrInvalidPriority is returned for an unknown priority value.
	ErrInvalidPriority = fmt.Errorf("%w: unknown priority", ErrValidation)

	// ErrInvalidCategory is returned for an unknown category value.
	ErrInvalidCategory = fmt.Errorf("%w: unknown category", ErrValidation)

	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = fmt.Errorf("%w: unknown status", ErrValidation)
)

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidateDraft checks a draft ahead of create or update. The store is
// left untouched when validation fails.
func ValidateDraft(d Draft) error {
	if err := ValidateTitle(d.Title); err != nil {
		return err
	}
	if d.StartDate.IsZero() {
		return ErrStartDateRequired
	}
	if d.Deadline.IsZero() {
		return ErrDeadlineRequired
	}
	if d.Deadline.Before(d.StartDate) {
		return ErrDeadlineBeforeStart
	}
	if d.Priority != "" && !d.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, d.Priority)
	}
	if d.Category != "" && !d.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, d.Category)
	}
	return nil
}

// ValidateTask checks a full task record, including imported ones.
func ValidateTask(t *Task) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.Deadline.Before(t.StartDate) {
		return ErrDeadlineBeforeStart
	}
	return nil
}
