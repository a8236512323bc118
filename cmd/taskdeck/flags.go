package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/amonks/taskdeck/derive"
	"github.com/amonks/taskdeck/task"
)

var (
	_ pflag.Value = (*enumValue)(nil)
	_ pflag.Value = (*dateValue)(nil)
)

// enumValue is a pflag.Value restricted to a fixed set of choices.
// Matching is case-insensitive; the stored value keeps canonical
// casing.
type enumValue struct {
	name    string
	choices []string
	value   *string
}

func newEnumValue(name string, target *string, choices ...string) *enumValue {
	return &enumValue{name: name, choices: choices, value: target}
}

func (e *enumValue) String() string { return *e.value }

func (e *enumValue) Set(v string) error {
	for _, choice := range e.choices {
		if strings.EqualFold(choice, v) {
			*e.value = choice
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(e.choices, ", "))
}

func (e *enumValue) Type() string { return e.name }

func priorityFlagValue(target *string) *enumValue {
	choices := make([]string, 0, 3)
	for _, p := range task.Priorities() {
		choices = append(choices, string(p))
	}
	return newEnumValue("priority", target, choices...)
}

func categoryFlagValue(target *string) *enumValue {
	choices := make([]string, 0, 5)
	for _, c := range task.Categories() {
		choices = append(choices, string(c))
	}
	return newEnumValue("category", target, choices...)
}

func statusFlagValue(target *string) *enumValue {
	return newEnumValue("status", target,
		string(derive.StatusAll), string(derive.StatusActive), string(derive.StatusCompleted))
}

func sortFlagValue(target *string) *enumValue {
	return newEnumValue("sort", target,
		string(derive.SortDeadline), string(derive.SortCreated), string(derive.SortPriority))
}

func viewFlagValue(target *string) *enumValue {
	return newEnumValue("view", target,
		string(derive.ViewTasks), string(derive.ViewArchived), string(derive.ViewRecycleBin))
}

// dateValue is a pflag.Value accepting a calendar date or a full
// timestamp.
type dateValue struct {
	t *time.Time
}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

func (d *dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(time.RFC3339)
}

func (d *dateValue) Set(v string) error {
	parsed, err := parseDateArg(v)
	if err != nil {
		return err
	}
	*d.t = parsed
	return nil
}

func (d *dateValue) Type() string { return "date" }

func parseDateArg(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, v); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want 2006-01-02 or RFC 3339)", v)
}
