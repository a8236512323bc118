package task

import "time"

// Action is the kind of user-visible mutation an activity entry records.
type Action string

const (
	ActionCreated   Action = "Created"
	ActionUpdated   Action = "Updated"
	ActionDeleted   Action = "Deleted"
	ActionCompleted Action = "Completed"
	ActionReopened  Action = "Reopened"
	ActionArchived  Action = "Archived"
	ActionRestored  Action = "Restored"
	ActionMoved     Action = "Moved"
	ActionSystem    Action = "System"
)

// Activity is an immutable audit record. Target holds a snapshot of the
// task title at write time, not a live reference, so later mutation or
// deletion of the task never affects historical entries.
type Activity struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
}

// ActivityLimit is the maximum number of retained activity entries.
// The log is newest-first; appending beyond the limit evicts the oldest.
const ActivityLimit = 50

// prependActivity inserts an entry at the head and trims to the limit.
func prependActivity(entries []Activity, entry Activity) []Activity {
	entries = append([]Activity{entry}, entries...)
	if len(entries) > ActivityLimit {
		entries = entries[:ActivityLimit]
	}
	return entries
}
