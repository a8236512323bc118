package task

import (
	"time"

	"github.com/amonks/taskdeck/internal/ids"
)

// NewID creates a unique 8-character identifier from a seed string and
// timestamp. Used for tasks, subtasks, and activity entries.
func NewID(seed string, timestamp time.Time) string {
	return ids.New(seed, timestamp)
}
