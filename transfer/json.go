// Package transfer serializes tasks to and from JSON and CSV. JSON is
// the lossless format; CSV keeps a fixed spreadsheet-friendly subset of
// fields.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amonks/taskdeck/task"
)

// ErrFormat is the category for malformed import payloads.
var ErrFormat = errors.New("bad format")

// ErrNotArray is returned when a JSON import payload is not a
// top-level array.
var ErrNotArray = fmt.Errorf("%w: expected a JSON array of tasks", ErrFormat)

// ExportJSON renders tasks as an indented JSON array. A nil slice
// exports as [].
func ExportJSON(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	out, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return out, nil
}

// ImportJSON parses a JSON array of tasks. The payload must be a
// top-level array; any parse failure rejects the whole payload.
func ImportJSON(data []byte) ([]task.Task, error) {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if _, ok := probe.([]any); !ok {
		return nil, ErrNotArray
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	for i := range tasks {
		if tasks[i].Subtasks == nil {
			tasks[i].Subtasks = []task.Subtask{}
		}
	}
	return tasks, nil
}
