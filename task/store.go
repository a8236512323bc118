package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

const (
	// TasksFile is the name of the JSON file containing tasks.
	TasksFile = "tasks.json"

	// ActivitiesFile is the name of the JSON file containing the
	// activity log.
	ActivitiesFile = "activities.json"
)

// Store provides access to the persisted task data. Every mutation
// rewrites the affected file under an exclusive lock, so visible state
// and persisted state never diverge across an operation.
type Store struct {
	dir  string
	user string
	now  func() time.Time
}

// OpenOptions configures how the store is opened.
type OpenOptions struct {
	// User is the display name recorded on activity entries.
	// Defaults to "User".
	User string

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Open opens the task store rooted at dir, creating the directory if
// needed.
func Open(dir string, opts OpenOptions) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("task store directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	user := opts.User
	if user == "" {
		user = "User"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Store{dir: dir, user: user, now: now}, nil
}

// Dir returns the directory the store persists into.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) tasksPath() string {
	return filepath.Join(s.dir, TasksFile)
}

func (s *Store) activitiesPath() string {
	return filepath.Join(s.dir, ActivitiesFile)
}

// withFileLock executes fn while holding an exclusive lock on the file
// at path. Creates the file if it doesn't exist.
func withFileLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open file for locking: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

// readJSONFile reads a JSON array file into a slice. A missing or empty
// file yields a nil slice.
func readJSONFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// writeJSONFile writes a slice as an indented JSON array, atomically
// via a temp file. The persisted form matches the JSON export format.
func writeJSONFile[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (s *Store) readTasks() ([]Task, error) {
	var tasks []Task
	err := withFileLock(s.tasksPath(), func() error {
		var err error
		tasks, err = readJSONFile[Task](s.tasksPath())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) writeTasks(tasks []Task) error {
	err := withFileLock(s.tasksPath(), func() error {
		return writeJSONFile(s.tasksPath(), tasks)
	})
	if err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

func (s *Store) readActivities() ([]Activity, error) {
	var entries []Activity
	err := withFileLock(s.activitiesPath(), func() error {
		var err error
		entries, err = readJSONFile[Activity](s.activitiesPath())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read activities: %w", err)
	}
	return entries, nil
}

// logActivity appends one entry at the head of the log and trims to
// ActivityLimit.
func (s *Store) logActivity(action Action, target string) error {
	now := s.now()
	entry := Activity{
		ID:        NewID(string(action)+target, now),
		Action:    action,
		Target:    target,
		Timestamp: now,
		User:      s.user,
	}

	err := withFileLock(s.activitiesPath(), func() error {
		entries, err := readJSONFile[Activity](s.activitiesPath())
		if err != nil {
			return err
		}
		return writeJSONFile(s.activitiesPath(), prependActivity(entries, entry))
	})
	if err != nil {
		return fmt.Errorf("write activities: %w", err)
	}
	return nil
}

// Tasks returns every task record, including archived and soft-deleted
// ones. View selection happens in the derive package.
func (s *Store) Tasks() ([]Task, error) {
	return s.readTasks()
}

// Activities returns the activity log, newest first.
func (s *Store) Activities() ([]Activity, error) {
	return s.readActivities()
}

// Get returns the task with the given ID.
func (s *Store) Get(id string) (*Task, error) {
	tasks, err := s.readTasks()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			found := tasks[i].Clone()
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}
