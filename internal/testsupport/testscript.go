// Package testsupport holds helpers shared by the testscript suites.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/taskdeck/internal/paths"
	"github.com/amonks/taskdeck/task"
)

var (
	buildOnce    sync.Once
	taskdeckPath string
	buildErr     error
)

// BuildTaskdeck builds the taskdeck binary once and returns its path.
func BuildTaskdeck(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "taskdeck-bin-")
		if err != nil {
			buildErr = err
			return
		}

		taskdeckPath = filepath.Join(binDir, "taskdeck")
		cmd := exec.Command("go", "build", "-o", taskdeckPath, "./cmd/taskdeck")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build taskdeck: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return taskdeckPath
}

// SetupScriptEnv points the binary at a state directory and config file
// inside the script's work directory.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TASKDECK", BuildTaskdeck(t))

	stateDir := filepath.Join(env.WorkDir, "state")
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return err
	}
	env.Setenv(paths.StateDirEnv, stateDir)
	env.Setenv(paths.ConfigPathEnv, filepath.Join(env.WorkDir, "config.toml"))
	env.Setenv("HOME", env.WorkDir)
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdTaskID finds a task by title in a tasks.json file and stores its
// ID in an env var.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE TITLE VAR")
	}

	var tasks []task.Task
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	title := args[1]
	for _, t := range tasks {
		if t.Title == title {
			ts.Setenv(args[2], t.ID)
			return
		}
	}

	ts.Fatalf("task with title %q not found", title)
}

// CmdSubtaskID finds a subtask by title within a task and stores its
// ID in an env var.
func CmdSubtaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("subtaskid does not support negation")
	}
	if len(args) != 4 {
		ts.Fatalf("usage: subtaskid FILE TASK_TITLE SUBTASK_TITLE VAR")
	}

	var tasks []task.Task
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &tasks); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	for _, t := range tasks {
		if t.Title != args[1] {
			continue
		}
		for _, sub := range t.Subtasks {
			if sub.Title == args[2] {
				ts.Setenv(args[3], sub.ID)
				return
			}
		}
		ts.Fatalf("subtask with title %q not found on %q", args[2], args[1])
	}

	ts.Fatalf("task with title %q not found", args[1])
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
