// Package main implements the taskdeck CLI tool.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amonks/taskdeck/internal/config"
	"github.com/amonks/taskdeck/internal/paths"
	"github.com/amonks/taskdeck/session"
	"github.com/amonks/taskdeck/task"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Taskdeck - track tasks from your terminal",
}

// stateDir resolves the data directory. The environment override wins
// over the config file.
func stateDir(cfg *config.Config) string {
	if dir := os.Getenv(paths.StateDirEnv); dir != "" {
		return dir
	}
	return cfg.StateDir
}

// openSessions loads the config and opens the session store without
// requiring a login.
func openSessions() (*config.Config, *session.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	sessions, err := session.Open(stateDir(cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, sessions, nil
}

// openEnv opens the task store for the signed-in user. Every command
// that touches task data goes through here, so the login gate is
// enforced in one place.
func openEnv() (*config.Config, *task.Store, error) {
	cfg, sessions, err := openSessions()
	if err != nil {
		return nil, nil, err
	}

	user, err := sessions.Current()
	if err != nil {
		if errors.Is(err, session.ErrNotLoggedIn) {
			return nil, nil, fmt.Errorf("not logged in (run `taskdeck login`)")
		}
		return nil, nil, err
	}

	store, err := task.Open(stateDir(cfg), task.OpenOptions{User: user.Name})
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

// resolveTaskID expands an ID prefix to a full task ID. An exact match
// wins; otherwise the prefix must be unambiguous.
func resolveTaskID(store *task.Store, arg string) (string, error) {
	tasks, err := store.Tasks()
	if err != nil {
		return "", err
	}

	needle := strings.ToLower(arg)
	var matches []string
	for _, t := range tasks {
		id := strings.ToLower(t.ID)
		if id == needle {
			return t.ID, nil
		}
		if strings.HasPrefix(id, needle) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", task.ErrNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous task ID %q matches %d tasks", arg, len(matches))
	}
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// confirm asks before an irreversible action. Non-interactive callers
// (pipes, scripts) are assumed to mean what they typed.
func confirm(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
