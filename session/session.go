// Package session tracks the signed-in user and UI preferences. State
// lives alongside the task files in the state directory, one JSON file
// per concern, so a login survives across invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")
)

const (
	UserFile     = "user.json"
	SettingsFile = "settings.json"
)

// User is the signed-in identity.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Theme selects the UI color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) IsValid() bool {
	return t == ThemeDark || t == ThemeLight
}

type settings struct {
	Theme Theme `json:"theme"`
}

// Credentials is the configured account a login attempt is checked
// against.
type Credentials struct {
	Username string
	Password string
	Name     string
}

// Store persists session state in dir.
type Store struct {
	dir string
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Login checks the supplied username and password against creds and,
// on success, records the user.
func (s *Store) Login(username, password string, creds Credentials) (User, error) {
	if username != creds.Username || password != creds.Password {
		return User{}, ErrInvalidCredentials
	}
	user := User{Username: creds.Username, Name: creds.Name}
	if err := s.writeFile(UserFile, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Logout removes the recorded user. Logging out when nobody is logged
// in is not an error.
func (s *Store) Logout() error {
	err := os.Remove(filepath.Join(s.dir, UserFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Current returns the recorded user, or ErrNotLoggedIn.
func (s *Store) Current() (User, error) {
	var user User
	if err := s.readFile(UserFile, &user); err != nil {
		if os.IsNotExist(err) {
			return User{}, ErrNotLoggedIn
		}
		return User{}, err
	}
	if user.Username == "" {
		return User{}, ErrNotLoggedIn
	}
	return user, nil
}

// Theme returns the saved theme. Dark is only honored when set
// explicitly; the default is light.
func (s *Store) Theme() (Theme, error) {
	var cfg settings
	if err := s.readFile(SettingsFile, &cfg); err != nil {
		if os.IsNotExist(err) {
			return ThemeLight, nil
		}
		return "", err
	}
	if !cfg.Theme.IsValid() {
		return ThemeLight, nil
	}
	return cfg.Theme, nil
}

func (s *Store) SetTheme(theme Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return s.writeFile(SettingsFile, settings{Theme: theme})
}

func (s *Store) readFile(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
