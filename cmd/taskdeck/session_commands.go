package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amonks/taskdeck/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var (
	loginUsername string
	loginPassword string
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var themeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Show or set the color theme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, themeCmd)

	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, sessions, err := openSessions()
	if err != nil {
		return err
	}

	username := loginUsername
	if username == "" {
		username, err = promptLine("Username: ")
		if err != nil {
			return err
		}
	}

	password := loginPassword
	if !cmd.Flags().Changed("password") {
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	user, err := sessions.Login(username, password, session.Credentials{
		Username: cfg.Auth.Username,
		Password: cfg.Auth.Password,
		Name:     cfg.Auth.Name,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", user.Name)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	_, sessions, err := openSessions()
	if err != nil {
		return err
	}
	if err := sessions.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	_, sessions, err := openSessions()
	if err != nil {
		return err
	}
	user, err := sessions.Current()
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", user.Name, user.Username)
	return nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	_, sessions, err := openSessions()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		theme, err := sessions.Theme()
		if err != nil {
			return err
		}
		fmt.Println(theme)
		return nil
	}

	theme := session.Theme(strings.ToLower(args[0]))
	if err := sessions.SetTheme(theme); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s\n", theme)
	return nil
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal, and
// falls back to a plain line read otherwise.
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(prompt)
	}
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(secret), nil
}
