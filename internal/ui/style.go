package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/amonks/taskdeck/task"
)

var (
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	todayStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
)

// PriorityBadge renders a colored priority label.
func PriorityBadge(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return highStyle.Render(string(p))
	case task.PriorityMedium:
		return mediumStyle.Render(string(p))
	case task.PriorityLow:
		return lowStyle.Render(string(p))
	default:
		return string(p)
	}
}

// StatusBadge renders a colored status label.
func StatusBadge(s task.Status) string {
	switch s {
	case task.StatusCompleted:
		return completedStyle.Render(string(s))
	case task.StatusPending:
		return pendingStyle.Render(string(s))
	default:
		return string(s)
	}
}

// Overdue renders text in the overdue style.
func Overdue(text string) string {
	return overdueStyle.Render(text)
}

// Heading renders a section heading.
func Heading(text string) string {
	return headingStyle.Render(text)
}

// Dim renders de-emphasized text.
func Dim(text string) string {
	return dimStyle.Render(text)
}

// Today renders a highlighted calendar day number.
func Today(text string) string {
	return todayStyle.Render(text)
}

// Card renders a bordered card for board columns.
func Card(width int, lines ...string) string {
	return cardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// Columns joins rendered blocks side by side, top-aligned.
func Columns(blocks ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// Wrap wraps text at width, preserving words.
func Wrap(text string, width int) string {
	if width < 1 {
		return text
	}
	return wordwrap.String(text, width)
}
