package transfer

import (
	"strings"
	"time"

	"github.com/amonks/taskdeck/task"
)

// csvHeader is the fixed column set. Description, subtask state, image
// URL, and the visibility flags are not round-tripped through CSV.
var csvHeader = []string{
	"ID", "Title", "Description", "Priority", "Category",
	"Status", "Start Date", "Deadline", "Created At",
}

// ExportCSV renders tasks as CSV with a header row. Title and
// description are quoted with doubled interior quotes.
func ExportCSV(tasks []task.Task) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteString("\n")
	for _, t := range tasks {
		fields := []string{
			t.ID,
			quote(t.Title),
			quote(t.Description),
			string(t.Priority),
			string(t.Category),
			string(t.Status),
			t.StartDate.Format(time.RFC3339),
			t.Deadline.Format(time.RFC3339),
			t.CreatedAt.Format(time.RFC3339),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// ImportCSV parses CSV produced by ExportCSV, or close enough to it.
// The first line is skipped as a header. Rows with fewer than 8 fields
// or a deadline before their start date are skipped; a bad row never
// blocks the rows around it. Invalid enum values fall back to
// defaults, unparseable dates fall back to now, and every imported
// task gets a fresh creation stamp and empty checklist.
func ImportCSV(data []byte, now time.Time) []task.Task {
	lines := strings.Split(string(data), "\n")
	var tasks []task.Task
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitCSVLine(line)
		if len(fields) < 8 {
			continue
		}
		t := task.Task{
			ID:          strings.TrimSpace(fields[0]),
			Title:       fields[1],
			Description: fields[2],
			Priority:    task.Priority(strings.TrimSpace(fields[3])),
			Category:    task.Category(strings.TrimSpace(fields[4])),
			Status:      task.Status(strings.TrimSpace(fields[5])),
			StartDate:   parseDate(fields[6], now),
			Deadline:    parseDate(fields[7], now),
			Subtasks:    []task.Subtask{},
			CreatedAt:   now,
		}
		if t.Title == "" {
			continue
		}
		if t.Deadline.Before(t.StartDate) {
			continue
		}
		if t.ID == "" {
			t.ID = task.NewID(t.Title, now)
		}
		if !t.Priority.IsValid() {
			t.Priority = task.PriorityMedium
		}
		if !t.Category.IsValid() {
			t.Category = task.CategoryWork
		}
		if !t.Status.IsValid() {
			t.Status = task.StatusPending
		}
		tasks = append(tasks, t)
	}
	return tasks
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func parseDate(s string, fallback time.Time) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return t
}

// splitCSVLine splits on commas outside double quotes and unescapes
// doubled quotes inside quoted fields.
func splitCSVLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, cur.String())
	return fields
}
