package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/taskdeck/task"
	"github.com/amonks/taskdeck/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks to a file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var (
	exportFormat string
	exportOutput string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import tasks from a JSON or CSV file",
	Long: `Import tasks from a JSON or CSV file.

A JSON import replaces the whole collection and is rejected wholesale
if the payload is malformed. A CSV import appends to the collection,
silently skipping rows it cannot parse.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace all tasks with demo data",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var resetForce bool

func init() {
	rootCmd.AddCommand(exportCmd, importCmd, resetCmd)

	exportFormat = "json"
	exportCmd.Flags().Var(newEnumValue("format", &exportFormat, "json", "csv"), "format", "Export format (json, csv)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file")

	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip the confirmation prompt")
}

func runExport(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	tasks, err := store.Tasks()
	if err != nil {
		return err
	}

	var data []byte
	path := exportOutput
	switch exportFormat {
	case "json":
		if path == "" {
			path = "tasks_backup.json"
		}
		data, err = transfer.ExportJSON(tasks)
		if err != nil {
			return err
		}
	case "csv":
		if path == "" {
			path = "tasks_export.csv"
		}
		data = transfer.ExportCSV(tasks)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("Exported %d tasks to %s\n", len(tasks), path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		tasks, err := transfer.ImportJSON(data)
		if err != nil {
			return err
		}
		note := fmt.Sprintf("Restored %d tasks from %s", len(tasks), filepath.Base(path))
		if err := store.Replace(tasks, note); err != nil {
			return err
		}
		fmt.Printf("Imported %d tasks, replacing the collection\n", len(tasks))
	case ".csv":
		tasks := transfer.ImportCSV(data, time.Now())
		if len(tasks) == 0 {
			return fmt.Errorf("%w: no valid tasks found in %s", transfer.ErrFormat, filepath.Base(path))
		}
		note := fmt.Sprintf("Imported %d tasks from %s", len(tasks), filepath.Base(path))
		if err := store.Append(tasks, note); err != nil {
			return err
		}
		fmt.Printf("Imported %d tasks\n", len(tasks))
	default:
		return fmt.Errorf("unsupported file type %q (want .json or .csv)", filepath.Ext(path))
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}

	if !resetForce && !confirm("Replace all tasks with demo data?") {
		fmt.Println("Aborted")
		return nil
	}

	demo := demoTasks(time.Now())
	if err := store.Replace(demo, "Demo data loaded"); err != nil {
		return err
	}
	fmt.Printf("Reset to %d demo tasks\n", len(demo))
	return nil
}

// demoTasks builds the sample collection users get from a reset.
func demoTasks(now time.Time) []task.Task {
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	specs := []struct {
		title    string
		priority task.Priority
		category task.Category
		status   task.Status
		start    time.Time
		due      time.Time
		subtasks []string
	}{
		{"Review Q3 Budget", task.PriorityHigh, task.CategoryWork, task.StatusPending, day(-1), day(1), []string{"Collect spreadsheets", "Flag anomalies"}},
		{"Buy Groceries", task.PriorityLow, task.CategoryShopping, task.StatusPending, day(0), day(0).Add(4 * time.Hour), nil},
		{"Team Meeting", task.PriorityMedium, task.CategoryWork, task.StatusPending, day(1), day(1).Add(time.Hour), nil},
		{"Doctor Appointment", task.PriorityHigh, task.CategoryHealth, task.StatusPending, day(2), day(2).Add(2 * time.Hour), nil},
		{"Design New Landing Page", task.PriorityMedium, task.CategoryWork, task.StatusPending, day(0), day(7), []string{"Wireframes", "Color palette", "Hero copy"}},
		{"Fix Bug #404", task.PriorityHigh, task.CategoryWork, task.StatusCompleted, day(-3), day(-1), nil},
		{"Client Call", task.PriorityMedium, task.CategoryWork, task.StatusCompleted, day(-2), day(-2).Add(time.Hour), nil},
		{"Clean Garage", task.PriorityLow, task.CategoryPersonal, task.StatusPending, day(3), day(5), nil},
		{"Update Portfolio", task.PriorityLow, task.CategoryPersonal, task.StatusPending, day(0), day(10), nil},
	}

	tasks := make([]task.Task, 0, len(specs))
	for _, spec := range specs {
		subtasks := make([]task.Subtask, 0, len(spec.subtasks))
		for i, title := range spec.subtasks {
			subtasks = append(subtasks, task.Subtask{
				ID:    task.NewID(fmt.Sprintf("demo-subtask-%d-%s", i, title), now),
				Title: title,
			})
		}
		tasks = append(tasks, task.Task{
			ID:        task.NewID(spec.title, now),
			Title:     spec.title,
			StartDate: spec.start,
			Deadline:  spec.due,
			Priority:  spec.priority,
			Category:  spec.category,
			Status:    spec.status,
			Subtasks:  subtasks,
			CreatedAt: now,
		})
	}
	return tasks
}
