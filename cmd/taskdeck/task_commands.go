package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/taskdeck/derive"
	"github.com/amonks/taskdeck/internal/markdown"
	"github.com/amonks/taskdeck/internal/ui"
	"github.com/amonks/taskdeck/task"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var (
	addDescription string
	addStart       time.Time
	addDue         time.Time
	addPriority    string
	addCategory    string
	addImageURL    string
	addSubtasks    []string
)

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listView     string
	listSearch   string
	listPriority string
	listCategory string
	listStatus   string
	listSort     string
	listJSON     bool
)

// bin
var binCmd = &cobra.Command{
	Use:   "bin",
	Short: "List tasks in the recycle bin",
	Args:  cobra.NoArgs,
	RunE:  runBin,
}

// show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var (
	editTitle       string
	editDescription string
	editStart       time.Time
	editDue         time.Time
	editPriority    string
	editCategory    string
	editImageURL    string
)

// done
var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Toggle tasks between Pending and Completed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDone,
}

// archive
var archiveCmd = &cobra.Command{
	Use:   "archive <id>...",
	Short: "Toggle the archive flag on tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArchive,
}

// delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Move tasks to the recycle bin",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

// restore
var restoreCmd = &cobra.Command{
	Use:   "restore <id>...",
	Short: "Take tasks out of the recycle bin",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRestore,
}

// purge
var purgeCmd = &cobra.Command{
	Use:   "purge <id>...",
	Short: "Permanently erase tasks",
	Long: `Permanently erase tasks.

Unlike delete, a purged task cannot be restored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPurge,
}

var purgeForce bool

// move
var moveCmd = &cobra.Command{
	Use:   "move <id> <date>",
	Short: "Reschedule a task to start on a different day",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

// subtask
var subtaskCmd = &cobra.Command{
	Use:   "subtask",
	Short: "Manage a task's checklist",
}

var subtaskAddCmd = &cobra.Command{
	Use:   "add <task-id> <title>...",
	Short: "Add checklist items to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSubtaskAdd,
}

var subtaskToggleCmd = &cobra.Command{
	Use:   "toggle <task-id> <subtask-id>",
	Short: "Toggle a checklist item",
	Args:  cobra.ExactArgs(2),
	RunE:  runSubtaskToggle,
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, binCmd, showCmd, editCmd, doneCmd,
		archiveCmd, deleteCmd, restoreCmd, purgeCmd, moveCmd, subtaskCmd)
	subtaskCmd.AddCommand(subtaskAddCmd, subtaskToggleCmd)

	// add flags
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description (markdown)")
	addCmd.Flags().Var(&dateValue{&addStart}, "start", "Start date (default: now)")
	addCmd.Flags().Var(&dateValue{&addDue}, "due", "Deadline (default: one day after start)")
	addCmd.Flags().VarP(priorityFlagValue(&addPriority), "priority", "p", "Priority (High, Medium, Low)")
	addCmd.Flags().VarP(categoryFlagValue(&addCategory), "category", "c", "Category (Work, Personal, Shopping, Health, Other)")
	addCmd.Flags().StringVar(&addImageURL, "image", "", "Image URL")
	addCmd.Flags().StringArrayVar(&addSubtasks, "subtask", nil, "Checklist item (repeatable)")

	// list flags
	listView = string(derive.ViewTasks)
	listStatus = string(derive.StatusAll)
	listCmd.Flags().Var(viewFlagValue(&listView), "view", "View (tasks, archived, recycle_bin)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter by title substring")
	listCmd.Flags().VarP(priorityFlagValue(&listPriority), "priority", "p", "Filter by priority")
	listCmd.Flags().VarP(categoryFlagValue(&listCategory), "category", "c", "Filter by category")
	listCmd.Flags().Var(statusFlagValue(&listStatus), "status", "Filter by status (All, Active, Completed)")
	listCmd.Flags().Var(sortFlagValue(&listSort), "sort", "Sort order (deadline, created, priority)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	// show flags
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	// purge flags
	purgeCmd.Flags().BoolVarP(&purgeForce, "force", "f", false, "Skip the confirmation prompt")

	// edit flags
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().Var(&dateValue{&editStart}, "start", "New start date")
	editCmd.Flags().Var(&dateValue{&editDue}, "due", "New deadline")
	editCmd.Flags().VarP(priorityFlagValue(&editPriority), "priority", "p", "New priority")
	editCmd.Flags().VarP(categoryFlagValue(&editCategory), "category", "c", "New category")
	editCmd.Flags().StringVar(&editImageURL, "image", "", "New image URL")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, store, err := openEnv()
	if err != nil {
		return err
	}

	start := addStart
	if !cmd.Flags().Changed("start") {
		start = time.Now()
	}
	due := addDue
	if !cmd.Flags().Changed("due") {
		due = start.Add(24 * time.Hour)
	}
	priority := task.Priority(addPriority)
	if !cmd.Flags().Changed("priority") {
		priority = task.Priority(cfg.Defaults.Priority)
	}
	category := task.Category(addCategory)
	if !cmd.Flags().Changed("category") {
		category = task.Category(cfg.Defaults.Category)
	}

	var subtasks []task.Subtask
	for _, title := range addSubtasks {
		subtasks = append(subtasks, task.Subtask{Title: title})
	}

	created, err := store.Create(task.Draft{
		Title:       args[0],
		Description: addDescription,
		StartDate:   start,
		Deadline:    due,
		Priority:    priority,
		Category:    category,
		ImageURL:    addImageURL,
		Subtasks:    subtasks,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added task %s: %s\n", created.ID, created.Title)
	return nil
}

func listQuery() derive.Query {
	return derive.Query{
		View:     derive.View(listView),
		Search:   listSearch,
		Priority: task.Priority(listPriority),
		Category: task.Category(listCategory),
		Status:   derive.StatusFilter(listStatus),
		Sort:     derive.SortOrder(listSort),
	}
}

func runList(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	tasks, err := store.Tasks()
	if err != nil {
		return err
	}

	filtered := derive.Filter(tasks, listQuery())
	if listJSON {
		return printJSON(filtered)
	}
	printTaskTable(filtered, time.Now())
	return nil
}

func runBin(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	tasks, err := store.Tasks()
	if err != nil {
		return err
	}

	filtered := derive.Filter(tasks, derive.Query{View: derive.ViewRecycleBin})
	printTaskTable(filtered, time.Now())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}

	for i, arg := range args {
		id, err := resolveTaskID(store, arg)
		if err != nil {
			return err
		}
		t, err := store.Get(id)
		if err != nil {
			return err
		}
		if showJSON {
			if err := printJSON(t); err != nil {
				return err
			}
			continue
		}
		if i > 0 {
			fmt.Println()
		}
		printTask(t)
	}
	return nil
}

func printTask(t *task.Task) {
	now := time.Now()
	fmt.Println(ui.Heading(t.Title))
	fmt.Printf("ID:        %s\n", t.ID)
	fmt.Printf("Status:    %s\n", ui.StatusBadge(t.Status))
	fmt.Printf("Priority:  %s\n", ui.PriorityBadge(t.Priority))
	fmt.Printf("Category:  %s\n", t.Category)
	fmt.Printf("Start:     %s\n", ui.FormatDateTime(t.StartDate))
	fmt.Printf("Deadline:  %s (%s)\n", ui.FormatDateTime(t.Deadline), ui.FormatDue(t.Deadline, now))
	fmt.Printf("Created:   %s\n", ui.FormatTimeAgo(t.CreatedAt, now))
	if t.ImageURL != "" {
		fmt.Printf("Image:     %s\n", t.ImageURL)
	}
	if t.Archived {
		fmt.Println("Archived:  yes")
	}
	if t.Deleted() {
		fmt.Printf("Deleted:   %s\n", ui.FormatDateTime(*t.DeletedAt))
	}

	if len(t.Subtasks) > 0 {
		fmt.Println()
		fmt.Println("Subtasks:")
		for _, sub := range t.Subtasks {
			mark := " "
			if sub.Completed {
				mark = "x"
			}
			fmt.Printf("  [%s] %s  %s\n", mark, sub.ID, sub.Title)
		}
	}

	if rendered := markdown.Render(terminalWidth(), 2, []byte(t.Description)); rendered != nil {
		fmt.Printf("\n%s\n", rendered)
	}
}

func runEdit(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	id, err := resolveTaskID(store, args[0])
	if err != nil {
		return err
	}
	existing, err := store.Get(id)
	if err != nil {
		return err
	}

	draft := task.Draft{
		Title:       existing.Title,
		Description: existing.Description,
		StartDate:   existing.StartDate,
		Deadline:    existing.Deadline,
		Priority:    existing.Priority,
		Category:    existing.Category,
		ImageURL:    existing.ImageURL,
	}
	if cmd.Flags().Changed("title") {
		draft.Title = editTitle
	}
	if cmd.Flags().Changed("description") {
		draft.Description = editDescription
	}
	if cmd.Flags().Changed("start") {
		draft.StartDate = editStart
	}
	if cmd.Flags().Changed("due") {
		draft.Deadline = editDue
	}
	if cmd.Flags().Changed("priority") {
		draft.Priority = task.Priority(editPriority)
	}
	if cmd.Flags().Changed("category") {
		draft.Category = task.Category(editCategory)
	}
	if cmd.Flags().Changed("image") {
		draft.ImageURL = editImageURL
	}

	updated, err := store.Update(id, draft)
	if err != nil {
		return err
	}
	fmt.Printf("Updated task %s: %s\n", updated.ID, updated.Title)
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	return forEachTask(args, func(store *task.Store, id string) error {
		toggled, err := store.ToggleStatus(id)
		if err != nil {
			return err
		}
		if toggled.Status == task.StatusCompleted {
			fmt.Printf("Completed task %s: %s\n", toggled.ID, toggled.Title)
		} else {
			fmt.Printf("Reopened task %s: %s\n", toggled.ID, toggled.Title)
		}
		return nil
	})
}

func runArchive(cmd *cobra.Command, args []string) error {
	return forEachTask(args, func(store *task.Store, id string) error {
		toggled, err := store.ToggleArchive(id)
		if err != nil {
			return err
		}
		if toggled.Archived {
			fmt.Printf("Archived task %s: %s\n", toggled.ID, toggled.Title)
		} else {
			fmt.Printf("Unarchived task %s: %s\n", toggled.ID, toggled.Title)
		}
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return forEachTask(args, func(store *task.Store, id string) error {
		deleted, err := store.SoftDelete(id)
		if err != nil {
			return err
		}
		fmt.Printf("Moved task %s to the recycle bin: %s\n", deleted.ID, deleted.Title)
		return nil
	})
}

func runRestore(cmd *cobra.Command, args []string) error {
	return forEachTask(args, func(store *task.Store, id string) error {
		restored, err := store.Restore(id)
		if err != nil {
			return err
		}
		fmt.Printf("Restored task %s: %s\n", restored.ID, restored.Title)
		return nil
	})
}

func runPurge(cmd *cobra.Command, args []string) error {
	return forEachTask(args, func(store *task.Store, id string) error {
		if !purgeForce && !confirm(fmt.Sprintf("Permanently erase task %s? This cannot be undone.", id)) {
			fmt.Printf("Skipped task %s\n", id)
			return nil
		}
		erased, err := store.Purge(id)
		if err != nil {
			return err
		}
		fmt.Printf("Permanently erased task %s: %s\n", erased.ID, erased.Title)
		return nil
	})
}

func runMove(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	id, err := resolveTaskID(store, args[0])
	if err != nil {
		return err
	}
	day, err := parseDateArg(args[1])
	if err != nil {
		return err
	}

	moved, err := store.Reschedule(id, day)
	if err != nil {
		return err
	}
	fmt.Printf("Moved task %s to %s: %s\n", moved.ID, ui.FormatDate(moved.StartDate), moved.Title)
	return nil
}

func runSubtaskAdd(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	id, err := resolveTaskID(store, args[0])
	if err != nil {
		return err
	}
	existing, err := store.Get(id)
	if err != nil {
		return err
	}

	subtasks := existing.Subtasks
	for _, title := range args[1:] {
		subtasks = append(subtasks, task.Subtask{Title: title})
	}

	updated, err := store.Update(id, task.Draft{
		Title:       existing.Title,
		Description: existing.Description,
		StartDate:   existing.StartDate,
		Deadline:    existing.Deadline,
		Priority:    existing.Priority,
		Category:    existing.Category,
		ImageURL:    existing.ImageURL,
		Subtasks:    subtasks,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added %d subtask(s) to %s\n", len(args)-1, updated.ID)
	return nil
}

func runSubtaskToggle(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	id, err := resolveTaskID(store, args[0])
	if err != nil {
		return err
	}
	existing, err := store.Get(id)
	if err != nil {
		return err
	}
	subtaskID, err := resolveSubtaskID(existing, args[1])
	if err != nil {
		return err
	}

	toggled, err := store.ToggleSubtask(id, subtaskID)
	if err != nil {
		return err
	}

	done := 0
	for _, sub := range toggled.Subtasks {
		if sub.Completed {
			done++
		}
	}
	fmt.Printf("Task %s: %d/%d subtasks complete, status %s\n",
		toggled.ID, done, len(toggled.Subtasks), toggled.Status)
	return nil
}

// resolveSubtaskID expands a subtask ID prefix within one task.
func resolveSubtaskID(t *task.Task, arg string) (string, error) {
	needle := strings.ToLower(arg)
	var matches []string
	for _, sub := range t.Subtasks {
		id := strings.ToLower(sub.ID)
		if id == needle {
			return sub.ID, nil
		}
		if strings.HasPrefix(id, needle) {
			matches = append(matches, sub.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", task.ErrSubtaskNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous subtask ID %q matches %d subtasks", arg, len(matches))
	}
}

// forEachTask resolves each argument and applies fn, stopping at the
// first failure.
func forEachTask(args []string, fn func(*task.Store, string) error) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	for _, arg := range args {
		id, err := resolveTaskID(store, arg)
		if err != nil {
			return err
		}
		if err := fn(store, id); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
