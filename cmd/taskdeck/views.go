package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/taskdeck/calendar"
	"github.com/amonks/taskdeck/derive"
	"github.com/amonks/taskdeck/internal/ui"
	"github.com/amonks/taskdeck/task"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the kanban board",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

var boardSearch string

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Show the month calendar",
	Long: `Show the month calendar.

Days with scheduled tasks are marked with an asterisk. Use --day to
list the tasks covering one day.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalendar,
}

var calendarDay string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsSeries bool

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the activity log",
	Args:  cobra.NoArgs,
	RunE:  runActivity,
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Show notifications",
	Args:  cobra.NoArgs,
	RunE:  runNotify,
}

func init() {
	rootCmd.AddCommand(boardCmd, calendarCmd, statsCmd, activityCmd, notifyCmd)

	boardCmd.Flags().StringVar(&boardSearch, "search", "", "Filter by title substring")
	calendarCmd.Flags().StringVar(&calendarDay, "day", "", "List tasks covering a day (2006-01-02)")
	statsCmd.Flags().BoolVar(&statsSeries, "series", false, "Include the 30-day creation series")
}

func runBoard(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	tasks, err := store.Tasks()
	if err != nil {
		return err
	}

	filtered := derive.Filter(tasks, derive.Query{View: derive.ViewTasks, Search: boardSearch})
	board := derive.GroupBoard(filtered)

	width := terminalWidth()/2 - 4
	if width < 24 {
		width = 24
	}

	left := renderBoardColumn("Pending", board.Pending, width)
	right := renderBoardColumn("Completed", board.Completed, width)
	fmt.Println(ui.Columns(left, "  ", right))
	return nil
}

func renderBoardColumn(title string, tasks []task.Task, width int) string {
	now := time.Now()
	blocks := []string{ui.Heading(fmt.Sprintf("%s (%d)", title, len(tasks)))}
	for _, t := range tasks {
		blocks = append(blocks, ui.Card(width,
			ui.Wrap(t.Title, width-2),
			ui.Dim(fmt.Sprintf("%s  %s", ui.PriorityBadge(t.Priority), ui.FormatDue(t.Deadline, now))),
		))
	}
	return strings.Join(blocks, "\n")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	tasks, err := store.Tasks()
	if err != nil {
		return err
	}
	active := derive.Filter(tasks, derive.Query{View: derive.ViewCalendar})

	if calendarDay != "" {
		day, err := parseDateArg(calendarDay)
		if err != nil {
			return err
		}
		return printCalendarDay(active, day)
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if len(args) == 1 {
		parsed, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("unrecognized month %q (want 2006-01)", args[0])
		}
		year, month = parsed.Year(), parsed.Month()
	}

	fmt.Print(formatMonth(active, year, month, now))
	return nil
}

func printCalendarDay(tasks []task.Task, day time.Time) error {
	covering := calendar.TasksOn(tasks, day)
	if len(covering) == 0 {
		fmt.Printf("No tasks on %s.\n", ui.FormatDate(day))
		return nil
	}

	fmt.Println(ui.Heading(ui.FormatDate(day)))
	for _, t := range covering {
		marker := ""
		if calendar.IsStartDay(t, day) {
			marker = "  (starts)"
		}
		fmt.Printf("  %s  %s  %s%s\n", t.ID, ui.PriorityBadge(t.Priority), t.Title, marker)
	}
	return nil
}

func formatMonth(tasks []task.Task, year int, month time.Month, now time.Time) string {
	var out strings.Builder

	title := fmt.Sprintf("%s %d", month, year)
	fmt.Fprintf(&out, "%s\n", ui.Heading(title))
	out.WriteString("Su  Mo  Tu  We  Th  Fr  Sa\n")

	offset := int(calendar.FirstWeekday(year, month))
	out.WriteString(strings.Repeat("    ", offset))

	days := calendar.DaysInMonth(year, month)
	column := offset
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		cell := fmt.Sprintf("%2d", day)
		if day == now.Day() && month == now.Month() && year == now.Year() {
			cell = ui.Today(cell)
		}
		out.WriteString(cell)
		if len(calendar.TasksOn(tasks, date)) > 0 {
			out.WriteString("* ")
		} else {
			out.WriteString("  ")
		}

		column++
		if column == 7 {
			out.WriteString("\n")
			column = 0
		}
	}
	if column != 0 {
		out.WriteString("\n")
	}
	return out.String()
}

func runStats(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	tasks, err := store.Tasks()
	if err != nil {
		return err
	}

	now := time.Now()
	stats := derive.ComputeStats(tasks, now)
	fmt.Printf("Total:     %d\n", stats.Total)
	fmt.Printf("Pending:   %d\n", stats.Pending)
	fmt.Printf("Completed: %d\n", stats.Completed)
	fmt.Printf("Overdue:   %d\n", stats.Overdue)

	fmt.Println()
	fmt.Println(ui.Heading("Pending by priority"))
	for _, bucket := range derive.PriorityDistribution(tasks) {
		fmt.Printf("%-8s %3d %s\n", bucket.Priority, bucket.Count, strings.Repeat("#", bucket.Count))
	}

	if statsSeries {
		fmt.Println()
		fmt.Println(ui.Heading("Tasks created, last 30 days"))
		builder := ui.NewTableBuilder([]string{"DAY", "PENDING", "COMPLETED"}, derive.SeriesDays)
		for _, point := range derive.ActivitySeries(tasks, now) {
			builder.AddRow([]string{
				ui.FormatDate(point.Day),
				fmt.Sprintf("%d", point.Pending),
				fmt.Sprintf("%d", point.Completed),
			})
		}
		fmt.Print(builder.String())
	}
	return nil
}

func runActivity(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	activities, err := store.Activities()
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		fmt.Println("No activity yet.")
		return nil
	}

	now := time.Now()
	builder := ui.NewTableBuilder([]string{"WHEN", "ACTION", "USER", "TARGET"}, len(activities))
	for _, entry := range activities {
		builder.AddRow([]string{
			ui.FormatTimeAgo(entry.Timestamp, now),
			string(entry.Action),
			entry.User,
			ui.TruncateCell(entry.Target),
		})
	}
	fmt.Print(builder.String())
	return nil
}

func runNotify(cmd *cobra.Command, args []string) error {
	_, store, err := openEnv()
	if err != nil {
		return err
	}
	tasks, err := store.Tasks()
	if err != nil {
		return err
	}
	activities, err := store.Activities()
	if err != nil {
		return err
	}

	now := time.Now()
	feed := derive.Notifications(tasks, activities, now)
	if len(feed) == 0 {
		fmt.Println("No notifications.")
		return nil
	}
	for _, item := range feed {
		label := fmt.Sprintf("[%s]", item.Type)
		if item.Type == derive.NotifyOverdue {
			label = ui.Overdue(label)
		}
		fmt.Printf("%s %s %s\n", label, item.Message, ui.Dim(ui.FormatTimeAgo(item.Timestamp, now)))
	}
	return nil
}
