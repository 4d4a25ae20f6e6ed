package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/config"
	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/models"
	"github.com/unobserved-io/furt/internal/report"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"ls"},
	Short:   "Show recorded tasks grouped by day",
	Long: `Show the task history, newest first, grouped by day and then by
identical name and tags.

Examples:
  furt history
  furt history --timeframe this-month
  furt history --from 2024-01-01 --to 2024-01-31`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		start, end, err := resolveRange(cmd, cfg, report.Past7Days)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		tasks, err := db.TasksInRange(start, end)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks in this range. Use 'furt start \"task name\"' to begin tracking.")
			return
		}

		printHistory(tasks, cfg.Currency())
	},
}

// printHistory renders tasks (already newest first) grouped by day, then by
// name and tags within the day.
func printHistory(tasks []models.Task, currency rune) {
	var day time.Time
	var dayTasks []models.Task

	flush := func() {
		if len(dayTasks) == 0 {
			return
		}
		printDay(day, dayTasks, currency)
		dayTasks = nil
	}

	for _, task := range tasks {
		taskDay := report.StartOfDay(task.StartTime)
		if !taskDay.Equal(day) {
			flush()
			day = taskDay
		}
		dayTasks = append(dayTasks, task)
	}
	flush()
}

func printDay(day time.Time, tasks []models.Task, currency rune) {
	total := 0
	for i := range tasks {
		total += tasks[i].SecondsTotal()
	}
	fmt.Printf("\n%s · %s\n", day.Format("Mon, Jan 02, 2006"), report.FormatTimeLong(total))
	fmt.Println(strings.Repeat("-", 80))

	for _, group := range report.GroupByNameAndTags(tasks) {
		name := group.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		tags := group.Tags
		if len(tags) > 18 {
			tags = tags[:15] + "..."
		}

		earned := ""
		if earnings := group.Earnings(); earnings > 0 {
			earned = fmt.Sprintf("%c%.2f", currency, earnings)
		}

		var ids []string
		for i := range group.Tasks {
			ids = append(ids, strconv.FormatUint(uint64(group.Tasks[i].ID), 10))
		}

		fmt.Printf("%-28s %-18s %3dx %10s %10s  #%s\n",
			name,
			tags,
			len(group.Tasks),
			report.FormatTimeLong(group.SecondsTotal()),
			earned,
			strings.Join(ids, ",#"))
	}
}

// resolveRange turns the shared --timeframe/--from/--to flags into a
// concrete range.
func resolveRange(cmd *cobra.Command, cfg *config.Config, fallback report.Timeframe) (time.Time, time.Time, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--from and --to must be used together")
		}
		start, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad --from: %w", err)
		}
		end, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad --to: %w", err)
		}
		start, end = report.CustomRange(start, end)
		return start, end, nil
	}

	timeframe := fallback
	if flag, _ := cmd.Flags().GetString("timeframe"); flag != "" {
		parsed, err := report.ParseTimeframe(flag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		timeframe = parsed
	}
	start, end := timeframe.Range(time.Now(), cfg.WeekStartDay())
	return start, end, nil
}

func init() {
	historyCmd.Flags().StringP("timeframe", "t", "", "Named range: this-week, last-week, past-7-days, this-month, last-month, past-30-days, past-180-days, past-365-days, all-time")
	historyCmd.Flags().String("from", "", "Custom range start (2006-01-02)")
	historyCmd.Flags().String("to", "", "Custom range end (2006-01-02)")
}
