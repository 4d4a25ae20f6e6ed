package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/report"
	"github.com/unobserved-io/furt/internal/tui"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Chart tracked time over a range",
	Long: `Aggregate tracked time into calendar buckets and chart it.

The bucket size follows the span of the range: a month or less charts by
day, up to two months by week, up to two years by month, longer by year.
Override it with --granularity.

Examples:
  furt report
  furt report --timeframe past-30-days
  furt report --from 2024-01-01 --to 2024-06-30 --granularity month`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		start, end, err := resolveRange(cmd, cfg, report.Past30Days)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		granularity := report.AutoGranularity(start, end)
		if flag, _ := cmd.Flags().GetString("granularity"); flag != "" {
			parsed, err := parseGranularity(flag)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			granularity = parsed
		}

		tasks, err := db.TasksInRange(start, end)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks in this range.")
			return
		}

		buckets := report.GroupByBucket(tasks, granularity, cfg.WeekStartDay())
		printReport(buckets, granularity, cfg.Currency())
	},
}

func parseGranularity(s string) (report.Granularity, error) {
	switch s {
	case "day":
		return report.ByDay, nil
	case "week":
		return report.ByWeek, nil
	case "month":
		return report.ByMonth, nil
	case "year":
		return report.ByYear, nil
	default:
		return report.ByDay, fmt.Errorf("unknown granularity %q (day, week, month, year)", s)
	}
}

func printReport(buckets []report.Bucket, granularity report.Granularity, currency rune) {
	maxSeconds := 0
	totalSeconds := 0
	totalEarnings := 0.0
	totalTasks := 0
	for _, bucket := range buckets {
		if bucket.Seconds > maxSeconds {
			maxSeconds = bucket.Seconds
		}
		totalSeconds += bucket.Seconds
		totalEarnings += bucket.Earnings
		totalTasks += bucket.TaskCount
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentBright))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))

	showEarnings := totalEarnings > 0

	fmt.Printf("\nTracked time by %s\n", granularity)
	fmt.Println(strings.Repeat("-", 72))
	for _, bucket := range buckets {
		bar := ""
		if maxSeconds > 0 {
			width := bucket.Seconds * 30 / maxSeconds
			if width == 0 && bucket.Seconds > 0 {
				width = 1
			}
			bar = barStyle.Render(strings.Repeat("█", width))
		}
		line := fmt.Sprintf("%s %10s  %-30s",
			labelStyle.Render(fmt.Sprintf("%-24s", bucket.Label)),
			report.FormatTimeLong(bucket.Seconds),
			bar)
		if showEarnings {
			line += fmt.Sprintf(" %c%.2f", currency, bucket.Earnings)
		}
		fmt.Println(line)
	}
	fmt.Println(strings.Repeat("-", 72))
	fmt.Printf("Total: %s across %d tasks", report.FormatTimeLong(totalSeconds), totalTasks)
	if showEarnings {
		fmt.Printf(", earned %c%.2f", currency, totalEarnings)
	}
	fmt.Println()
}

func init() {
	reportCmd.Flags().StringP("timeframe", "t", "", "Named range: this-week, last-week, past-7-days, this-month, last-month, past-30-days, past-180-days, past-365-days, all-time")
	reportCmd.Flags().String("from", "", "Custom range start (2006-01-02)")
	reportCmd.Flags().String("to", "", "Custom range end (2006-01-02)")
	reportCmd.Flags().StringP("granularity", "g", "", "Bucket size: day, week, month, year")
}
