package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/models"
	"github.com/unobserved-io/furt/internal/parser"
	"github.com/unobserved-io/furt/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [task description]",
	Short: "Add a completed task manually",
	Long: `Add a task that was not tracked with a timer.

Modes:
  Interactive: furt add (no arguments opens the wizard)
  Quick: furt add "Write report #work @ClientX $50" --start "2024-03-04 09:00" --stop "2024-03-04 10:02"

Without both --start and --stop the wizard opens prefilled from the
description.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		raw := strings.Join(args, " ")
		startFlag, _ := cmd.Flags().GetString("start")
		stopFlag, _ := cmd.Flags().GetString("stop")

		if raw != "" && startFlag != "" && stopFlag != "" {
			addDirect(cfg.Currency(), raw, startFlag, stopFlag)
			return
		}

		prefilled := make(map[string]string)
		if raw != "" {
			parsed, err := parser.Parse(raw, cfg.Currency())
			if err != nil {
				fmt.Printf("⚠️  %v\n", err)
				fmt.Println("Opening the wizard instead...")
				prefilled["name"] = raw
			} else {
				prefilled["name"] = parsed.Name
				prefilled["tags"] = strings.Join(parsed.Tags, " ")
				prefilled["project"] = parsed.Project
				if parsed.Rate > 0 {
					prefilled["rate"] = fmt.Sprintf("%g", parsed.Rate)
				}
			}
		}
		if startFlag != "" {
			prefilled["start"] = startFlag
		}
		if stopFlag != "" {
			prefilled["stop"] = stopFlag
		}

		if err := tui.RunTaskForm(cfg.Currency(), prefilled); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

func addDirect(currency rune, raw, startFlag, stopFlag string) {
	parsed, err := parser.Parse(raw, currency)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	start, err := parseLocalTime(startFlag)
	if err != nil {
		fmt.Printf("Error: bad --start: %v\n", err)
		return
	}
	stop, err := parseLocalTime(stopFlag)
	if err != nil {
		fmt.Printf("Error: bad --stop: %v\n", err)
		return
	}

	task, err := models.NewTask(parsed.Name, parser.TagString(parsed.Tags), parsed.Project, parsed.Rate, start, stop)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := db.CreateTask(task); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("✅ Added task #%d: %s\n", task.ID, task.Name)
}

func parseLocalTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expected 2006-01-02 15:04, got %q", value)
}

func init() {
	addCmd.Flags().String("start", "", "Start time (2006-01-02 15:04)")
	addCmd.Flags().String("stop", "", "Stop time (2006-01-02 15:04)")
}
