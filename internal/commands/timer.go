package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/config"
	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/models"
	"github.com/unobserved-io/furt/internal/parser"
	"github.com/unobserved-io/furt/internal/report"
	"github.com/unobserved-io/furt/internal/timer"
	"github.com/unobserved-io/furt/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start [task description]",
	Short: "Start tracking time",
	Long: `Start tracking time on a task. Opens the interactive timer by default,
use --no-ui to record the session in the background instead.

Task syntax:
  #tag        Tags (repeatable)
  @project    Project name
  $rate       Hourly rate (uses your configured currency symbol)

Examples:
  furt start "Write report #work #urgent @ClientX $50"
  furt start "Deep work" --no-ui`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		noUI, _ := cmd.Flags().GetBool("no-ui")
		runTimerSession(cfg, strings.Join(args, " "), noUI)
	},
}

// runTimerSession drives one timer run, shared by start and shortcut start.
func runTimerSession(cfg *config.Config, raw string, noUI bool) {
	autosavePath, err := config.AutosavePath()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// One session per process family: a leftover snapshot means either a
	// detached session or a crash, and the user has to deal with it first.
	if snap, err := timer.ReadAutosave(autosavePath); err == nil {
		fmt.Printf("⚠️  An unfinished session for %q exists (started %s).\n",
			snap.Name, humanize.Time(snap.Start))
		fmt.Println("Use 'furt stop' to finish it, 'furt restore' to save it as last seen, or 'furt discard' to drop it.")
		return
	}

	if noUI {
		startDetached(cfg, raw, autosavePath)
		return
	}

	result, err := tui.RunTimer(timerConfig(cfg), raw, autosavePath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	switch {
	case result.Task != nil:
		task := result.Task
		fmt.Printf("⏹️  Stopped tracking: %s\n", task.Name)
		fmt.Printf("📊 Session duration: %s", report.FormatTimeLong(task.SecondsTotal()))
		if task.Rate > 0 {
			fmt.Printf(" · earned %c%.2f", cfg.Currency(), task.Earnings())
		}
		fmt.Println()
	case result.Discarded:
		fmt.Println("🗑️  Session discarded, nothing saved.")
	case result.Detached:
		fmt.Println("💡 Timer detached and still counting.")
		fmt.Println("   Use 'furt status' to check it or 'furt stop' to finish it.")
	default:
		fmt.Println("⏹️  Timer closed.")
	}
}

// startDetached validates the input and records the session in the
// autosave file without opening the TUI.
func startDetached(cfg *config.Config, raw string, autosavePath string) {
	parsed, err := parser.Parse(raw, cfg.Currency())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	now := time.Now()
	snap := timer.Snapshot{
		Name:     parsed.Name,
		Start:    now,
		LastSeen: now,
		Tags:     parser.TagString(parsed.Tags),
	}
	if err := timer.WriteAutosave(autosavePath, snap); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("⏱️  Started tracking: %s\n", parsed.Name)
	fmt.Printf("Started at: %s · stop with 'furt stop'\n", now.Format("15:04:05"))
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a detached timer",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := initApp(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		autosavePath, err := config.AutosavePath()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		snap, err := timer.ReadAutosave(autosavePath)
		if errors.Is(err, timer.ErrNoAutosave) {
			fmt.Println("No timer is running.")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		task, err := models.NewTask(snap.Name, snap.Tags, "", 0, snap.Start, time.Now())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := db.CreateTask(task); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := timer.ClearAutosave(autosavePath); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("⏹️  Stopped tracking: %s\n", task.Name)
		fmt.Printf("📊 Session duration: %s\n", report.FormatTimeLong(task.SecondsTotal()))
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current timer",
	Run: func(cmd *cobra.Command, args []string) {
		autosavePath, err := config.AutosavePath()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		snap, err := timer.ReadAutosave(autosavePath)
		if errors.Is(err, timer.ErrNoAutosave) {
			fmt.Println("No timer is running.")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		elapsed := int(time.Since(snap.Start).Seconds())
		fmt.Printf("⏱️  Currently tracking: %s\n", snap.Name)
		if snap.Tags != "" {
			fmt.Printf("Tags: %s\n", snap.Tags)
		}
		fmt.Printf("Started: %s (%s)\n", humanize.Time(snap.Start), snap.Start.Format("15:04:05"))
		fmt.Printf("Elapsed time: %s\n", report.FormatTimeLong(elapsed))
	},
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Record the session without the interactive timer")
}
