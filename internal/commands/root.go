package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/config"
	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/idle"
	"github.com/unobserved-io/furt/internal/timer"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "furt",
	Short: "A command-line time tracker",
	Long: `furt tracks the time you spend on tasks. Start a timer with tags, a
project and an hourly rate, take pomodoro breaks, and report on where the
hours went.`,
}

// initApp loads the configuration and opens the database
func initApp() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := db.Initialize(cfg.DatabasePath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// timerConfig translates settings into what the state machine wants. Idle
// detection only arms when the platform can actually sample input.
func timerConfig(cfg *config.Config) timer.Config {
	return timer.Config{
		Currency:        cfg.Currency(),
		PomodoroEnabled: cfg.Pomodoro.Enabled,
		WorkLength:      time.Duration(cfg.Pomodoro.WorkMinutes) * time.Minute,
		BreakLength:     time.Duration(cfg.Pomodoro.BreakMinutes) * time.Minute,
		BigBreakEvery:   cfg.Pomodoro.BigBreakEvery,
		BigBreakLength:  time.Duration(cfg.Pomodoro.BigBreakMinutes) * time.Minute,
		IdleEnabled:     cfg.Idle.Enabled && idle.Supported(),
		IdleThreshold:   time.Duration(cfg.Idle.ThresholdMinutes) * time.Minute,
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("furt %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(shortcutCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(discardCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
