package commands

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/config"
	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/models"
	"github.com/unobserved-io/furt/internal/report"
	"github.com/unobserved-io/furt/internal/timer"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Recover a timer interrupted by a crash",
	Long: `Save the interrupted session recorded in the autosave file as a
completed task. The task stops at the last moment the timer was known to
be running, so time after the crash is not counted.`,
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

		snapshot, err := timer.ReadAutosave(autosavePath)
		if errors.Is(err, timer.ErrNoAutosave) {
			fmt.Println("No interrupted timer to restore.")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		task, err := models.NewTask(snapshot.Name, snapshot.Tags, "", 0, snapshot.Start, snapshot.LastSeen)
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

		fmt.Printf("✅ Restored: %s (%s, last seen %s)\n",
			task.Name,
			report.FormatTimeLong(task.SecondsTotal()),
			humanize.Time(snapshot.LastSeen))
	},
}

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Throw away an interrupted timer",
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

		snapshot, err := timer.ReadAutosave(autosavePath)
		if errors.Is(err, timer.ErrNoAutosave) {
			fmt.Println("No interrupted timer to discard.")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := timer.ClearAutosave(autosavePath); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Discarded interrupted timer: %s\n", snapshot.Name)
	},
}
