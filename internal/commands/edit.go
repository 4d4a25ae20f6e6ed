package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit a recorded task",
	Long: `Edit a recorded task in the interactive wizard, prefilled with its
current values.

Usage:
  furt edit 42`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		task, err := db.GetTaskByID(uint(taskID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := tui.RunEditTaskForm(cfg.Currency(), task); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}
