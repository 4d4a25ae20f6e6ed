package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/csvio"
	"github.com/unobserved-io/furt/internal/db"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Export all tasks to a CSV file",
	Long: `Write every recorded task to a CSV file.

Examples:
  furt export backup.csv`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := initApp(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		tasks, err := db.AllTasks()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		file, err := os.Create(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer file.Close()

		if err := csvio.Export(file, tasks); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Exported %d tasks to %s\n", len(tasks), args[0])
	},
}
