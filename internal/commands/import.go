package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/csvio"
	"github.com/unobserved-io/furt/internal/db"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import tasks from a CSV file",
	Long: `Read tasks from a CSV file written by 'furt export' and add them to
the database. The whole file is rejected if any row is malformed, so an
import never partially succeeds.

Examples:
  furt import backup.csv`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := initApp(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		file, err := os.Open(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer file.Close()

		tasks, err := csvio.Import(file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		for i := range tasks {
			if err := db.CreateTask(&tasks[i]); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}
		fmt.Printf("✅ Imported %d tasks from %s\n", len(tasks), args[0])
	},
}
