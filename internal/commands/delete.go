package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/db"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [task-id]...",
	Short: "Delete recorded tasks",
	Long: `Delete one or more recorded tasks by ID, or the whole history.

Examples:
  furt delete 42
  furt delete 3 4 5
  furt delete --all`,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := initApp(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		all, _ := cmd.Flags().GetBool("all")
		yes, _ := cmd.Flags().GetBool("yes")

		if all {
			if !yes && !confirm("Delete ALL recorded tasks? This cannot be undone.") {
				fmt.Println("Aborted.")
				return
			}
			if err := db.DeleteAllTasks(); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Println("🗑️  Deleted all tasks.")
			return
		}

		if len(args) == 0 {
			fmt.Println("Provide one or more task IDs, or --all.")
			return
		}

		var ids []uint
		for _, arg := range args {
			id, err := strconv.ParseUint(arg, 10, 32)
			if err != nil {
				fmt.Printf("Error: invalid task ID '%s'\n", arg)
				return
			}
			ids = append(ids, uint(id))
		}

		if len(ids) == 1 {
			if err := db.DeleteTask(ids[0]); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("🗑️  Deleted task #%d.\n", ids[0])
			return
		}

		if err := db.DeleteTasks(ids); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted %d tasks.\n", len(ids))
	},
}

// confirm asks a yes/no question on stdin
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	deleteCmd.Flags().Bool("all", false, "Delete every recorded task")
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
