package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for furt",
	Long:  `Display detailed help for all furt commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
███████╗██╗   ██╗██████╗ ████████╗
██╔════╝██║   ██║██╔══██╗╚══██╔══╝
█████╗  ██║   ██║██████╔╝   ██║
██╔══╝  ██║   ██║██╔══██╗   ██║
██║     ╚██████╔╝██║  ██║   ██║
╚═╝      ╚═════╝ ╚═╝  ╚═╝   ╚═╝

furt - CLI Time Tracker

COMMANDS:

  start "<task>"          Start a timer with smart parsing
    --no-ui               Record the start without the timer screen

    Smart syntax:
      #hashtags     Add tags (lowercased, deduplicated)
      @project      Set project (at most one)
      $rate         Set hourly rate (at most one)

    Example:
      furt start "Write report #work #urgent @ClientX $50"

    Timer keys:
      s             Stop and save
      b             Take a break (pomodoro)
      c             Continue working / skip break
      x             Discard the session
      d             Discard idle time (while idle)
      esc/q         Detach, timer keeps counting

  stop                    Stop a detached timer and save the task
  status                  Show the detached timer, if any

  add "<task>"            Record a finished task
    --start, --stop       Times (2006-01-02 15:04); omit for the wizard
  edit <id>               Edit a recorded task
  delete <id>...          Delete recorded tasks
    --all                 Delete everything
    -y, --yes             Skip confirmation

  history                 Tasks grouped by day, newest first
  report                  Chart tracked time over a range
    -t, --timeframe       this-week, last-week, past-7-days, this-month,
                          last-month, past-30-days, past-180-days,
                          past-365-days, all-time
    --from, --to          Custom range (2006-01-02)
    -g, --granularity     day, week, month, year (report only)

  shortcut add "<task>"   Save a timer template
    --color               Hex swatch color
  shortcut ls             List shortcuts
  shortcut start <id>     Start a timer from a shortcut
  shortcut rm <id>        Delete a shortcut

  export <file.csv>       Export all tasks
  import <file.csv>       Import tasks from an export

  restore                 Recover a timer interrupted by a crash
  discard                 Throw away an interrupted timer

  version                 Show version information
  help                    Show this help

Config lives at ~/.config/furt/config.toml (pomodoro, idle detection,
currency, week start). Environment overrides use the FURT_ prefix.

`)
}
