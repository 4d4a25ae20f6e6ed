package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/models"
	"github.com/unobserved-io/furt/internal/parser"
)

var shortcutCmd = &cobra.Command{
	Use:     "shortcut",
	Aliases: []string{"sc"},
	Short:   "Manage saved timer templates",
	Long: `Save task descriptions you start often and launch them by id.

Examples:
  furt shortcut add "Standup #work @ClientX $50" --color "#22C55E"
  furt shortcut ls
  furt shortcut start 2
  furt shortcut rm 2`,
}

var shortcutAddCmd = &cobra.Command{
	Use:   "add \"task name #tag @project $rate\"",
	Short: "Save a new shortcut",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		raw := strings.Join(args, " ")
		parsed, err := parser.Parse(raw, cfg.Currency())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		color, _ := cmd.Flags().GetString("color")
		shortcut := &models.Shortcut{
			Name:    parsed.Name,
			Tags:    parser.TagString(parsed.Tags),
			Project: parsed.Project,
			Rate:    parsed.Rate,
		}
		if color != "" {
			shortcut.Color = color
		}

		if err := db.CreateShortcut(shortcut); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Saved shortcut #%d: %s\n", shortcut.ID, shortcut.Name)
	},
}

var shortcutListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List saved shortcuts",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		shortcuts, err := db.GetShortcuts()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(shortcuts) == 0 {
			fmt.Println("No shortcuts yet. Use 'furt shortcut add \"task name\"' to save one.")
			return
		}

		for _, shortcut := range shortcuts {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(shortcut.Color)).Render("●")
			line := fmt.Sprintf("%s #%d %s", swatch, shortcut.ID, shortcut.Name)
			if shortcut.Tags != "" {
				line += " " + shortcut.Tags
			}
			if shortcut.Project != "" {
				line += " @" + shortcut.Project
			}
			if shortcut.Rate > 0 {
				line += fmt.Sprintf(" %c%.2f/hr", cfg.Currency(), shortcut.Rate)
			}
			fmt.Println(line)
		}
	},
}

var shortcutStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Start a timer from a shortcut",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid shortcut id %q\n", args[0])
			return
		}

		shortcut, err := db.GetShortcutByID(uint(id))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		raw := parser.Serialize(parser.Task{
			Name:    shortcut.Name,
			Tags:    tagFields(shortcut.Tags),
			Project: shortcut.Project,
			Rate:    shortcut.Rate,
		}, cfg.Currency())

		noUI, _ := cmd.Flags().GetBool("no-ui")
		runTimerSession(cfg, raw, noUI)
	},
}

var shortcutRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a shortcut",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := initApp(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid shortcut id %q\n", args[0])
			return
		}

		if err := db.DeleteShortcut(uint(id)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted shortcut #%d\n", id)
	},
}

// tagFields splits a normalized "#a #b" tag string back into bare tag names.
func tagFields(tags string) []string {
	var out []string
	for _, field := range strings.Fields(tags) {
		out = append(out, strings.TrimPrefix(field, "#"))
	}
	return out
}

func init() {
	shortcutAddCmd.Flags().String("color", "", "Hex swatch color, e.g. #A78BFA")
	shortcutStartCmd.Flags().Bool("no-ui", false, "Record the start without the timer screen")
	shortcutCmd.AddCommand(shortcutAddCmd)
	shortcutCmd.AddCommand(shortcutListCmd)
	shortcutCmd.AddCommand(shortcutStartCmd)
	shortcutCmd.AddCommand(shortcutRemoveCmd)
}
