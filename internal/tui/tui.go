package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unobserved-io/furt/internal/models"
)

// RunTaskForm starts the interactive add-task wizard
func RunTaskForm(currency rune, prefilled map[string]string) error {
	model := NewTaskFormModel(currency, prefilled)
	return runForm(model)
}

// RunEditTaskForm starts the wizard prefilled with an existing task
func RunEditTaskForm(currency rune, task *models.Task) error {
	model := NewEditTaskFormModel(currency, task)
	return runForm(model)
}

func runForm(model TaskFormModel) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(TaskFormModel); ok {
		switch {
		case m.cancelled:
			fmt.Println("❌ Cancelled.")
		case m.completed && m.saved != nil && m.isEdit:
			fmt.Printf("✅ Updated task #%d: %s\n", m.saved.ID, m.saved.Name)
		case m.completed && m.saved != nil:
			fmt.Printf("✅ Added task #%d: %s\n", m.saved.ID, m.saved.Name)
		case m.err != nil:
			fmt.Printf("❌ Error: %v\n", m.err)
		}
	}
	return nil
}
