package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/models"
	"github.com/unobserved-io/furt/internal/parser"
)

// formField indexes the wizard inputs
type formField int

const (
	fieldName formField = iota
	fieldTags
	fieldProject
	fieldRate
	fieldStart
	fieldStop
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Tags (space separated)",
	"Project",
	"Rate per hour",
	"Start (2006-01-02 15:04)",
	"Stop (2006-01-02 15:04)",
}

// TaskFormModel is the interactive editor behind `furt add` and `furt edit`
type TaskFormModel struct {
	width  int
	height int

	focus    formField
	inputs   [fieldCount]textinput.Model
	currency rune

	isEdit   bool
	editTask *models.Task // the fetched row in edit mode, updated in place

	err       error
	completed bool
	cancelled bool
	saved     *models.Task
}

// NewTaskFormModel builds the wizard, optionally prefilled (add mode).
func NewTaskFormModel(currency rune, prefilled map[string]string) TaskFormModel {
	m := TaskFormModel{currency: currency}
	placeholders := [fieldCount]string{
		"What are you working on?",
		"work urgent",
		"ClientX",
		"0",
		time.Now().Add(-time.Hour).Format("2006-01-02 15:04"),
		time.Now().Format("2006-01-02 15:04"),
	}
	keys := [fieldCount]string{"name", "tags", "project", "rate", "start", "stop"}

	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		if value, ok := prefilled[keys[i]]; ok {
			input.SetValue(value)
		}
		m.inputs[i] = input
	}
	m.inputs[fieldName].Focus()
	return m
}

// NewEditTaskFormModel builds the wizard prefilled from a stored task.
func NewEditTaskFormModel(currency rune, task *models.Task) TaskFormModel {
	m := NewTaskFormModel(currency, map[string]string{
		"name":    task.Name,
		"tags":    strings.Join(task.TagList(), " "),
		"project": task.Project,
		"rate":    fmt.Sprintf("%g", task.Rate),
		"start":   task.StartTime.Local().Format("2006-01-02 15:04"),
		"stop":    task.StopTime.Local().Format("2006-01-02 15:04"),
	})
	m.isEdit = true
	m.editTask = task
	return m
}

// Init is a no-op, the cursor blink comes from the focused input
func (m TaskFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m TaskFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if m.focus == fieldCount-1 {
				if err := m.save(); err != nil {
					m.err = err
					return m, nil
				}
				m.completed = true
				return m, tea.Quit
			}
			m.setFocus(m.focus + 1)
			return m, nil

		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil

		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *TaskFormModel) setFocus(field formField) {
	m.inputs[m.focus].Blur()
	m.focus = field
	m.inputs[m.focus].Focus()
	m.err = nil
}

// save validates the form through the same mini-grammar the timer uses and
// writes the task.
func (m *TaskFormModel) save() error {
	raw := m.inputs[fieldName].Value()
	for _, tag := range strings.Fields(m.inputs[fieldTags].Value()) {
		raw += " #" + strings.TrimPrefix(tag, "#")
	}
	if project := strings.TrimSpace(m.inputs[fieldProject].Value()); project != "" {
		raw += " @" + project
	}
	if rate := strings.TrimSpace(m.inputs[fieldRate].Value()); rate != "" && rate != "0" {
		raw += fmt.Sprintf(" %c%s", m.currency, rate)
	}
	parsed, err := parser.Parse(raw, m.currency)
	if err != nil {
		return err
	}

	start, err := parseFormTime(m.inputs[fieldStart].Value())
	if err != nil {
		return fmt.Errorf("bad start time: %w", err)
	}
	stop, err := parseFormTime(m.inputs[fieldStop].Value())
	if err != nil {
		return fmt.Errorf("bad stop time: %w", err)
	}

	task, err := models.NewTask(parsed.Name, parser.TagString(parsed.Tags), parsed.Project, parsed.Rate, start, stop)
	if err != nil {
		return err
	}

	if m.isEdit {
		// Update the fetched row in place so gorm's Save keeps the
		// bookkeeping columns it already carries.
		m.editTask.Name = task.Name
		m.editTask.Tags = task.Tags
		m.editTask.Project = task.Project
		m.editTask.Rate = task.Rate
		m.editTask.StartTime = task.StartTime
		m.editTask.StopTime = task.StopTime
		if err := db.UpdateTask(m.editTask); err != nil {
			return err
		}
		m.saved = m.editTask
		return nil
	}

	if err := db.CreateTask(task); err != nil {
		return err
	}
	m.saved = task
	return nil
}

func parseFormTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expected 2006-01-02 15:04, got %q", value)
}

// View renders the wizard
func (m TaskFormModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := "ADD TASK"
	if m.isEdit {
		title = fmt.Sprintf("EDIT TASK #%d", m.editTask.ID)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")

	for i := formField(0); i < fieldCount; i++ {
		labelColor := ColorSecondaryText
		if i == m.focus {
			labelColor = ColorAccentBright
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(labelColor)).Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render("enter next · tab/shift+tab move · esc cancel"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
