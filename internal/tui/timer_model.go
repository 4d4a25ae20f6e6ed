package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/idle"
	"github.com/unobserved-io/furt/internal/models"
	"github.com/unobserved-io/furt/internal/report"
	"github.com/unobserved-io/furt/internal/timer"
)

// eventQueue collects machine events so the model can react to them after
// each machine call. Everything runs on the bubbletea update goroutine.
type eventQueue struct {
	events []timer.Event
}

func (q *eventQueue) push(e timer.Event) {
	q.events = append(q.events, e)
}

func (q *eventQueue) drain() []timer.Event {
	events := q.events
	q.events = nil
	return events
}

// TimerModel is the TUI around one running timer session
type TimerModel struct {
	width  int
	height int

	machine      *timer.Machine
	queue        *eventQueue
	autosavePath string
	sampleIdle   bool
	currency     rune

	now       time.Time
	animFrame int

	// Prompts surfaced by machine events
	timeUpPrompt bool
	idlePrompt   bool
	idleSince    time.Time
	bigBreak     bool

	// Exit state
	stoppedTask *models.Task
	breakEnded  bool // stop pressed during a break, nothing extra recorded
	discarded   bool
	detached    bool
	err         error
	quitting    bool
}

// timerTickMsg is sent every second to update the clock and drive the machine
type timerTickMsg struct{}

// autosaveTickMsg is sent every minute to refresh the crash-recovery snapshot
type autosaveTickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// NewTimerModel constructs the machine and starts the session. A parse
// failure comes back before any terminal state is touched.
func NewTimerModel(cfg timer.Config, raw string, autosavePath string) (TimerModel, error) {
	queue := &eventQueue{}
	machine := timer.New(cfg, db.TaskStore{}, queue.push)

	now := time.Now()
	if err := machine.Start(raw, now); err != nil {
		return TimerModel{}, err
	}

	model := TimerModel{
		machine:      machine,
		queue:        queue,
		autosavePath: autosavePath,
		sampleIdle:   cfg.IdleEnabled,
		currency:     cfg.Currency,
		now:          now,
	}
	model.writeAutosave(now)
	queue.drain() // the started event needs no prompt
	return model, nil
}

// Init starts the timer, autosave and animation tickers
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(time.Second, func(time.Time) tea.Msg { return timerTickMsg{} }),
		tea.Tick(time.Minute, func(time.Time) tea.Msg { return autosaveTickMsg{} }),
		tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return animationTickMsg{} }),
	)
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.now = time.Now()
		m.machine.Tick(m.now, m.sampledIdle())
		m.applyEvents()
		if m.quitting {
			return m, nil
		}
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return timerTickMsg{} })

	case autosaveTickMsg:
		m.writeAutosave(time.Now())
		if m.quitting {
			return m, nil
		}
		return m, tea.Tick(time.Minute, func(time.Time) tea.Msg { return autosaveTickMsg{} })

	case animationTickMsg:
		m.animFrame = (m.animFrame + 1) % 4
		if m.quitting {
			return m, nil
		}
		return m, tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return animationTickMsg{} })

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m TimerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()

	// The idle prompt takes over the keyboard until resolved
	if m.idlePrompt {
		switch msg.String() {
		case "d":
			task, err := m.machine.ResolveIdle(true, now)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.stoppedTask = task
			return m.finish()
		case "c":
			if _, err := m.machine.ResolveIdle(false, now); err != nil {
				m.err = err
				return m, nil
			}
			m.idlePrompt = false
			return m, nil
		case "ctrl+c":
			return m.detach(now)
		}
		return m, nil
	}

	switch msg.String() {
	case "s":
		task, err := m.machine.Stop(now)
		if err != nil {
			m.err = err
			return m, nil
		}
		if task == nil {
			m.breakEnded = true
		}
		m.stoppedTask = task
		return m.finish()

	case "b":
		if m.machine.State() == timer.StateRunning || m.machine.State() == timer.StateExtended {
			if _, err := m.machine.TakeBreak(now); err != nil {
				m.err = err
				return m, nil
			}
			m.timeUpPrompt = false
			m.applyEvents()
		}
		return m, nil

	case "c":
		switch {
		case m.timeUpPrompt:
			if err := m.machine.ContinueWorking(now); err == nil {
				m.timeUpPrompt = false
			}
		case m.machine.State() == timer.StateOnBreak:
			if err := m.machine.SkipBreak(now); err == nil {
				m.applyEvents()
			}
		}
		return m, nil

	case "x":
		if err := m.machine.Discard(now); err != nil {
			m.err = err
			return m, nil
		}
		m.discarded = true
		return m.finish()

	case "ctrl+c", "esc", "q":
		return m.detach(now)
	}

	return m, nil
}

// finish ends the program after a clean stop or discard; the autosave
// snapshot is gone either way.
func (m TimerModel) finish() (tea.Model, tea.Cmd) {
	if err := timer.ClearAutosave(m.autosavePath); err != nil && m.err == nil {
		m.err = err
	}
	m.quitting = true
	return m, tea.Quit
}

// detach leaves the TUI with the session recorded in the autosave file so
// `furt stop` or `furt restore` can complete it later.
func (m TimerModel) detach(now time.Time) (tea.Model, tea.Cmd) {
	m.writeAutosave(now)
	m.detached = true
	m.quitting = true
	return m, tea.Quit
}

func (m *TimerModel) applyEvents() {
	for _, e := range m.queue.drain() {
		switch e.Kind {
		case timer.EventWorkPhaseEnded:
			m.timeUpPrompt = true
		case timer.EventIdleStarted:
			m.idleSince = e.IdleSince
		case timer.EventIdleReturned:
			m.idlePrompt = true
			m.idleSince = e.IdleSince
		case timer.EventBreakStarted:
			m.bigBreak = e.BigBreak
			m.timeUpPrompt = false
			// The segment the snapshot described was just persisted; a
			// crash or detach during the break must not resurrect it.
			if err := timer.ClearAutosave(m.autosavePath); err != nil && m.err == nil {
				m.err = err
			}
		case timer.EventBreakEnded:
			m.bigBreak = false
			m.writeAutosave(e.At)
		}
	}
}

func (m *TimerModel) sampledIdle() time.Duration {
	if !m.sampleIdle {
		return 0
	}
	state := m.machine.State()
	if state != timer.StateRunning && state != timer.StateExtended {
		return 0
	}
	sampled, err := idle.InputIdle()
	if err != nil {
		return 0
	}
	return sampled
}

func (m *TimerModel) writeAutosave(now time.Time) {
	snap, ok := m.machine.Snapshot(now)
	if !ok {
		return
	}
	if err := timer.WriteAutosave(m.autosavePath, snap); err != nil && m.err == nil {
		m.err = err
	}
}

// View renders the timer TUI
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	if m.width < 90 {
		// Narrow view: just the timer panel, full width
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderTimerPanel(m.width, contentHeight),
			helpBar,
		)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTimerPanel(leftWidth, contentHeight),
		"  ",
		m.renderDetailsPanel(rightWidth, contentHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

// renderTimerPanel renders the clock side of the screen
func (m TimerModel) renderTimerPanel(width, height int) string {
	var components []string

	centered := func(color string, bold bool, text string) string {
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(color)).
			Bold(bold).
			Align(lipgloss.Center).
			Width(width)
		return style.Render(text)
	}

	onBreak := m.machine.State() == timer.StateOnBreak

	// Animated header
	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	header := fmt.Sprintf("%s  TRACKING TIME  %s", animChars[m.animFrame], animChars[m.animFrame])
	headerColor := ColorAccentBright
	if onBreak {
		breakWord := "BREAK"
		if m.bigBreak {
			breakWord = "BIG BREAK"
		}
		header = fmt.Sprintf("☕  %s  ☕", breakWord)
		headerColor = ColorSuccess
	}
	components = append(components, centered(headerColor, true, header))

	// Task name
	parsed := m.machine.ParsedTask()
	name := parsed.Name
	if len(name) > width-4 && width > 7 {
		name = name[:width-7] + "..."
	}
	components = append(components, centered(ColorPrimaryText, true, name))

	// Big clock: elapsed while working, countdown while on break
	var clockSeconds int
	if onBreak {
		clockSeconds = int(m.machine.BreakUntil().Sub(m.now).Seconds())
		if clockSeconds < 0 {
			clockSeconds = 0
		}
	} else {
		clockSeconds = int(m.machine.Elapsed(m.now).Seconds())
	}
	clock := m.renderBigClock(clockSeconds, onBreak)
	var clockContent strings.Builder
	for _, line := range strings.Split(clock, "\n") {
		clockContent.WriteString(lipgloss.NewStyle().Align(lipgloss.Center).Width(width).Render(line))
		clockContent.WriteString("\n")
	}
	components = append(components, strings.TrimRight(clockContent.String(), "\n"))

	// Status line under the clock
	switch {
	case m.idlePrompt:
		idleFor := report.FormatTimeShort(int(m.now.Sub(m.idleSince).Seconds()))
		components = append(components, centered(ColorError, true,
			fmt.Sprintf("You were idle for %s", idleFor)))
		components = append(components, centered(ColorSecondaryText, false,
			"d discard idle time · c count it as work"))
	case m.timeUpPrompt:
		components = append(components, centered(ColorWarning, true, "Time's up!"))
		components = append(components, centered(ColorSecondaryText, false,
			"b take a break · c keep working · s stop & save"))
	case onBreak:
		components = append(components, centered(ColorSecondaryText, false,
			fmt.Sprintf("Break ends at %s", m.machine.BreakUntil().Format("15:04:05"))))
	default:
		components = append(components, centered(ColorSecondaryText, false,
			fmt.Sprintf("Started at %s", m.machine.StartTime().Format("15:04:05"))))
	}

	if m.err != nil {
		components = append(components, centered(ColorError, false, m.err.Error()))
	}

	content := strings.Join(components, "\n\n")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// bigDigits is the 5-row ASCII art used by the clock display
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock renders the ASCII art clock
func (m TimerModel) renderBigClock(seconds int, onBreak bool) string {
	var timeStr string
	if seconds >= 3600 {
		timeStr = report.FormatTimeLong(seconds)
	} else {
		timeStr = fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
	}

	var lines [5]strings.Builder
	for _, char := range timeStr {
		art, ok := bigDigits[char]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	color := ColorAccentBright
	if onBreak {
		color = ColorSuccess
	}
	clockStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)

	var result strings.Builder
	for i := 0; i < 5; i++ {
		result.WriteString(clockStyle.Render(lines[i].String()))
		if i < 4 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// renderDetailsPanel renders the session details on the right
func (m TimerModel) renderDetailsPanel(width, height int) string {
	parsed := m.machine.ParsedTask()
	var b strings.Builder

	b.WriteString("\n")

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width - 12).
		Padding(0, 1)
	b.WriteString(lipgloss.NewStyle().Width(width - 8).Align(lipgloss.Center).Render(titleStyle.Render(parsed.Name)))
	b.WriteString("\n\n")

	line := func(label, value, color string) {
		style := lipgloss.NewStyle().Align(lipgloss.Center).Width(width - 8)
		rendered := fmt.Sprintf("%s %s", label,
			lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(value))
		b.WriteString(style.Render(rendered))
		b.WriteString("\n")
	}

	tagsValue, tagsColor := "none", ColorDisabledText
	if len(parsed.Tags) > 0 {
		var names []string
		for _, tag := range parsed.Tags {
			names = append(names, "#"+tag)
		}
		tagsValue, tagsColor = strings.Join(names, " "), ColorAccentBright
	}
	line("🏷️  Tags:", tagsValue, tagsColor)

	projectValue, projectColor := "none", ColorDisabledText
	if parsed.Project != "" {
		projectValue, projectColor = parsed.Project, ColorAccentBright
	}
	line("📁 Project:", projectValue, projectColor)

	rateValue, rateColor := "unpaid", ColorDisabledText
	if parsed.Rate > 0 {
		rateValue = fmt.Sprintf("%c%.2f/h", m.currency, parsed.Rate)
		rateColor = ColorSuccess
	}
	line("💰 Rate:", rateValue, rateColor)

	if parsed.Rate > 0 && m.machine.State() != timer.StateOnBreak {
		earned := parsed.Rate / 3600.0 * m.machine.Elapsed(m.now).Seconds()
		line("📈 Earned:", fmt.Sprintf("%c%.2f", m.currency, earned), ColorSuccess)
	}

	if m.machine.SessionCount() > 0 {
		line("🍅 Session:", fmt.Sprintf("#%d", m.machine.SessionCount()), ColorSecondaryText)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

// renderHelpBar renders the help bar at the bottom
func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	var helpText string
	switch {
	case m.idlePrompt:
		helpText = "d discard idle time · c continue counting"
	case m.machine.State() == timer.StateOnBreak:
		helpText = "c skip break · s stop & finish · esc/q detach"
	default:
		helpText = "s stop & save · b break · x discard · esc/q detach (keep running)"
	}
	return helpStyle.Render(helpText)
}

// Result reports what happened during an interactive timer run.
type Result struct {
	Task      *models.Task // recorded task, nil when nothing was saved
	Discarded bool
	Detached  bool // session left running in the autosave file
}

// RunTimer starts a session from raw input and runs the interactive timer.
func RunTimer(cfg timer.Config, raw string, autosavePath string) (Result, error) {
	model, err := NewTimerModel(cfg, raw, autosavePath)
	if err != nil {
		return Result{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	final := finalModel.(TimerModel)
	if final.err != nil {
		return Result{}, final.err
	}
	return Result{
		Task:      final.stoppedTask,
		Discarded: final.discarded,
		Detached:  final.detached,
	}, nil
}
