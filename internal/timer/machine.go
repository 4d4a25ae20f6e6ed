package timer

import (
	"errors"
	"time"

	"github.com/unobserved-io/furt/internal/models"
	"github.com/unobserved-io/furt/internal/parser"
)

var (
	ErrSessionActive  = errors.New("a timer is already running")
	ErrNoSession      = errors.New("no timer is running")
	ErrNotOnBreak     = errors.New("not on a break")
	ErrNoIdleDecision = errors.New("no idle decision is pending")
)

// State is the machine's current phase.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateOnBreak
	StateExtended // pomodoro grace period after time-up, before the user decides
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateOnBreak:
		return "on-break"
	case StateExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// Config holds the knobs the machine runs with.
type Config struct {
	Currency rune

	PomodoroEnabled bool
	WorkLength      time.Duration
	BreakLength     time.Duration
	BigBreakEvery   int // every Nth break is the long one, 0 disables
	BigBreakLength  time.Duration

	IdleEnabled   bool // capability flag: off on platforms with no idle sampling
	IdleThreshold time.Duration
}

// Store is where completed tasks go. The machine only writes after a
// successful state transition.
type Store interface {
	CreateTask(task *models.Task) error
}

// Machine owns the one timer session of the process: start/stop, pomodoro
// work/break cycling and idle detection. It is explicitly constructed and
// passed around, never a package global, and all methods are meant to run
// on one goroutine (the TUI update loop).
type Machine struct {
	cfg    Config
	store  Store
	notify func(Event)

	state        State
	raw          string
	parsed       parser.Task
	startTime    time.Time
	workDeadline time.Time
	breakUntil   time.Time
	sessionCount int

	idleStart    time.Time
	idleReached  bool
	idleNotified bool
}

// New builds a stopped machine. notify may be nil.
func New(cfg Config, store Store, notify func(Event)) *Machine {
	return &Machine{cfg: cfg, store: store, notify: notify}
}

func (m *Machine) State() State            { return m.state }
func (m *Machine) StartTime() time.Time    { return m.startTime }
func (m *Machine) RawInput() string        { return m.raw }
func (m *Machine) ParsedTask() parser.Task { return m.parsed }
func (m *Machine) BreakUntil() time.Time   { return m.breakUntil }
func (m *Machine) WorkDeadline() time.Time { return m.workDeadline }
func (m *Machine) SessionCount() int       { return m.sessionCount }

// Elapsed returns the whole seconds of the current work segment.
func (m *Machine) Elapsed(now time.Time) time.Duration {
	if m.state == StateIdle || m.state == StateOnBreak {
		return 0
	}
	return now.Sub(m.startTime).Truncate(time.Second)
}

// IdleDecisionPending reports whether an idle discard/continue choice has
// been surfaced and not yet resolved.
func (m *Machine) IdleDecisionPending() bool {
	return m.idleReached && m.idleNotified
}

// IdleSince returns when the tracked idle span effectively began.
func (m *Machine) IdleSince() time.Time { return m.idleStart }

// Start begins a work session from the raw "name #tag @project $rate"
// input. Starting while anything is running is rejected; the current-state
// check is what makes start/stop atomic, no lock needed on a single
// update loop.
func (m *Machine) Start(raw string, now time.Time) error {
	if m.state != StateIdle {
		return ErrSessionActive
	}
	parsed, err := parser.Parse(raw, m.cfg.Currency)
	if err != nil {
		return err
	}

	m.raw = raw
	m.parsed = parsed
	m.startTime = now
	m.state = StateRunning
	if m.cfg.PomodoroEnabled {
		m.workDeadline = now.Add(m.cfg.WorkLength)
		m.sessionCount++
	}
	m.emit(Event{Kind: EventStarted, At: now})
	return nil
}

// Stop ends the session and persists the current work segment. Stopping
// during a break records nothing extra, the segment was saved when the
// break began. Stop with no session is surfaced as ErrNoSession so callers
// can treat it as a no-op.
func (m *Machine) Stop(now time.Time) (*models.Task, error) {
	switch m.state {
	case StateIdle:
		return nil, ErrNoSession
	case StateOnBreak:
		m.reset()
		m.emit(Event{Kind: EventStopped, At: now})
		return nil, nil
	}

	task, err := m.record(m.startTime, now)
	if err != nil {
		// State stays untouched so the user can retry
		return nil, err
	}
	m.reset()
	m.emit(Event{Kind: EventStopped, At: now, Task: task})
	return task, nil
}

// Discard drops the session from any state without recording anything.
func (m *Machine) Discard(now time.Time) error {
	if m.state == StateIdle {
		return ErrNoSession
	}
	m.reset()
	m.emit(Event{Kind: EventStopped, At: now})
	return nil
}

// Tick drives the wall-clock dependent transitions. inputIdle is the
// sampled OS input-idle duration; pass zero when idle detection is off.
// Called at ~1 Hz from the display loop.
func (m *Machine) Tick(now time.Time, inputIdle time.Duration) {
	switch m.state {
	case StateRunning:
		if m.cfg.PomodoroEnabled && !m.workDeadline.IsZero() && !now.Before(m.workDeadline) {
			m.state = StateExtended
			m.emit(Event{Kind: EventWorkPhaseEnded, At: now})
		}
		m.sampleIdle(now, inputIdle)
	case StateExtended:
		m.sampleIdle(now, inputIdle)
	case StateOnBreak:
		if !now.Before(m.breakUntil) {
			m.beginWorkSegment(now)
			m.emit(Event{Kind: EventBreakEnded, At: now})
		}
	}
}

// TakeBreak records the current work segment and starts the intermission
// countdown. Every Nth session earns the long break.
func (m *Machine) TakeBreak(now time.Time) (*models.Task, error) {
	if m.state != StateRunning && m.state != StateExtended {
		return nil, ErrNoSession
	}
	task, err := m.record(m.startTime, now)
	if err != nil {
		return nil, err
	}

	length := m.cfg.BreakLength
	bigBreak := m.cfg.BigBreakEvery > 0 && m.sessionCount%m.cfg.BigBreakEvery == 0
	if bigBreak {
		length = m.cfg.BigBreakLength
	}

	m.state = StateOnBreak
	m.breakUntil = now.Add(length)
	m.workDeadline = time.Time{}
	m.clearIdle()
	m.emit(Event{
		Kind:       EventBreakStarted,
		At:         now,
		Task:       task,
		BreakUntil: m.breakUntil,
		BigBreak:   bigBreak,
	})
	return task, nil
}

// SkipBreak cuts the break short and starts the next work segment now.
func (m *Machine) SkipBreak(now time.Time) error {
	if m.state != StateOnBreak {
		return ErrNotOnBreak
	}
	m.beginWorkSegment(now)
	m.emit(Event{Kind: EventBreakEnded, At: now})
	return nil
}

// ContinueWorking dismisses the pomodoro time-up prompt and keeps the
// extended segment counting.
func (m *Machine) ContinueWorking(now time.Time) error {
	if m.state != StateExtended {
		return ErrNoSession
	}
	m.state = StateRunning
	m.workDeadline = now.Add(m.cfg.WorkLength)
	return nil
}

// ResolveIdle applies the user's discard/continue choice after an idle
// span. The decision only exists once input has returned, matching
// IdleDecisionPending. Discard stops the timer at the moment the idle
// threshold was reached, excluding the idle span from the recorded task.
func (m *Machine) ResolveIdle(discard bool, now time.Time) (*models.Task, error) {
	if !m.idleReached || !m.idleNotified {
		return nil, ErrNoIdleDecision
	}
	if !discard {
		m.clearIdle()
		return nil, nil
	}

	stoppedAt := m.idleStart
	task, err := m.record(m.startTime, stoppedAt)
	if err != nil {
		return nil, err
	}
	m.reset()
	m.emit(Event{Kind: EventStopped, At: stoppedAt, Task: task})
	return task, nil
}

func (m *Machine) sampleIdle(now time.Time, inputIdle time.Duration) {
	if !m.cfg.IdleEnabled || m.cfg.IdleThreshold <= 0 {
		return
	}
	if !m.idleReached {
		if inputIdle >= m.cfg.IdleThreshold {
			m.idleReached = true
			m.idleStart = now
			m.emit(Event{Kind: EventIdleStarted, At: now, IdleSince: m.idleStart})
		}
		return
	}
	if !m.idleNotified && inputIdle < m.cfg.IdleThreshold {
		m.idleNotified = true
		m.emit(Event{Kind: EventIdleReturned, At: now, IdleSince: m.idleStart})
	}
}

// record validates and persists one work segment.
func (m *Machine) record(start, stop time.Time) (*models.Task, error) {
	task, err := models.NewTask(
		m.parsed.Name,
		parser.TagString(m.parsed.Tags),
		m.parsed.Project,
		m.parsed.Rate,
		start,
		stop,
	)
	if err != nil {
		return nil, err
	}
	if err := m.store.CreateTask(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (m *Machine) beginWorkSegment(now time.Time) {
	m.state = StateRunning
	m.startTime = now
	m.breakUntil = time.Time{}
	if m.cfg.PomodoroEnabled {
		m.workDeadline = now.Add(m.cfg.WorkLength)
		m.sessionCount++
	}
}

func (m *Machine) clearIdle() {
	m.idleStart = time.Time{}
	m.idleReached = false
	m.idleNotified = false
}

func (m *Machine) reset() {
	m.state = StateIdle
	m.raw = ""
	m.parsed = parser.Task{}
	m.startTime = time.Time{}
	m.workDeadline = time.Time{}
	m.breakUntil = time.Time{}
	m.clearIdle()
}

func (m *Machine) emit(e Event) {
	if m.notify != nil {
		m.notify(e)
	}
}
