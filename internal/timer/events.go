package timer

import (
	"time"

	"github.com/unobserved-io/furt/internal/models"
)

// EventKind enumerates every notification the machine can emit. The
// rendering layer switches on the kind instead of the machine knowing
// anything about presentation.
type EventKind int

const (
	// EventStarted fires when a work session begins.
	EventStarted EventKind = iota
	// EventStopped fires when a session ends and its task was persisted.
	// Task carries the recorded task; it is nil when a break was stopped.
	EventStopped
	// EventWorkPhaseEnded fires when the pomodoro work deadline passes.
	// The timer keeps counting until the user picks break or stop.
	EventWorkPhaseEnded
	// EventBreakStarted fires when the user takes a break. Task carries
	// the work segment that was just recorded.
	EventBreakStarted
	// EventBreakEnded fires when a break runs out or is skipped and a new
	// work segment starts.
	EventBreakEnded
	// EventIdleStarted fires when sampled input idleness crosses the
	// configured threshold.
	EventIdleStarted
	// EventIdleReturned fires when input resumes after an idle span; the
	// user now has to choose between discard and continue.
	EventIdleReturned
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	case EventWorkPhaseEnded:
		return "work-phase-ended"
	case EventBreakStarted:
		return "break-started"
	case EventBreakEnded:
		return "break-ended"
	case EventIdleStarted:
		return "idle-started"
	case EventIdleReturned:
		return "idle-returned"
	default:
		return "unknown"
	}
}

// Event is the payload handed to the machine's notify callback.
type Event struct {
	Kind       EventKind
	At         time.Time
	Task       *models.Task // recorded task, when the transition produced one
	BreakUntil time.Time    // set on EventBreakStarted
	BigBreak   bool         // set on EventBreakStarted
	IdleSince  time.Time    // set on idle events
}
