package timer

import (
	"errors"
	"testing"
	"time"

	"github.com/unobserved-io/furt/internal/models"
)

type fakeStore struct {
	tasks   []*models.Task
	failing bool
}

func (s *fakeStore) CreateTask(task *models.Task) error {
	if s.failing {
		return errors.New("database is gone")
	}
	s.tasks = append(s.tasks, task)
	return nil
}

func newTestMachine(cfg Config) (*Machine, *fakeStore, *[]Event) {
	store := &fakeStore{}
	var events []Event
	m := New(cfg, store, func(e Event) { events = append(events, e) })
	return m, store, &events
}

var t0 = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

func TestStartStop(t *testing.T) {
	m, store, events := newTestMachine(Config{Currency: '$'})

	if err := m.Start("Write report #work #urgent @ClientX $50", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if m.State() != StateRunning {
		t.Fatalf("state = %v, want running", m.State())
	}

	task, err := m.Stop(t0.Add(3725 * time.Second))
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if m.State() != StateIdle {
		t.Errorf("state after stop = %v, want idle", m.State())
	}
	if task.SecondsTotal() != 3725 {
		t.Errorf("duration = %d, want 3725", task.SecondsTotal())
	}
	if task.Name != "Write report" || task.Tags != "#work #urgent" || task.Project != "ClientX" || task.Rate != 50 {
		t.Errorf("recorded task = %+v", task)
	}
	if len(store.tasks) != 1 {
		t.Errorf("store holds %d tasks, want 1", len(store.tasks))
	}

	kinds := eventKinds(*events)
	if len(kinds) != 2 || kinds[0] != EventStarted || kinds[1] != EventStopped {
		t.Errorf("events = %v", kinds)
	}
}

func TestStopBeforeStartIsRejected(t *testing.T) {
	m, store, _ := newTestMachine(Config{})
	if err := m.Start("Write report", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := m.Stop(t0.Add(-time.Minute)); !errors.Is(err, models.ErrStopBeforeStart) {
		t.Fatalf("Stop before start error = %v", err)
	}
	// Nothing persisted, session still live for a retry
	if len(store.tasks) != 0 {
		t.Errorf("store holds %d tasks, want 0", len(store.tasks))
	}
	if m.State() != StateRunning {
		t.Errorf("state = %v, want running", m.State())
	}
}

func TestStopWithoutSession(t *testing.T) {
	m, _, _ := newTestMachine(Config{})
	if _, err := m.Stop(t0); !errors.Is(err, ErrNoSession) {
		t.Errorf("Stop on idle machine error = %v, want ErrNoSession", err)
	}
}

func TestDoubleStartIsRejected(t *testing.T) {
	m, _, _ := newTestMachine(Config{})
	if err := m.Start("First", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Start("Second", t0.Add(time.Minute)); !errors.Is(err, ErrSessionActive) {
		t.Errorf("second Start error = %v, want ErrSessionActive", err)
	}
}

func TestStartWithInvalidInput(t *testing.T) {
	m, _, _ := newTestMachine(Config{})
	if err := m.Start("#tags only", t0); err == nil {
		t.Fatal("expected parse error")
	}
	if m.State() != StateIdle {
		t.Errorf("state after failed start = %v, want idle", m.State())
	}
}

func TestStoreFailureKeepsSessionAlive(t *testing.T) {
	store := &fakeStore{failing: true}
	m := New(Config{}, store, nil)
	if err := m.Start("Write report", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := m.Stop(t0.Add(time.Hour)); err == nil {
		t.Fatal("expected store error")
	}
	if m.State() != StateRunning {
		t.Errorf("state = %v, want running after failed save", m.State())
	}

	store.failing = false
	if _, err := m.Stop(t0.Add(time.Hour)); err != nil {
		t.Fatalf("retry Stop: %v", err)
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want idle after retry", m.State())
	}
}

func TestPomodoroCycle(t *testing.T) {
	cfg := Config{
		PomodoroEnabled: true,
		WorkLength:      25 * time.Minute,
		BreakLength:     5 * time.Minute,
		BigBreakEvery:   2,
		BigBreakLength:  20 * time.Minute,
	}
	m, store, events := newTestMachine(cfg)

	if err := m.Start("Focus", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Deadline passes: the timer keeps counting in the extended phase
	m.Tick(t0.Add(25*time.Minute), 0)
	if m.State() != StateExtended {
		t.Fatalf("state at deadline = %v, want extended", m.State())
	}

	// User takes the break a minute later; the overrun is part of the task
	breakAt := t0.Add(26 * time.Minute)
	task, err := m.TakeBreak(breakAt)
	if err != nil {
		t.Fatalf("TakeBreak: %v", err)
	}
	if task.SecondsTotal() != 26*60 {
		t.Errorf("segment duration = %d, want %d", task.SecondsTotal(), 26*60)
	}
	if m.State() != StateOnBreak {
		t.Fatalf("state = %v, want on-break", m.State())
	}
	if want := breakAt.Add(5 * time.Minute); !m.BreakUntil().Equal(want) {
		t.Errorf("break until %v, want %v", m.BreakUntil(), want)
	}

	// Break expires: a fresh work segment starts automatically
	resumeAt := breakAt.Add(5 * time.Minute)
	m.Tick(resumeAt, 0)
	if m.State() != StateRunning {
		t.Fatalf("state after break = %v, want running", m.State())
	}
	if !m.StartTime().Equal(resumeAt) {
		t.Errorf("new segment start = %v, want %v", m.StartTime(), resumeAt)
	}
	if m.SessionCount() != 2 {
		t.Errorf("session count = %d, want 2", m.SessionCount())
	}

	// Second session: its break is the big one
	bigBreakAt := resumeAt.Add(25 * time.Minute)
	if _, err := m.TakeBreak(bigBreakAt); err != nil {
		t.Fatalf("TakeBreak: %v", err)
	}
	if want := bigBreakAt.Add(20 * time.Minute); !m.BreakUntil().Equal(want) {
		t.Errorf("big break until %v, want %v", m.BreakUntil(), want)
	}

	var sawBig bool
	for _, e := range *events {
		if e.Kind == EventBreakStarted && e.BigBreak {
			sawBig = true
		}
	}
	if !sawBig {
		t.Error("no big break event emitted")
	}
	if len(store.tasks) != 2 {
		t.Errorf("store holds %d segments, want 2", len(store.tasks))
	}
}

func TestSkipBreak(t *testing.T) {
	cfg := Config{PomodoroEnabled: true, WorkLength: 25 * time.Minute, BreakLength: 5 * time.Minute}
	m, _, _ := newTestMachine(cfg)

	if err := m.Start("Focus", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := m.TakeBreak(t0.Add(25 * time.Minute)); err != nil {
		t.Fatalf("TakeBreak: %v", err)
	}

	skipAt := t0.Add(26 * time.Minute)
	if err := m.SkipBreak(skipAt); err != nil {
		t.Fatalf("SkipBreak: %v", err)
	}
	if m.State() != StateRunning || !m.StartTime().Equal(skipAt) {
		t.Errorf("state %v start %v after skip", m.State(), m.StartTime())
	}

	if err := m.SkipBreak(skipAt); !errors.Is(err, ErrNotOnBreak) {
		t.Errorf("SkipBreak while running error = %v, want ErrNotOnBreak", err)
	}
}

func TestStopDuringBreakRecordsNothing(t *testing.T) {
	cfg := Config{PomodoroEnabled: true, WorkLength: 25 * time.Minute, BreakLength: 5 * time.Minute}
	m, store, _ := newTestMachine(cfg)

	if err := m.Start("Focus", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := m.TakeBreak(t0.Add(25 * time.Minute)); err != nil {
		t.Fatalf("TakeBreak: %v", err)
	}

	task, err := m.Stop(t0.Add(27 * time.Minute))
	if err != nil {
		t.Fatalf("Stop during break: %v", err)
	}
	if task != nil {
		t.Errorf("stop during break recorded %+v", task)
	}
	if len(store.tasks) != 1 {
		t.Errorf("store holds %d tasks, want only the work segment", len(store.tasks))
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want idle", m.State())
	}
}

func TestIdleDiscard(t *testing.T) {
	cfg := Config{IdleEnabled: true, IdleThreshold: 300 * time.Second}
	m, _, events := newTestMachine(cfg)

	if err := m.Start("Long task", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Threshold reached 400s in
	m.Tick(t0.Add(400*time.Second), 300*time.Second)
	if m.IdleDecisionPending() {
		t.Fatal("decision surfaced before input returned")
	}

	// Input returns at T+1000
	m.Tick(t0.Add(1000*time.Second), time.Second)
	if !m.IdleDecisionPending() {
		t.Fatal("no decision pending after input returned")
	}

	task, err := m.ResolveIdle(true, t0.Add(1000*time.Second))
	if err != nil {
		t.Fatalf("ResolveIdle: %v", err)
	}
	// The idle span is excluded: stop time is when the threshold hit
	if !task.StopTime.Equal(t0.Add(400 * time.Second)) {
		t.Errorf("stop time = %v, want T+400s", task.StopTime)
	}
	if task.SecondsTotal() != 400 {
		t.Errorf("duration = %d, want 400", task.SecondsTotal())
	}

	kinds := eventKinds(*events)
	want := []EventKind{EventStarted, EventIdleStarted, EventIdleReturned, EventStopped}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
}

func TestIdleContinue(t *testing.T) {
	cfg := Config{IdleEnabled: true, IdleThreshold: 300 * time.Second}
	m, _, _ := newTestMachine(cfg)

	if err := m.Start("Long task", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m.Tick(t0.Add(400*time.Second), 300*time.Second)
	m.Tick(t0.Add(1000*time.Second), time.Second)

	if _, err := m.ResolveIdle(false, t0.Add(1000*time.Second)); err != nil {
		t.Fatalf("ResolveIdle: %v", err)
	}
	if m.IdleDecisionPending() {
		t.Error("decision still pending after continue")
	}
	if m.State() != StateRunning {
		t.Fatalf("state = %v, want running", m.State())
	}

	// The whole span stays active
	task, err := m.Stop(t0.Add(2000 * time.Second))
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if task.SecondsTotal() != 2000 {
		t.Errorf("duration = %d, want 2000", task.SecondsTotal())
	}
}

func TestIdleDisabled(t *testing.T) {
	m, _, events := newTestMachine(Config{})
	if err := m.Start("Task", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m.Tick(t0.Add(time.Hour), time.Hour)
	for _, e := range *events {
		if e.Kind == EventIdleStarted {
			t.Fatal("idle event emitted with idle detection off")
		}
	}
}

func TestResolveIdleWithoutIdle(t *testing.T) {
	m, _, _ := newTestMachine(Config{IdleEnabled: true, IdleThreshold: time.Minute})
	if _, err := m.ResolveIdle(true, t0); !errors.Is(err, ErrNoIdleDecision) {
		t.Errorf("error = %v, want ErrNoIdleDecision", err)
	}
}

func TestResolveIdleBeforeInputReturns(t *testing.T) {
	cfg := Config{IdleEnabled: true, IdleThreshold: 300 * time.Second}
	m, _, _ := newTestMachine(cfg)

	if err := m.Start("Long task", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Threshold crossed but input has not returned: no decision exists yet
	m.Tick(t0.Add(400*time.Second), 300*time.Second)
	if _, err := m.ResolveIdle(true, t0.Add(500*time.Second)); !errors.Is(err, ErrNoIdleDecision) {
		t.Fatalf("error = %v, want ErrNoIdleDecision", err)
	}
	if m.State() != StateRunning {
		t.Fatalf("state = %v, want running", m.State())
	}

	// Once input returns the same call succeeds
	m.Tick(t0.Add(1000*time.Second), time.Second)
	task, err := m.ResolveIdle(true, t0.Add(1000*time.Second))
	if err != nil {
		t.Fatalf("ResolveIdle after return: %v", err)
	}
	if !task.StopTime.Equal(t0.Add(400 * time.Second)) {
		t.Errorf("stop time = %v, want T+400s", task.StopTime)
	}
}

func TestContinueWorkingReArmsDeadline(t *testing.T) {
	cfg := Config{PomodoroEnabled: true, WorkLength: 25 * time.Minute, BreakLength: 5 * time.Minute}
	m, _, _ := newTestMachine(cfg)

	if err := m.Start("Focus", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	deadline := t0.Add(25 * time.Minute)
	m.Tick(deadline, 0)
	if m.State() != StateExtended {
		t.Fatalf("state = %v, want extended", m.State())
	}

	if err := m.ContinueWorking(deadline.Add(time.Minute)); err != nil {
		t.Fatalf("ContinueWorking: %v", err)
	}
	if m.State() != StateRunning {
		t.Errorf("state = %v, want running", m.State())
	}
	if want := deadline.Add(time.Minute).Add(25 * time.Minute); !m.WorkDeadline().Equal(want) {
		t.Errorf("re-armed deadline = %v, want %v", m.WorkDeadline(), want)
	}
}

func TestDiscard(t *testing.T) {
	m, store, _ := newTestMachine(Config{})
	if err := m.Start("Oops", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := m.Discard(t0.Add(time.Minute)); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if len(store.tasks) != 0 {
		t.Errorf("discard persisted %d tasks", len(store.tasks))
	}
	if m.State() != StateIdle {
		t.Errorf("state = %v, want idle", m.State())
	}
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}
