package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/unobserved-io/furt/internal/models"
	"github.com/unobserved-io/furt/internal/timer"
)

type memStore struct {
	tasks []*models.Task
}

func (s *memStore) CreateTask(task *models.Task) error {
	s.tasks = append(s.tasks, task)
	return nil
}

func TestBreakClearsAndRestoresAutosave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.txt")
	queue := &eventQueue{}
	store := &memStore{}
	machine := timer.New(timer.Config{
		Currency:        '$',
		PomodoroEnabled: true,
		WorkLength:      25 * time.Minute,
		BreakLength:     5 * time.Minute,
	}, store, queue.push)

	t0 := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	if err := machine.Start("Focus #deep", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}

	model := TimerModel{machine: machine, queue: queue, autosavePath: path}
	model.writeAutosave(t0)
	queue.drain()
	if _, err := timer.ReadAutosave(path); err != nil {
		t.Fatalf("autosave missing while running: %v", err)
	}

	// The break persists the segment, so the snapshot must go with it:
	// restoring it later would double-count the recorded task.
	breakAt := t0.Add(20 * time.Minute)
	if _, err := machine.TakeBreak(breakAt); err != nil {
		t.Fatalf("TakeBreak: %v", err)
	}
	model.applyEvents()
	if len(store.tasks) != 1 {
		t.Fatalf("recorded tasks = %d, want 1", len(store.tasks))
	}
	if _, err := timer.ReadAutosave(path); !errors.Is(err, timer.ErrNoAutosave) {
		t.Fatalf("autosave survived the break: %v", err)
	}

	// A new work segment needs a fresh snapshot for crash recovery
	resumeAt := breakAt.Add(time.Minute)
	if err := machine.SkipBreak(resumeAt); err != nil {
		t.Fatalf("SkipBreak: %v", err)
	}
	model.applyEvents()
	snap, err := timer.ReadAutosave(path)
	if err != nil {
		t.Fatalf("no autosave after the break ended: %v", err)
	}
	if !snap.Start.Equal(resumeAt) {
		t.Errorf("snapshot start = %v, want %v", snap.Start, resumeAt)
	}
	if snap.Name != "Focus" {
		t.Errorf("snapshot name = %q", snap.Name)
	}
}
