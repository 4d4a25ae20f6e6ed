package timer

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestAutosaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.txt")

	m, _, _ := newTestMachine(Config{Currency: '$'})
	if err := m.Start("Write report #work @ClientX $50", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}

	now := t0.Add(90 * time.Second)
	snap, ok := m.Snapshot(now)
	if !ok {
		t.Fatal("no snapshot for a running timer")
	}
	if err := WriteAutosave(path, snap); err != nil {
		t.Fatalf("WriteAutosave: %v", err)
	}

	got, err := ReadAutosave(path)
	if err != nil {
		t.Fatalf("ReadAutosave: %v", err)
	}
	if got.Name != "Write report" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Tags != "#work" {
		t.Errorf("tags = %q", got.Tags)
	}
	if !got.Start.Equal(t0) {
		t.Errorf("start = %v, want %v", got.Start, t0)
	}
	if !got.LastSeen.Equal(now) {
		t.Errorf("last seen = %v, want %v", got.LastSeen, now)
	}
}

func TestAutosaveNameContainingSeparator(t *testing.T) {
	// Names are free text; with a non-'$' currency the parser accepts
	// "$SEP$" inside a name, and the record must still come back whole.
	path := filepath.Join(t.TempDir(), "autosave.txt")
	snap := Snapshot{
		Name:     "Reconcile $SEP$ ledger",
		Start:    t0,
		LastSeen: t0.Add(time.Minute),
		Tags:     "#finance",
	}
	if err := WriteAutosave(path, snap); err != nil {
		t.Fatalf("WriteAutosave: %v", err)
	}

	got, err := ReadAutosave(path)
	if err != nil {
		t.Fatalf("ReadAutosave: %v", err)
	}
	if got.Name != snap.Name {
		t.Errorf("name = %q, want %q", got.Name, snap.Name)
	}
	if !got.Start.Equal(snap.Start) || !got.LastSeen.Equal(snap.LastSeen) {
		t.Errorf("times = %v/%v, want %v/%v", got.Start, got.LastSeen, snap.Start, snap.LastSeen)
	}
	if got.Tags != snap.Tags {
		t.Errorf("tags = %q, want %q", got.Tags, snap.Tags)
	}
}

func TestSnapshotOnlyWhileRunning(t *testing.T) {
	m, _, _ := newTestMachine(Config{})
	if _, ok := m.Snapshot(t0); ok {
		t.Error("idle machine produced a snapshot")
	}

	if err := m.Start("Task", t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, ok := m.Snapshot(t0.Add(time.Second)); !ok {
		t.Error("running machine produced no snapshot")
	}
	if _, err := m.Stop(t0.Add(time.Minute)); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, ok := m.Snapshot(t0.Add(time.Hour)); ok {
		t.Error("stopped machine produced a snapshot")
	}
}

func TestReadAutosaveMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")
	if _, err := ReadAutosave(path); !errors.Is(err, ErrNoAutosave) {
		t.Errorf("error = %v, want ErrNoAutosave", err)
	}
}

func TestClearAutosave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.txt")
	snap := Snapshot{Name: "x", Start: t0, LastSeen: t0.Add(time.Minute)}
	if err := WriteAutosave(path, snap); err != nil {
		t.Fatalf("WriteAutosave: %v", err)
	}
	if err := ClearAutosave(path); err != nil {
		t.Fatalf("ClearAutosave: %v", err)
	}
	if _, err := ReadAutosave(path); !errors.Is(err, ErrNoAutosave) {
		t.Errorf("autosave still readable after clear: %v", err)
	}
	// Clearing twice is fine
	if err := ClearAutosave(path); err != nil {
		t.Errorf("second ClearAutosave: %v", err)
	}
}
