package timer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/unobserved-io/furt/internal/parser"
)

// Separator used in the autosave record. The file is plain text so a user
// can inspect or salvage it by hand after a crash.
const autosaveSep = "$SEP$"

var ErrNoAutosave = errors.New("no autosave snapshot exists")

// Snapshot mirrors the in-flight session for crash recovery. It is written
// on start and refreshed every minute while a timer runs, then deleted
// unconditionally on a clean stop.
type Snapshot struct {
	Name     string
	Start    time.Time
	LastSeen time.Time // the stop time offered when restoring
	Tags     string    // normalized "#a #b" form
}

// Snapshot captures the machine's current work segment, reporting false
// when there is nothing running to save.
func (m *Machine) Snapshot(now time.Time) (Snapshot, bool) {
	if m.state != StateRunning && m.state != StateExtended {
		return Snapshot{}, false
	}
	return Snapshot{
		Name:     m.parsed.Name,
		Start:    m.startTime,
		LastSeen: now,
		Tags:     parser.TagString(m.parsed.Tags),
	}, true
}

// WriteAutosave persists the snapshot, creating the directory on first use.
func WriteAutosave(path string, s Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create autosave directory: %w", err)
	}
	record := strings.Join([]string{
		s.Name,
		s.Start.Format(time.RFC3339),
		s.LastSeen.Format(time.RFC3339),
		s.Tags,
	}, autosaveSep)
	if err := os.WriteFile(path, []byte(record), 0644); err != nil {
		return fmt.Errorf("failed to write autosave: %w", err)
	}
	return nil
}

// ReadAutosave loads a previously written snapshot. A missing file is
// reported as ErrNoAutosave.
func ReadAutosave(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNoAutosave
		}
		return Snapshot{}, fmt.Errorf("failed to read autosave: %w", err)
	}

	// The name is user text and may itself contain the separator, so the
	// three trailing fields anchor the split from the end. Times are
	// RFC3339 and tags are lowercase, neither can contain it.
	parts := strings.Split(string(data), autosaveSep)
	if len(parts) < 4 {
		return Snapshot{}, fmt.Errorf("autosave record is malformed")
	}
	name := strings.Join(parts[:len(parts)-3], autosaveSep)
	start, err := time.Parse(time.RFC3339, parts[len(parts)-3])
	if err != nil {
		return Snapshot{}, fmt.Errorf("autosave start time is malformed: %w", err)
	}
	lastSeen, err := time.Parse(time.RFC3339, parts[len(parts)-2])
	if err != nil {
		return Snapshot{}, fmt.Errorf("autosave stop time is malformed: %w", err)
	}
	return Snapshot{
		Name:     name,
		Start:    start,
		LastSeen: lastSeen,
		Tags:     parts[len(parts)-1],
	}, nil
}

// ClearAutosave deletes the snapshot file. A file that is already gone is
// not an error.
func ClearAutosave(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete autosave: %w", err)
	}
	return nil
}
