package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/unobserved-io/furt/internal/db"
	"github.com/unobserved-io/furt/internal/models"
)

func TestEditKeepsBookkeepingColumns(t *testing.T) {
	if err := db.Initialize(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer db.Close()

	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.Local)
	task, err := models.NewTask("Focus", "#deep", "ClientX", 40, start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	if err := db.CreateTask(task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	stored, err := db.GetTaskByID(task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatal("stored task has no creation time")
	}
	createdAt := stored.CreatedAt

	form := NewEditTaskFormModel('$', stored)
	form.inputs[fieldName].SetValue("Deep focus")
	form.inputs[fieldRate].SetValue("55")
	if err := form.save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := db.GetTaskByID(task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID after edit: %v", err)
	}
	if got.Name != "Deep focus" {
		t.Errorf("name = %q, want %q", got.Name, "Deep focus")
	}
	if got.Rate != 55 {
		t.Errorf("rate = %v, want 55", got.Rate)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("edit wiped the creation time")
	}
	if got.CreatedAt.Unix() != createdAt.Unix() {
		t.Errorf("creation time = %v, want %v", got.CreatedAt, createdAt)
	}
}
