package db

import (
	"fmt"
	"time"

	"github.com/unobserved-io/furt/internal/models"
)

// TaskStore adapts the package-level task functions to the timer's Store
// interface so the machine never sees gorm.
type TaskStore struct{}

func (TaskStore) CreateTask(task *models.Task) error {
	return CreateTask(task)
}

// CreateTask persists a completed task
func CreateTask(task *models.Task) error {
	if err := DB.Create(task).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// UpdateTask saves edits to an existing task
func UpdateTask(task *models.Task) error {
	if err := DB.Save(task).Error; err != nil {
		return fmt.Errorf("failed to update task #%d: %w", task.ID, err)
	}
	return nil
}

// GetTaskByID retrieves a task by ID
func GetTaskByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := DB.First(&task, id).Error; err != nil {
		return nil, fmt.Errorf("task #%d not found", id)
	}
	return &task, nil
}

// DeleteTask removes a single task
func DeleteTask(id uint) error {
	result := DB.Delete(&models.Task{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task #%d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("task #%d not found", id)
	}
	return nil
}

// DeleteTasks removes several tasks at once, used for group deletion
func DeleteTasks(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := DB.Delete(&models.Task{}, ids).Error; err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}
	return nil
}

// DeleteAllTasks wipes the task history
func DeleteAllTasks() error {
	if err := DB.Where("1 = 1").Delete(&models.Task{}).Error; err != nil {
		return fmt.Errorf("failed to delete all tasks: %w", err)
	}
	return nil
}

// TasksInRange returns completed tasks whose start time falls in [start, end],
// newest first
func TasksInRange(start, end time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := DB.Where("start_time >= ? AND start_time <= ?", start, end).
		Order("start_time DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return tasks, nil
}

// AllTasks returns the whole history, newest first
func AllTasks() ([]models.Task, error) {
	var tasks []models.Task
	if err := DB.Order("start_time DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return tasks, nil
}
