package db

import (
	"fmt"

	"github.com/unobserved-io/furt/internal/models"
)

// CreateShortcut saves a new timer template
func CreateShortcut(shortcut *models.Shortcut) error {
	if err := shortcut.ValidateColor(); err != nil {
		return err
	}
	if err := DB.Create(shortcut).Error; err != nil {
		return fmt.Errorf("failed to save shortcut: %w", err)
	}
	return nil
}

// GetShortcuts lists all saved shortcuts
func GetShortcuts() ([]models.Shortcut, error) {
	var shortcuts []models.Shortcut
	if err := DB.Order("name ASC").Find(&shortcuts).Error; err != nil {
		return nil, fmt.Errorf("failed to query shortcuts: %w", err)
	}
	return shortcuts, nil
}

// GetShortcutByID retrieves a shortcut by ID
func GetShortcutByID(id uint) (*models.Shortcut, error) {
	var shortcut models.Shortcut
	if err := DB.First(&shortcut, id).Error; err != nil {
		return nil, fmt.Errorf("shortcut #%d not found", id)
	}
	return &shortcut, nil
}

// DeleteShortcut removes a shortcut
func DeleteShortcut(id uint) error {
	result := DB.Delete(&models.Shortcut{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete shortcut #%d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("shortcut #%d not found", id)
	}
	return nil
}
