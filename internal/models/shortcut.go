package models

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gorm.io/gorm"
)

// Shortcut is a saved timer template the user can start with one command.
// It has no lifecycle coupling to Task beyond seeding a new session.
type Shortcut struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string  `gorm:"not null" json:"name"`
	Tags    string  `json:"tags"`
	Project string  `json:"project"`
	Rate    float64 `json:"rate"`
	Color   string  `gorm:"default:#7C3AED" json:"color"` // hex, used for the swatch in listings
}

// ValidateColor checks that Color is a parseable hex color like "#A78BFA".
func (s *Shortcut) ValidateColor() error {
	if s.Color == "" {
		return nil
	}
	if _, err := colorful.Hex(s.Color); err != nil {
		return fmt.Errorf("invalid color %q: %w", s.Color, err)
	}
	return nil
}
