package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEmptyName       = errors.New("task name cannot be empty")
	ErrStopBeforeStart = errors.New("stop time cannot be before start time")
	ErrNegativeRate    = errors.New("rate cannot be negative")
)

// Task represents one completed timed work session
type Task struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string  `gorm:"not null" json:"name"`
	Tags    string  `json:"tags"`    // normalized "#tag1 #tag2" form, may be empty
	Project string  `json:"project"` // optional
	Rate    float64 `json:"rate"`    // currency units per hour, 0 = unpaid

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	StopTime  time.Time `gorm:"not null" json:"stop_time"`
}

// NewTask validates and builds a completed task. Stop must not precede
// start and the rate must be non-negative.
func NewTask(name, tags, project string, rate float64, start, stop time.Time) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if stop.Before(start) {
		return nil, ErrStopBeforeStart
	}
	if rate < 0 {
		return nil, ErrNegativeRate
	}
	return &Task{
		Name:      name,
		Tags:      tags,
		Project:   project,
		Rate:      rate,
		StartTime: start,
		StopTime:  stop,
	}, nil
}

// SecondsTotal returns the whole elapsed seconds, truncated.
func (t *Task) SecondsTotal() int {
	return int(t.StopTime.Sub(t.StartTime).Seconds())
}

// Earnings returns what the session earned at the task's hourly rate.
func (t *Task) Earnings() float64 {
	return t.Rate / 3600.0 * float64(t.SecondsTotal())
}

// TagList splits the normalized tags string back into bare tag names.
func (t *Task) TagList() []string {
	if t.Tags == "" {
		return nil
	}
	fields := strings.Fields(t.Tags)
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		tags = append(tags, strings.TrimPrefix(f, "#"))
	}
	return tags
}
