package models

import "time"

// Frequency is the cadence at which a habit is meant to be performed.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Valid reports whether f is a known frequency value.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Habit represents a recurring practice to track
type Habit struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Frequency       Frequency  `json:"frequency"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// Completion represents a single recorded completion of a habit.
// Timestamps are stored in UTC; calendar interpretation happens at query time.
type Completion struct {
	ID          string    `json:"id"`
	HabitID     int64     `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
}
