package storage

import (
	"time"

	"github.com/devmadhava/habitx/internal/models"
)

// Provider is the storage contract shared by the sqlite and postgres
// backends. Habit reads exclude soft-deleted rows unless stated otherwise,
// and unknown ids surface as errors matching models.ErrHabitNotFound.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(habit models.Habit) (models.Habit, error)
	GetHabit(id int64) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(habit models.Habit) error
	DeleteHabit(id int64) error
	RestoreHabit(id int64) error
	// PurgeHabit permanently removes a habit and its completions.
	PurgeHabit(id int64) error

	// Completions. MarkComplete refuses a second completion on the same UTC
	// date with models.ErrAlreadyCompleted; UnmarkComplete removes the
	// completions of a UTC date and rolls last_completed_at back.
	MarkComplete(habitID int64, at time.Time) (models.Completion, error)
	UnmarkComplete(habitID int64, at time.Time) error
	GetCompletions(habitID int64) ([]models.Completion, error)
	GetAllCompletions() ([]models.Completion, error)

	// Utils
	GetConfigPath() string
}
