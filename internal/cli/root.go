package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/devmadhava/habitx/internal/backup"
	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/logger"
	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/storage"
	"github.com/devmadhava/habitx/internal/streak"
)

// Context carries the shared application state into every command.
type Context struct {
	Store     storage.Provider
	Engine    *streak.Engine
	ConfigDir string
	Debug     bool
}

// Timezone resolves the zone habit calendars are evaluated in: an explicit
// override wins, otherwise the stored settings value. Validation happens
// downstream when the zone is actually loaded.
func (c *Context) Timezone(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.Timezone == "" {
		return constants.DefaultTimezone, nil
	}
	return settings.Timezone, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	// Backups only make sense for a local database file.
	if storage.IsPostgresConnString(c.Store.GetConfigPath()) {
		return
	}

	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveHabit looks a habit up by numeric id or, failing that, by name.
func ResolveHabit(store storage.Provider, ref string) (models.Habit, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return store.GetHabit(id)
	}
	return store.GetHabitByName(ref)
}

// FormatLastDone renders a habit's last completion in the given zone, or
// "never" when the habit has no completions yet.
func FormatLastDone(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "never"
	}
	return t.In(loc).Format(constants.DateFormat)
}
