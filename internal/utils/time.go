package utils

import (
	"fmt"
	"time"

	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// An empty name falls back to UTC, matching the stored settings default;
// "Local" resolves to the system timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	switch timezone {
	case "":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified
// timezone. "Today" is determined by the user's configured timezone, not the
// system timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// GetTodayFromSettings returns today's date string using the timezone from settings.
func GetTodayFromSettings(settings models.Settings) (string, error) {
	return GetTodayInTimezone(settings.Timezone)
}

// ParseCompletionTime parses a user-supplied completion timestamp in the given
// location and returns the UTC instant. It accepts either a full timestamp
// (YYYY-MM-DD HH:MM) or a bare date (YYYY-MM-DD). Bare dates resolve to noon
// local time, so the instant lands on the intended local calendar day in
// every timezone.
func ParseCompletionTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(constants.DateTimeFormat, value, loc); err == nil {
		return t.UTC(), nil
	}

	t, err := time.ParseInLocation(constants.DateFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %q or %q", value, constants.DateFormat, constants.DateTimeFormat)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, loc).UTC(), nil
}

// ValidateTimezone checks if the timezone name is usable. Empty and "Local"
// are accepted.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
