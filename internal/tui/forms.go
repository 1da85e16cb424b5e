package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/utils"
)

// newHabitForm creates a form for adding habits. Frequency is only offered
// here: it is fixed once the habit exists.
func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description (optional)").
				Value(&fm.Description),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
				).
				Value(&fm.Frequency),
		),
	).WithTheme(huh.ThemeDracula())
}

// newEditHabitForm creates a form for editing an existing habit.
func newEditHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

// newSettingsForm creates a form for editing settings.
func newSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone (IANA name)").
				Description("Examples: UTC, America/New_York, Europe/London, Asia/Kolkata").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(s) {
						return fmt.Errorf("invalid timezone name")
					}
					return nil
				}),
			huh.NewInput().
				Title("Username").
				Value(&fm.Username),
			huh.NewSelect[string]().
				Title("Accent Color").
				Options(
					huh.NewOption("Blue", "blue"),
					huh.NewOption("Green", "green"),
					huh.NewOption("Red", "red"),
					huh.NewOption("Purple", "purple"),
					huh.NewOption("Orange", "orange"),
					huh.NewOption("Pink", "pink"),
				).
				Value(&fm.Color),
		),
	).WithTheme(huh.ThemeDracula())
}
