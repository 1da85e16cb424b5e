// Package settings implements the user preference commands.
package settings

import (
	"fmt"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/utils"
)

type SettingsCmd struct {
	List   SettingsListCmd   `cmd:"" default:"1" help:"Show current settings."`
	Update SettingsUpdateCmd `cmd:"" help:"Update one or more settings."`
}

type SettingsListCmd struct{}

func (c *SettingsListCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Println("Current Settings:")
	fmt.Printf("  Timezone: %s\n", settings.Timezone)
	fmt.Printf("  Username: %s\n", settings.Username)
	fmt.Printf("  Color:    %s\n", settings.Color)
	return nil
}

type SettingsUpdateCmd struct {
	Timezone *string `help:"IANA timezone used for streak calendars (e.g. Asia/Kolkata)."`
	Username *string `help:"Display name used in greetings."`
	Color    *string `help:"Accent color for TUI output."`
}

func (c *SettingsUpdateCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Username != nil {
		settings.Username = *c.Username
		updated = true
	}
	if c.Color != nil {
		settings.Color = *c.Color
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --timezone, --username or --color.")
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Println("Settings updated successfully.")
	return nil
}
