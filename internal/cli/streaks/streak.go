// Package streaks implements the streak analytics commands.
package streaks

import (
	"fmt"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/models"
)

type StreakCmd struct {
	Habit    string `arg:"" help:"Habit id or name."`
	Timezone string `help:"Timezone override (IANA name)."`
	Runs     bool   `help:"Show the length of every streak run."`
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	tz, err := ctx.Timezone(c.Timezone)
	if err != nil {
		return err
	}

	result, err := ctx.Engine.GetStreak(habit.ID, tz)
	if err != nil {
		return err
	}

	unit := "days"
	if habit.Frequency == models.FrequencyWeekly {
		unit = "weeks"
	}

	fmt.Printf("%s (%s, timezone %s)\n", habit.Name, habit.Frequency, tz)
	fmt.Printf("  Current streak: %d %s\n", result.Current, unit)
	fmt.Printf("  Longest streak: %d %s\n", result.Longest, unit)
	fmt.Printf("  Average streak: %.2f %s\n", result.Average, unit)
	if c.Runs && len(result.Runs) > 0 {
		fmt.Printf("  Runs (oldest first): %v\n", result.Runs)
	}
	return nil
}
