package habits

import (
	"fmt"
	"strings"

	"github.com/devmadhava/habitx/internal/cli"
)

// HabitEditCmd updates a habit's name or description. Frequency is fixed at
// creation; changing it would redefine the habit's entire streak history.
type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit id or name."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	updated := false
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return fmt.Errorf("habit name cannot be empty")
		}
		if name != habit.Name {
			if _, err := ctx.Store.GetHabitByName(name); err == nil {
				return fmt.Errorf("habit with name %q already exists", name)
			}
			habit.Name = name
			updated = true
		}
	}
	if c.Description != nil {
		habit.Description = *c.Description
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --name or --description.")
		return nil
	}

	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habit.Name)
	return nil
}
