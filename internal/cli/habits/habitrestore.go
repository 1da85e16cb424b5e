package habits

import (
	"fmt"

	"github.com/devmadhava/habitx/internal/cli"
)

type HabitRestoreCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	habit, err := findDeletedHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", habit.Name)
	return nil
}
