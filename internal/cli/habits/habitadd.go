package habits

import (
	"fmt"
	"strings"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/models"
)

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `short:"d" help:"Optional description."`
	Frequency   string `short:"f" help:"Cadence (daily|weekly)." default:"daily"`
}

func (c *HabitAddCmd) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if !models.Frequency(c.Frequency).Valid() {
		return fmt.Errorf("invalid frequency: %s (expected daily or weekly)", c.Frequency)
	}
	return nil
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	// Check if a habit with the same name already exists
	if _, err := ctx.Store.GetHabitByName(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	habit, err := ctx.Store.AddHabit(models.Habit{
		Name:        strings.TrimSpace(c.Name),
		Description: c.Description,
		Frequency:   models.Frequency(c.Frequency),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %d)\n", habit.Name, habit.ID)
	return nil
}
