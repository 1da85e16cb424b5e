package habits

import (
	"errors"
	"fmt"
	"time"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/utils"
)

type HabitUndoneCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	At    string `help:"Date of the completion to remove (YYYY-MM-DD, default today)."`
}

func (c *HabitUndoneCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	tz, err := ctx.Timezone("")
	if err != nil {
		return err
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone in settings: %s", tz)
	}

	at := time.Now().UTC()
	if c.At != "" {
		at, err = utils.ParseCompletionTime(c.At, loc)
		if err != nil {
			return err
		}
	}

	if err := ctx.Store.UnmarkComplete(habit.ID, at); err != nil {
		if errors.Is(err, models.ErrNotCompleted) {
			return fmt.Errorf("%q has no completion on %s",
				habit.Name, at.In(loc).Format(constants.DateFormat))
		}
		return err
	}

	fmt.Printf("Removed completion for %q on %s\n",
		habit.Name, at.In(loc).Format(constants.DateFormat))
	return nil
}
