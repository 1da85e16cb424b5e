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

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	At    string `help:"Completion time (YYYY-MM-DD or 'YYYY-MM-DD HH:MM', interpreted in your timezone)."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
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

	completion, err := ctx.Store.MarkComplete(habit.ID, at)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyCompleted) {
			return fmt.Errorf("%q is already marked done for %s",
				habit.Name, at.In(loc).Format(constants.DateFormat))
		}
		return err
	}

	fmt.Printf("Marked %q done for %s\n",
		habit.Name, completion.CompletedAt.In(loc).Format(constants.DateFormat))
	return nil
}
