package streaks

import (
	"fmt"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/utils"
)

type ActiveCmd struct {
	Date     string `help:"Local date to check (YYYY-MM-DD, default today)."`
	Timezone string `help:"Timezone override (IANA name)."`
}

func (c *ActiveCmd) Run(ctx *cli.Context) error {
	tz, err := ctx.Timezone(c.Timezone)
	if err != nil {
		return err
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone: %s", tz)
	}

	at := ctx.Engine.Now()
	if c.Date != "" {
		at, err = utils.ParseCompletionTime(c.Date, loc)
		if err != nil {
			return err
		}
	}

	pending, err := ctx.Engine.Active(tz, at)
	if err != nil {
		return err
	}

	dateStr := at.In(loc).Format(constants.DateFormat)
	if len(pending) == 0 {
		fmt.Printf("All habits are done for %s. Nice work!\n", dateStr)
		return nil
	}

	active, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}

	fmt.Printf("Habits not yet completed for %s:\n\n", dateStr)
	for _, h := range pending {
		fmt.Printf("  [ ] %s (%s)\n", h.Name, h.Frequency)
	}
	fmt.Printf("\n%d of %d active habits remaining.\n", len(pending), len(active))
	return nil
}
