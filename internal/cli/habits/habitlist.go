package habits

import (
	"fmt"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/streak"
	"github.com/devmadhava/habitx/internal/utils"
)

type HabitListCmd struct {
	All       bool   `help:"Include soft-deleted habits."`
	Frequency string `short:"f" help:"Only show habits with this cadence (daily|weekly)."`
	Streaks   bool   `help:"Include streak columns."`
	Timezone  string `help:"Timezone override for streak evaluation."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(c.All)
	if err != nil {
		return err
	}

	if c.Frequency != "" {
		freq := models.Frequency(c.Frequency)
		if !freq.Valid() {
			return fmt.Errorf("invalid frequency: %s (expected daily or weekly)", c.Frequency)
		}
		var filtered []models.Habit
		for _, h := range habits {
			if h.Frequency == freq {
				filtered = append(filtered, h)
			}
		}
		habits = filtered
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	tz, err := ctx.Timezone(c.Timezone)
	if err != nil {
		return err
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone: %s", tz)
	}

	// Streaks cover active habits only; deleted rows get dashes.
	var results map[int64]streak.Result
	if c.Streaks {
		all, err := ctx.Engine.AllStreaks(tz)
		if err != nil {
			return err
		}
		results = make(map[int64]streak.Result, len(all))
		for _, hs := range all {
			if hs.Err != nil {
				continue
			}
			results[hs.Habit.ID] = hs.Result
		}
	}

	if c.Streaks {
		fmt.Printf("%4s  %-24s %-7s %8s %8s %8s  %s\n",
			"ID", "NAME", "FREQ", "CURRENT", "LONGEST", "AVERAGE", "LAST DONE")
	} else {
		fmt.Printf("%4s  %-24s %-7s  %s\n", "ID", "NAME", "FREQ", "LAST DONE")
	}

	for _, h := range habits {
		name := h.Name
		if h.DeletedAt != nil {
			name += " [DELETED]"
		}
		lastDone := cli.FormatLastDone(h.LastCompletedAt, loc)

		if !c.Streaks {
			fmt.Printf("%4d  %-24s %-7s  %s\n", h.ID, name, h.Frequency, lastDone)
			continue
		}
		if r, ok := results[h.ID]; ok {
			fmt.Printf("%4d  %-24s %-7s %8d %8d %8.2f  %s\n",
				h.ID, name, h.Frequency, r.Current, r.Longest, r.Average, lastDone)
		} else {
			fmt.Printf("%4d  %-24s %-7s %8s %8s %8s  %s\n",
				h.ID, name, h.Frequency, "-", "-", "-", lastDone)
		}
	}

	return nil
}
