package streaks

import (
	"fmt"

	"github.com/devmadhava/habitx/internal/cli"
)

type StreaksCmd struct {
	Timezone string `help:"Timezone override (IANA name)."`
}

func (c *StreaksCmd) Run(ctx *cli.Context) error {
	tz, err := ctx.Timezone(c.Timezone)
	if err != nil {
		return err
	}

	all, err := ctx.Engine.AllStreaks(tz)
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("Streaks (timezone %s):\n\n", tz)
	fmt.Printf("%4s  %-24s %-7s %8s %8s %8s\n",
		"ID", "NAME", "FREQ", "CURRENT", "LONGEST", "AVERAGE")
	for _, hs := range all {
		if hs.Err != nil {
			fmt.Printf("%4d  %-24s %-7s %8s %8s %8s  (error: %v)\n",
				hs.Habit.ID, hs.Habit.Name, hs.Habit.Frequency, "-", "-", "-", hs.Err)
			continue
		}
		fmt.Printf("%4d  %-24s %-7s %8d %8d %8.2f\n",
			hs.Habit.ID, hs.Habit.Name, hs.Habit.Frequency,
			hs.Result.Current, hs.Result.Longest, hs.Result.Average)
	}
	return nil
}
