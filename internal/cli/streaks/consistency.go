package streaks

import (
	"errors"
	"fmt"
	"sort"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/streak"
)

type ConsistencyCmd struct {
	Timezone string `help:"Timezone override (IANA name)."`
}

func (c *ConsistencyCmd) Run(ctx *cli.Context) error {
	tz, err := ctx.Timezone(c.Timezone)
	if err != nil {
		return err
	}

	averages, err := ctx.Engine.Averages(tz)
	if err != nil {
		return err
	}

	most, least, err := streak.Rank(averages)
	if err != nil {
		if errors.Is(err, streak.ErrNoHabits) {
			fmt.Println("No habits found.")
			return nil
		}
		return err
	}

	fmt.Printf("Most consistent:  %s (average streak %.2f)\n", most.Habit.Name, most.Average)
	fmt.Printf("Least consistent: %s (average streak %.2f)\n", least.Habit.Name, least.Average)
	fmt.Println()

	sort.Slice(averages, func(i, j int) bool {
		if averages[i].Average != averages[j].Average {
			return averages[i].Average > averages[j].Average
		}
		return averages[i].Habit.ID < averages[j].Habit.ID
	})

	fmt.Printf("%4s  %-24s %-7s %8s\n", "ID", "NAME", "FREQ", "AVERAGE")
	for _, a := range averages {
		fmt.Printf("%4d  %-24s %-7s %8.2f\n", a.Habit.ID, a.Habit.Name, a.Habit.Frequency, a.Average)
	}
	return nil
}
