package habits

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/devmadhava/habitx/internal/cli"
	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/storage"
)

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Purge bool   `help:"Permanently remove the habit and all of its completions."`
	Yes   bool   `short:"y" help:"Skip the purge confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		// Purge also applies to habits that were already soft-deleted.
		if c.Purge && errors.Is(err, models.ErrHabitNotFound) {
			habit, err = findDeletedHabit(ctx.Store, c.Habit)
		}
		if err != nil {
			return err
		}
	}

	if !c.Purge {
		if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted habit: %s\n", habit.Name)
		fmt.Println("(This is a soft delete. Use 'habitx habit restore' to undo)")
		return nil
	}

	if !c.Yes {
		fmt.Printf("⚠️  This permanently removes %q and all of its completions.\n", habit.Name)
		fmt.Print("Continue? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Purge cancelled.")
			return nil
		}
	}

	if err := ctx.Store.PurgeHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Purged habit: %s\n", habit.Name)
	return nil
}

// findDeletedHabit resolves a reference among soft-deleted habits only.
func findDeletedHabit(store storage.Provider, ref string) (models.Habit, error) {
	habits, err := store.GetAllHabits(true)
	if err != nil {
		return models.Habit{}, err
	}

	id, idErr := strconv.ParseInt(ref, 10, 64)
	for _, h := range habits {
		if h.DeletedAt == nil {
			continue
		}
		if (idErr == nil && h.ID == id) || (idErr != nil && h.Name == ref) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("deleted habit %q not found", ref)
}
