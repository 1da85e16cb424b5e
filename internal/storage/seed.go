package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devmadhava/habitx/internal/logger"
	"github.com/devmadhava/habitx/internal/models"
)

//go:embed demo.json
var demoJSON []byte

type demoHabit struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Frequency      models.Frequency `json:"frequency"`
	CreatedAt      time.Time        `json:"created_at"`
	CompletedDates []time.Time      `json:"completed_dates"`
}

type demoData struct {
	Habits []demoHabit `json:"habits"`
}

// SeedDemoData loads the bundled example habits into an initialized store and
// returns how many habits it created. It refuses to touch a store that
// already contains habits.
func SeedDemoData(provider Provider) (int, error) {
	existing, err := provider.GetAllHabits(true)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing habits: %w", err)
	}
	if len(existing) > 0 {
		return 0, fmt.Errorf("refusing to seed demo data: store already has %d habits", len(existing))
	}

	var data demoData
	if err := json.Unmarshal(demoJSON, &data); err != nil {
		return 0, fmt.Errorf("failed to parse demo data: %w", err)
	}

	for _, dh := range data.Habits {
		if !dh.Frequency.Valid() {
			return 0, fmt.Errorf("demo habit %q has invalid frequency %q", dh.Name, dh.Frequency)
		}

		habit, err := provider.AddHabit(models.Habit{
			Name:        dh.Name,
			Description: dh.Description,
			Frequency:   dh.Frequency,
			CreatedAt:   dh.CreatedAt,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to add demo habit %q: %w", dh.Name, err)
		}

		for _, at := range dh.CompletedDates {
			if _, err := provider.MarkComplete(habit.ID, at); err != nil {
				return 0, fmt.Errorf("failed to record demo completion for %q: %w", dh.Name, err)
			}
		}

		logger.Debug("Seeded demo habit", "id", habit.ID, "name", habit.Name, "completions", len(dh.CompletedDates))
	}

	return len(data.Habits), nil
}
