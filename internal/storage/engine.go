package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/streak"
)

// EngineStore adapts a Provider to the read-only view the streak engine
// needs, translating storage errors into the engine's taxonomy.
type EngineStore struct {
	provider Provider
}

// NewEngineStore wraps the provider for use as a streak.Store.
func NewEngineStore(provider Provider) *EngineStore {
	return &EngineStore{provider: provider}
}

func (s *EngineStore) GetHabit(id int64) (models.Habit, error) {
	habit, err := s.provider.GetHabit(id)
	if err != nil {
		if errors.Is(err, models.ErrHabitNotFound) {
			return models.Habit{}, fmt.Errorf("%w: habit %d", streak.ErrHabitNotFound, id)
		}
		return models.Habit{}, err
	}
	return habit, nil
}

func (s *EngineStore) ListHabits() ([]models.Habit, error) {
	return s.provider.GetAllHabits(false)
}

func (s *EngineStore) ListCompletionTimes(habitID int64) ([]time.Time, error) {
	completions, err := s.provider.GetCompletions(habitID)
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		times = append(times, c.CompletedAt)
	}
	return times, nil
}

// NewEngine builds a streak engine over the provider using the system clock.
func NewEngine(provider Provider) *streak.Engine {
	return streak.NewEngine(NewEngineStore(provider), nil)
}
