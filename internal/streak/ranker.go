package streak

import "github.com/devmadhava/habitx/internal/models"

// HabitAverage pairs a habit with its computed average streak length.
type HabitAverage struct {
	Habit   models.Habit `json:"habit"`
	Average float64      `json:"average"`
}

// Rank selects the most and least consistent habits by average streak
// length. Ties break toward the lowest habit id so rankings are
// deterministic. An empty collection fails with ErrNoHabits; a single habit
// is both most and least consistent.
func Rank(averages []HabitAverage) (most, least HabitAverage, err error) {
	if len(averages) == 0 {
		return HabitAverage{}, HabitAverage{}, ErrNoHabits
	}

	most, least = averages[0], averages[0]
	for _, a := range averages[1:] {
		if a.Average > most.Average || (a.Average == most.Average && a.Habit.ID < most.Habit.ID) {
			most = a
		}
		if a.Average < least.Average || (a.Average == least.Average && a.Habit.ID < least.Habit.ID) {
			least = a
		}
	}
	return most, least, nil
}
