package streak

import (
	"fmt"
	"time"

	"github.com/devmadhava/habitx/internal/models"
)

// Store is the slice of the storage layer the engine reads from.
// Implementations return an error satisfying errors.Is(err, ErrHabitNotFound)
// from GetHabit when the id is unknown.
type Store interface {
	GetHabit(id int64) (models.Habit, error)
	ListHabits() ([]models.Habit, error)
	ListCompletionTimes(habitID int64) ([]time.Time, error)
}

// Clock supplies the reference instant for current-streak checks. Injecting
// it keeps streak computations deterministic under test.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return ClockFunc(time.Now) }

// HabitStreaks couples a habit with its computed metrics in a bulk query.
// Err carries a per-habit failure without failing the whole batch.
type HabitStreaks struct {
	Habit  models.Habit `json:"habit"`
	Result Result       `json:"result"`
	Err    error        `json:"-"`
}

// Engine evaluates streak metrics over the habits held in a Store. Every
// query takes the timezone explicitly rather than reading process-wide state,
// so concurrent evaluations for different zones never interfere.
type Engine struct {
	store Store
	clock Clock
}

// NewEngine builds an engine over the given store. A nil clock defaults to
// the system clock.
func NewEngine(store Store, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{store: store, clock: clock}
}

// GetStreak computes the streak metrics for one habit under the given
// timezone. The timezone is validated before the habit is fetched; no partial
// computation happens on a bad zone or unknown id.
func (e *Engine) GetStreak(habitID int64, timezone string) (Result, error) {
	loc, err := ResolveTimezone(timezone)
	if err != nil {
		return Result{}, err
	}

	habit, err := e.store.GetHabit(habitID)
	if err != nil {
		return Result{}, err
	}

	return e.compute(habit, loc)
}

// AllStreaks computes streak metrics for every habit. Per-habit failures are
// collected on the returned entries; the batch itself fails only when the
// timezone is invalid, the habit listing fails, or every habit fails.
func (e *Engine) AllStreaks(timezone string) ([]HabitStreaks, error) {
	loc, err := ResolveTimezone(timezone)
	if err != nil {
		return nil, err
	}

	habits, err := e.store.ListHabits()
	if err != nil {
		return nil, err
	}

	results := make([]HabitStreaks, 0, len(habits))
	failed := 0
	var firstErr error
	for _, habit := range habits {
		res, err := e.compute(habit, loc)
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
		results = append(results, HabitStreaks{Habit: habit, Result: res, Err: err})
	}

	if len(habits) > 0 && failed == len(habits) {
		return nil, fmt.Errorf("streaks failed for all %d habits: %w", failed, firstErr)
	}

	return results, nil
}

// MostConsistent returns the habit with the highest average streak under the
// given timezone, with its average. Fails with ErrNoHabits when no habits
// exist.
func (e *Engine) MostConsistent(timezone string) (models.Habit, float64, error) {
	most, _, err := e.rank(timezone)
	if err != nil {
		return models.Habit{}, 0, err
	}
	return most.Habit, most.Average, nil
}

// LeastConsistent mirrors MostConsistent for the lowest average streak.
func (e *Engine) LeastConsistent(timezone string) (models.Habit, float64, error) {
	_, least, err := e.rank(timezone)
	if err != nil {
		return models.Habit{}, 0, err
	}
	return least.Habit, least.Average, nil
}

// Averages computes every habit's average streak under the given timezone,
// skipping habits whose computation failed.
func (e *Engine) Averages(timezone string) ([]HabitAverage, error) {
	all, err := e.AllStreaks(timezone)
	if err != nil {
		return nil, err
	}

	averages := make([]HabitAverage, 0, len(all))
	for _, hs := range all {
		if hs.Err != nil {
			continue
		}
		averages = append(averages, HabitAverage{Habit: hs.Habit, Average: hs.Result.Average})
	}
	return averages, nil
}

// Active returns the habits with no completion in the calendar period
// containing the given instant, i.e. the ones still to do for that day or
// week.
func (e *Engine) Active(timezone string, at time.Time) ([]models.Habit, error) {
	loc, err := ResolveTimezone(timezone)
	if err != nil {
		return nil, err
	}

	habits, err := e.store.ListHabits()
	if err != nil {
		return nil, err
	}

	var active []models.Habit
	for _, habit := range habits {
		period := NewKey(at, loc, habit.Frequency)

		instants, err := e.store.ListCompletionTimes(habit.ID)
		if err != nil {
			return nil, err
		}

		done := false
		for _, instant := range instants {
			if NewKey(instant, loc, habit.Frequency).Equal(period) {
				done = true
				break
			}
		}
		if !done {
			active = append(active, habit)
		}
	}
	return active, nil
}

// Now exposes the engine's reference instant, primarily for presentation
// layers that label "today" consistently with streak results.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

func (e *Engine) compute(habit models.Habit, loc *time.Location) (Result, error) {
	instants, err := e.store.ListCompletionTimes(habit.ID)
	if err != nil {
		return Result{}, err
	}
	return Compute(instants, loc, habit.Frequency, e.clock.Now())
}

func (e *Engine) rank(timezone string) (most, least HabitAverage, err error) {
	averages, err := e.Averages(timezone)
	if err != nil {
		return HabitAverage{}, HabitAverage{}, err
	}
	return Rank(averages)
}
