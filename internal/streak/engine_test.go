package streak

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/devmadhava/habitx/internal/models"
)

type fakeStore struct {
	habits      []models.Habit
	completions map[int64][]time.Time
	listErr     error
	timesErr    map[int64]error
	getCalls    int
}

func (f *fakeStore) GetHabit(id int64) (models.Habit, error) {
	f.getCalls++
	for _, h := range f.habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: habit %d", ErrHabitNotFound, id)
}

func (f *fakeStore) ListHabits() ([]models.Habit, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.habits, nil
}

func (f *fakeStore) ListCompletionTimes(habitID int64) ([]time.Time, error) {
	if err := f.timesErr[habitID]; err != nil {
		return nil, err
	}
	return f.completions[habitID], nil
}

func utc(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 9, 0, 0, 0, time.UTC)
}

// fixtureStore holds a daily reader and a weekly runner with histories built
// around a reference instant of 2021-10-15 12:00 UTC. The reader has runs of
// 5 and 3 days, the runner runs of 3 and 2 weeks.
func fixtureStore() *fakeStore {
	return &fakeStore{
		habits: []models.Habit{
			{ID: 1, Name: "Read", Frequency: models.FrequencyDaily},
			{ID: 2, Name: "Run", Frequency: models.FrequencyWeekly},
		},
		completions: map[int64][]time.Time{
			1: {
				utc(2021, 10, 4), utc(2021, 10, 5), utc(2021, 10, 6),
				utc(2021, 10, 7), utc(2021, 10, 8),
				utc(2021, 10, 13), utc(2021, 10, 14), utc(2021, 10, 15),
			},
			2: {
				utc(2021, 8, 31),  // week 35
				utc(2021, 9, 8),   // week 36
				utc(2021, 9, 15),  // week 37
				utc(2021, 10, 5),  // week 40
				utc(2021, 10, 12), // week 41
			},
		},
	}
}

func fixedClock() Clock {
	return ClockFunc(func() time.Time {
		return time.Date(2021, 10, 15, 12, 0, 0, 0, time.UTC)
	})
}

func TestEngine_GetStreak(t *testing.T) {
	engine := NewEngine(fixtureStore(), fixedClock())

	tests := []struct {
		name        string
		habitID     int64
		timezone    string
		wantLongest int
		wantCurrent int
		wantAverage float64
	}{
		{
			name:        "daily habit",
			habitID:     1,
			timezone:    "UTC",
			wantLongest: 5,
			wantCurrent: 3,
			wantAverage: 4.0,
		},
		{
			name:        "weekly habit",
			habitID:     2,
			timezone:    "UTC",
			wantLongest: 3,
			wantCurrent: 2,
			wantAverage: 2.5,
		},
		{
			name:        "empty timezone defaults to UTC",
			habitID:     1,
			timezone:    "",
			wantLongest: 5,
			wantCurrent: 3,
			wantAverage: 4.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.GetStreak(tt.habitID, tt.timezone)
			if err != nil {
				t.Fatalf("GetStreak() error = %v", err)
			}
			if result.Longest != tt.wantLongest {
				t.Errorf("Longest = %d, want %d", result.Longest, tt.wantLongest)
			}
			if result.Current != tt.wantCurrent {
				t.Errorf("Current = %d, want %d", result.Current, tt.wantCurrent)
			}
			if result.Average != tt.wantAverage {
				t.Errorf("Average = %v, want %v", result.Average, tt.wantAverage)
			}
		})
	}
}

func TestEngine_GetStreak_InvalidTimezone(t *testing.T) {
	store := fixtureStore()
	engine := NewEngine(store, fixedClock())

	_, err := engine.GetStreak(1, "Mars/Olympus")
	if !errors.Is(err, ErrInvalidTimezone) {
		t.Fatalf("GetStreak() error = %v, want ErrInvalidTimezone", err)
	}
	if store.getCalls != 0 {
		t.Errorf("store queried %d times before timezone validation", store.getCalls)
	}
}

func TestEngine_GetStreak_UnknownHabit(t *testing.T) {
	engine := NewEngine(fixtureStore(), fixedClock())

	_, err := engine.GetStreak(99, "UTC")
	if !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("GetStreak() error = %v, want ErrHabitNotFound", err)
	}
}

func TestEngine_GetStreak_TimezoneChangesResult(t *testing.T) {
	store := &fakeStore{
		habits: []models.Habit{
			{ID: 1, Name: "Meditate", Frequency: models.FrequencyDaily},
		},
		completions: map[int64][]time.Time{
			1: {
				// 23:30 on Oct 12 in New York, already Oct 13 in UTC.
				time.Date(2021, 10, 13, 3, 30, 0, 0, time.UTC),
				time.Date(2021, 10, 14, 12, 0, 0, 0, time.UTC),
				time.Date(2021, 10, 15, 12, 0, 0, 0, time.UTC),
			},
		},
	}
	engine := NewEngine(store, fixedClock())

	utcResult, err := engine.GetStreak(1, "UTC")
	if err != nil {
		t.Fatalf("GetStreak(UTC) error = %v", err)
	}
	if utcResult.Longest != 3 || utcResult.Current != 3 {
		t.Errorf("UTC = longest %d current %d, want 3 and 3", utcResult.Longest, utcResult.Current)
	}

	nyResult, err := engine.GetStreak(1, "America/New_York")
	if err != nil {
		t.Fatalf("GetStreak(New York) error = %v", err)
	}
	if nyResult.Longest != 2 || nyResult.Current != 2 {
		t.Errorf("New York = longest %d current %d, want 2 and 2", nyResult.Longest, nyResult.Current)
	}
}

func TestEngine_AllStreaks(t *testing.T) {
	engine := NewEngine(fixtureStore(), fixedClock())

	all, err := engine.AllStreaks("UTC")
	if err != nil {
		t.Fatalf("AllStreaks() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("AllStreaks() returned %d entries, want 2", len(all))
	}

	if all[0].Habit.ID != 1 || all[1].Habit.ID != 2 {
		t.Errorf("entries ordered %d, %d, want 1, 2", all[0].Habit.ID, all[1].Habit.ID)
	}
	for _, hs := range all {
		if hs.Err != nil {
			t.Errorf("habit %d: unexpected error %v", hs.Habit.ID, hs.Err)
		}
	}
	if all[0].Result.Longest != 5 || all[1].Result.Longest != 3 {
		t.Errorf("longest = %d and %d, want 5 and 3",
			all[0].Result.Longest, all[1].Result.Longest)
	}
}

func TestEngine_AllStreaks_Empty(t *testing.T) {
	engine := NewEngine(&fakeStore{}, fixedClock())

	all, err := engine.AllStreaks("UTC")
	if err != nil {
		t.Fatalf("AllStreaks() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("AllStreaks() returned %d entries, want 0", len(all))
	}
}

func TestEngine_AllStreaks_PartialFailure(t *testing.T) {
	store := fixtureStore()
	store.timesErr = map[int64]error{2: errors.New("disk offline")}
	engine := NewEngine(store, fixedClock())

	all, err := engine.AllStreaks("UTC")
	if err != nil {
		t.Fatalf("AllStreaks() error = %v, want nil on partial failure", err)
	}
	if all[0].Err != nil {
		t.Errorf("habit 1: unexpected error %v", all[0].Err)
	}
	if all[1].Err == nil {
		t.Error("habit 2: want the completion listing error, got nil")
	}
}

func TestEngine_AllStreaks_AllFail(t *testing.T) {
	store := fixtureStore()
	store.timesErr = map[int64]error{
		1: errors.New("disk offline"),
		2: errors.New("disk offline"),
	}
	engine := NewEngine(store, fixedClock())

	if _, err := engine.AllStreaks("UTC"); err == nil {
		t.Error("AllStreaks() error = nil, want batch failure when every habit fails")
	}
}

func TestEngine_Consistency(t *testing.T) {
	engine := NewEngine(fixtureStore(), fixedClock())

	most, mostAvg, err := engine.MostConsistent("UTC")
	if err != nil {
		t.Fatalf("MostConsistent() error = %v", err)
	}
	if most.ID != 1 || mostAvg != 4.0 {
		t.Errorf("MostConsistent() = habit %d avg %v, want habit 1 avg 4.0", most.ID, mostAvg)
	}

	least, leastAvg, err := engine.LeastConsistent("UTC")
	if err != nil {
		t.Fatalf("LeastConsistent() error = %v", err)
	}
	if least.ID != 2 || leastAvg != 2.5 {
		t.Errorf("LeastConsistent() = habit %d avg %v, want habit 2 avg 2.5", least.ID, leastAvg)
	}
}

func TestEngine_Consistency_TieBreaksOnLowestID(t *testing.T) {
	shared := []time.Time{utc(2021, 10, 14), utc(2021, 10, 15)}
	store := &fakeStore{
		habits: []models.Habit{
			{ID: 1, Name: "Read", Frequency: models.FrequencyDaily},
			{ID: 2, Name: "Run", Frequency: models.FrequencyDaily},
		},
		completions: map[int64][]time.Time{1: shared, 2: shared},
	}
	engine := NewEngine(store, fixedClock())

	most, _, err := engine.MostConsistent("UTC")
	if err != nil {
		t.Fatalf("MostConsistent() error = %v", err)
	}
	least, _, err := engine.LeastConsistent("UTC")
	if err != nil {
		t.Fatalf("LeastConsistent() error = %v", err)
	}

	if most.ID != 1 {
		t.Errorf("MostConsistent() = habit %d, want habit 1 on tie", most.ID)
	}
	if least.ID != 1 {
		t.Errorf("LeastConsistent() = habit %d, want habit 1 on tie", least.ID)
	}
}

func TestEngine_Consistency_NoHabits(t *testing.T) {
	engine := NewEngine(&fakeStore{}, fixedClock())

	if _, _, err := engine.MostConsistent("UTC"); !errors.Is(err, ErrNoHabits) {
		t.Errorf("MostConsistent() error = %v, want ErrNoHabits", err)
	}
	if _, _, err := engine.LeastConsistent("UTC"); !errors.Is(err, ErrNoHabits) {
		t.Errorf("LeastConsistent() error = %v, want ErrNoHabits", err)
	}
}

func TestEngine_Active(t *testing.T) {
	store := &fakeStore{
		habits: []models.Habit{
			{ID: 1, Name: "Read", Frequency: models.FrequencyDaily},
			{ID: 2, Name: "Run", Frequency: models.FrequencyWeekly},
			{ID: 3, Name: "Meditate", Frequency: models.FrequencyDaily},
			{ID: 4, Name: "Review", Frequency: models.FrequencyWeekly},
		},
		completions: map[int64][]time.Time{
			1: {utc(2021, 10, 15)}, // done today
			2: {utc(2021, 10, 12)}, // done this week
			3: {utc(2021, 10, 14)}, // done yesterday, due again
			4: {utc(2021, 10, 5)},  // done last week, due again
		},
	}
	engine := NewEngine(store, fixedClock())

	active, err := engine.Active("UTC", time.Date(2021, 10, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}

	if len(active) != 2 {
		t.Fatalf("Active() returned %d habits, want 2", len(active))
	}
	if active[0].ID != 3 || active[1].ID != 4 {
		t.Errorf("Active() = habits %d, %d, want 3, 4", active[0].ID, active[1].ID)
	}
}

func TestNewEngine_NilClockUsesSystemTime(t *testing.T) {
	before := time.Now()
	engine := NewEngine(&fakeStore{}, nil)
	now := engine.Now()
	if now.Before(before) {
		t.Errorf("Now() = %v, want an instant at or after %v", now, before)
	}
}
