package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/models"
	"github.com/devmadhava/habitx/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitName    ConflictType = "duplicate_habit_name"
	ConflictInvalidFrequency      ConflictType = "invalid_frequency"
	ConflictInvalidTimezone       ConflictType = "invalid_timezone"
	ConflictOrphanedCompletion    ConflictType = "orphaned_completion"
	ConflictMissingCompletionID   ConflictType = "missing_completion_id"
	ConflictDuplicateCompletion   ConflictType = "duplicate_completion"
	ConflictFutureCompletion      ConflictType = "future_completion"
	ConflictLastCompletedMismatch ConflictType = "last_completed_mismatch"
)

// Conflict represents a detected inconsistency in stored habit data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Habit names involved
	HabitIDs    []int64  // IDs of habits involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends the conflicts from another result.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks stored habits, completions and settings for consistency
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks habits for duplicate names and unknown frequencies.
// Soft-deleted habits are skipped; they cannot collide until restored.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameIDs := make(map[string][]int64)
	for _, habit := range habits {
		if habit.DeletedAt != nil {
			continue
		}

		if !habit.Frequency.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidFrequency,
				Description: fmt.Sprintf("Habit %q has unknown frequency: %s", habit.Name, habit.Frequency),
				Items:       []string{habit.Name},
				HabitIDs:    []int64{habit.ID},
			})
		}

		// Skip empty names to avoid false positives
		if habit.Name == "" {
			continue
		}
		nameIDs[habit.Name] = append(nameIDs[habit.Name], habit.ID)
	}

	// Map iteration order is random; sort the names so reports are stable.
	names := make([]string, 0, len(nameIDs))
	for name := range nameIDs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ids := nameIDs[name]
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateHabitName,
				Description: fmt.Sprintf("Duplicate habit name: %q (IDs: %v)", name, ids),
				Items:       []string{name},
				HabitIDs:    ids,
			})
		}
	}

	return result
}

// ValidateCompletions cross-checks completions against habits: orphaned rows,
// duplicate completions on one UTC date, timestamps in the future, and
// last_completed_at drifting from the newest recorded completion.
func (v *Validator) ValidateCompletions(habits []models.Habit, completions []models.Completion, now time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	habitByID := make(map[int64]models.Habit, len(habits))
	for _, habit := range habits {
		habitByID[habit.ID] = habit
	}

	seenDay := make(map[int64]map[string]bool)
	latest := make(map[int64]time.Time)

	for _, completion := range completions {
		habit, known := habitByID[completion.HabitID]
		if !known {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanedCompletion,
				Description: fmt.Sprintf("Completion %s references missing habit ID: %d", completion.ID, completion.HabitID),
				HabitIDs:    []int64{completion.HabitID},
			})
			continue
		}

		if completion.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingCompletionID,
				Description: fmt.Sprintf("Habit %q has a completion without an ID", habit.Name),
				Items:       []string{habit.Name},
				HabitIDs:    []int64{habit.ID},
			})
		}

		day := completion.CompletedAt.UTC().Format(constants.DateFormat)
		if seenDay[completion.HabitID] == nil {
			seenDay[completion.HabitID] = make(map[string]bool)
		}
		if seenDay[completion.HabitID][day] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateCompletion,
				Description: fmt.Sprintf("Habit %q has multiple completions on %s", habit.Name, day),
				Items:       []string{habit.Name},
				HabitIDs:    []int64{habit.ID},
			})
		}
		seenDay[completion.HabitID][day] = true

		if completion.CompletedAt.After(now) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureCompletion,
				Description: fmt.Sprintf("Habit %q has a completion in the future: %s", habit.Name, completion.CompletedAt.UTC().Format(time.RFC3339)),
				Items:       []string{habit.Name},
				HabitIDs:    []int64{habit.ID},
			})
		}

		if completion.CompletedAt.After(latest[completion.HabitID]) {
			latest[completion.HabitID] = completion.CompletedAt
		}
	}

	for _, habit := range habits {
		want, has := latest[habit.ID], habit.LastCompletedAt
		switch {
		case has == nil && !want.IsZero():
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictLastCompletedMismatch,
				Description: fmt.Sprintf("Habit %q has completions but no last_completed_at", habit.Name),
				Items:       []string{habit.Name},
				HabitIDs:    []int64{habit.ID},
			})
		case has != nil && want.IsZero():
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictLastCompletedMismatch,
				Description: fmt.Sprintf("Habit %q has last_completed_at but no completions", habit.Name),
				Items:       []string{habit.Name},
				HabitIDs:    []int64{habit.ID},
			})
		case has != nil && !has.Equal(want):
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictLastCompletedMismatch,
				Description: fmt.Sprintf("Habit %q last_completed_at is %s but newest completion is %s",
					habit.Name, has.UTC().Format(time.RFC3339), want.UTC().Format(time.RFC3339)),
				Items:    []string{habit.Name},
				HabitIDs: []int64{habit.ID},
			})
		}
	}

	return result
}

// ValidateSettings checks that stored settings are usable.
func (v *Validator) ValidateSettings(settings models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if !utils.ValidateTimezone(settings.Timezone) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTimezone,
			Description: fmt.Sprintf("Settings reference an unknown timezone: %s", settings.Timezone),
		})
	}

	return result
}

// ValidateAll runs every check and merges the results.
func (v *Validator) ValidateAll(habits []models.Habit, completions []models.Completion, settings models.Settings, now time.Time) ValidationResult {
	result := v.ValidateHabits(habits)
	result.Merge(v.ValidateCompletions(habits, completions, now))
	result.Merge(v.ValidateSettings(settings))
	return result
}

// AutoFixDuplicateHabits resolves duplicate-name conflicts by keeping the
// oldest habit (lowest ID) and soft-deleting the rest. Returns a slice of
// FixActions describing what was fixed.
func AutoFixDuplicateHabits(conflicts []Conflict, habits []models.Habit, deleteFunc func(id int64) error) []FixAction {
	actions := []FixAction{}

	habitByID := make(map[int64]models.Habit, len(habits))
	for _, habit := range habits {
		habitByID[habit.ID] = habit
	}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateHabitName {
			continue
		}

		var candidates []models.Habit
		for _, id := range conflict.HabitIDs {
			if habit, ok := habitByID[id]; ok && habit.DeletedAt == nil {
				candidates = append(candidates, habit)
			}
		}
		if len(candidates) <= 1 {
			continue
		}

		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].ID < candidates[j].ID
		})

		keep := candidates[0]
		var deletedIDs, failedIDs []int64
		for _, habit := range candidates[1:] {
			if err := deleteFunc(habit.ID); err == nil {
				deletedIDs = append(deletedIDs, habit.ID)
			} else {
				failedIDs = append(failedIDs, habit.ID)
			}
		}

		if len(deletedIDs) > 0 {
			actionMsg := fmt.Sprintf("Removed %d duplicate habit(s) named %q (kept ID: %d, removed: %v)",
				len(deletedIDs), keep.Name, keep.ID, deletedIDs)
			if len(failedIDs) > 0 {
				actionMsg += fmt.Sprintf(" (failed to remove: %v)", failedIDs)
			}
			actions = append(actions, FixAction{Action: actionMsg, SourceConflict: conflict})
		} else if len(failedIDs) > 0 {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove duplicates of %q: %v", keep.Name, failedIDs),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}
