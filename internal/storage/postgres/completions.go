package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/models"
)

// utcDayBounds returns the half-open UTC day interval containing the instant.
func utcDayBounds(at time.Time) (time.Time, time.Time) {
	at = at.UTC()
	start := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func scanCompletion(row rowScanner) (models.Completion, error) {
	var c models.Completion
	var completedAt string

	if err := row.Scan(&c.ID, &c.HabitID, &completedAt); err != nil {
		return models.Completion{}, err
	}

	t, err := time.Parse(time.RFC3339, completedAt)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse completed_at: %w", err)
	}
	c.CompletedAt = t

	return c, nil
}

// MarkComplete records a completion for the habit at the given instant. A
// habit can be completed at most once per UTC date; a second attempt returns
// models.ErrAlreadyCompleted.
func (s *Store) MarkComplete(habitID int64, at time.Time) (models.Completion, error) {
	at = at.UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return models.Completion{}, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT COUNT(*) FROM habits WHERE id = $1 AND deleted_at IS NULL", habitID).Scan(&exists)
	if err != nil {
		return models.Completion{}, err
	}
	if exists == 0 {
		return models.Completion{}, fmt.Errorf("%w: id %d", models.ErrHabitNotFound, habitID)
	}

	dayStart, dayEnd := utcDayBounds(at)

	var dup int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM completions
		WHERE habit_id = $1 AND completed_at >= $2 AND completed_at < $3`,
		habitID, dayStart.Format(time.RFC3339), dayEnd.Format(time.RFC3339)).Scan(&dup)
	if err != nil {
		return models.Completion{}, err
	}
	if dup > 0 {
		return models.Completion{}, fmt.Errorf("%w: habit %d on %s",
			models.ErrAlreadyCompleted, habitID, dayStart.Format(constants.DateFormat))
	}

	completion := models.Completion{
		ID:          uuid.NewString(),
		HabitID:     habitID,
		CompletedAt: at,
	}

	if _, err := tx.Exec(`
		INSERT INTO completions (id, habit_id, completed_at) VALUES ($1, $2, $3)`,
		completion.ID, completion.HabitID, completion.CompletedAt.Format(time.RFC3339)); err != nil {
		return models.Completion{}, err
	}

	// last_completed_at only ever moves forward; backdated completions must
	// not regress it. RFC3339 UTC strings order lexicographically.
	if _, err := tx.Exec(`
		UPDATE habits
		SET last_completed_at = GREATEST(COALESCE(last_completed_at, ''), $1), updated_at = $2
		WHERE id = $3`,
		completion.CompletedAt.Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339), habitID); err != nil {
		return models.Completion{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Completion{}, err
	}

	return completion, nil
}

// UnmarkComplete removes the completions recorded for the habit on the UTC
// date of the given instant and rolls last_completed_at back to the newest
// remaining completion.
func (s *Store) UnmarkComplete(habitID int64, at time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT COUNT(*) FROM habits WHERE id = $1 AND deleted_at IS NULL", habitID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("%w: id %d", models.ErrHabitNotFound, habitID)
	}

	dayStart, dayEnd := utcDayBounds(at)

	result, err := tx.Exec(`
		DELETE FROM completions
		WHERE habit_id = $1 AND completed_at >= $2 AND completed_at < $3`,
		habitID, dayStart.Format(time.RFC3339), dayEnd.Format(time.RFC3339))
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: habit %d on %s",
			models.ErrNotCompleted, habitID, dayStart.Format(constants.DateFormat))
	}

	var last sql.NullString
	err = tx.QueryRow("SELECT MAX(completed_at) FROM completions WHERE habit_id = $1", habitID).Scan(&last)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		UPDATE habits SET last_completed_at = $1, updated_at = $2 WHERE id = $3`,
		last, time.Now().UTC().Format(time.RFC3339), habitID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetCompletions returns the habit's completions in chronological order. An
// unknown habit id yields an empty slice, not an error.
func (s *Store) GetCompletions(habitID int64) ([]models.Completion, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, completed_at FROM completions
		WHERE habit_id = $1 ORDER BY completed_at`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}

	return completions, rows.Err()
}

func (s *Store) GetAllCompletions() ([]models.Completion, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, completed_at FROM completions
		ORDER BY habit_id, completed_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}

	return completions, rows.Err()
}
