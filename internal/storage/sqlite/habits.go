package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/devmadhava/habitx/internal/models"
)

const habitColumns = "id, name, description, frequency, created_at, updated_at, last_completed_at, deleted_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var frequency, createdAt, updatedAt string
	var lastCompletedAt, deletedAt sql.NullString

	err := row.Scan(&h.ID, &h.Name, &h.Description, &frequency, &createdAt, &updatedAt, &lastCompletedAt, &deletedAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Frequency = models.Frequency(frequency)

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	if lastCompletedAt.Valid {
		t, err := time.Parse(time.RFC3339, lastCompletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse last_completed_at: %w", err)
		}
		h.LastCompletedAt = &t
	}
	if deletedAt.Valid {
		t, err := time.Parse(time.RFC3339, deletedAt.String)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse deleted_at: %w", err)
		}
		h.DeletedAt = &t
	}

	return h, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func (s *Store) AddHabit(habit models.Habit) (models.Habit, error) {
	now := time.Now().UTC()
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = now
	}
	habit.UpdatedAt = now

	result, err := s.db.Exec(`
		INSERT INTO habits (name, description, frequency, created_at, updated_at, last_completed_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		habit.Name, habit.Description, string(habit.Frequency),
		habit.CreatedAt.UTC().Format(time.RFC3339), habit.UpdatedAt.Format(time.RFC3339),
		nullTime(habit.LastCompletedAt), nullTime(habit.DeletedAt))
	if err != nil {
		return models.Habit{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to read new habit id: %w", err)
	}
	habit.ID = id

	return habit, nil
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE id = ? AND deleted_at IS NULL`, id)

	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, fmt.Errorf("%w: id %d", models.ErrHabitNotFound, id)
		}
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+habitColumns+`
		FROM habits WHERE name = ? AND deleted_at IS NULL`, name)

	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, fmt.Errorf("%w: name %q", models.ErrHabitNotFound, name)
		}
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) GetAllHabits(includeDeleted bool) ([]models.Habit, error) {
	query := "SELECT " + habitColumns + " FROM habits"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

// UpdateHabit rewrites the editable fields of an existing habit. Completion
// bookkeeping stays with MarkComplete/UnmarkComplete.
func (s *Store) UpdateHabit(habit models.Habit) error {
	result, err := s.db.Exec(`
		UPDATE habits
		SET name = ?, description = ?, frequency = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		habit.Name, habit.Description, string(habit.Frequency),
		time.Now().UTC().Format(time.RFC3339), habit.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", models.ErrHabitNotFound, habit.ID)
	}

	return nil
}

func (s *Store) DeleteHabit(id int64) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w or already deleted: id %d", models.ErrHabitNotFound, id)
	}

	return nil
}

func (s *Store) RestoreHabit(id int64) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w or not deleted: id %d", models.ErrHabitNotFound, id)
	}

	return nil
}

// PurgeHabit permanently removes a habit and all of its completions. It works
// on active and soft-deleted habits alike.
func (s *Store) PurgeHabit(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = ?", id); err != nil {
		return err
	}

	result, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: id %d", models.ErrHabitNotFound, id)
	}

	return tx.Commit()
}
