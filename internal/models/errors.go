package models

import "errors"

// Sentinel errors shared by both storage backends. Callers match them with
// errors.Is rather than comparing messages.
var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrAlreadyCompleted = errors.New("habit already completed on this date")
	ErrNotCompleted     = errors.New("no completion recorded on this date")
)
