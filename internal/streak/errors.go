package streak

import "errors"

var (
	// ErrInvalidTimezone is returned when a timezone identifier does not
	// resolve to a known IANA zone.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrHabitNotFound is returned when a habit id is unknown to the store.
	ErrHabitNotFound = errors.New("habit not found")

	// ErrNoHabits is returned by ranking queries over an empty habit
	// collection. An empty collection has no most or least consistent habit;
	// it is not a zero-valued result.
	ErrNoHabits = errors.New("no habits available")

	// ErrInvariantViolation signals a caller bug in data preparation, such as
	// mixing daily and weekly calendar keys in one computation.
	ErrInvariantViolation = errors.New("invariant violation")
)
