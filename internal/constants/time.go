package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateTimeFormat is the format accepted for user-supplied completion timestamps
	DateTimeFormat = "2006-01-02 15:04"

	// WeekFormat is the display format for ISO week keys (e.g. 2021-W42)
	WeekFormat = "%d-W%02d"
)
