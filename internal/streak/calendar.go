package streak

import (
	"fmt"
	"time"

	"github.com/devmadhava/habitx/internal/constants"
	"github.com/devmadhava/habitx/internal/models"
)

// A Key is the local calendar identity of a completion: a calendar date for
// daily habits, an ISO week for weekly habits. Keys are stored as a civil
// date pinned to UTC midnight (the date itself for daily keys, the Monday of
// the ISO week for weekly keys), so ordering and successor arithmetic reduce
// to plain time.Time operations and year rollovers, including 53-week years,
// fall out of the stdlib calendar.
type Key struct {
	freq models.Frequency
	day  time.Time
}

// ResolveTimezone resolves an IANA timezone name against the timezone
// database. An empty name defaults to UTC. Unknown names fail with
// ErrInvalidTimezone; resolution is a pure lookup and does not depend on any
// particular instant.
func ResolveTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// NewKey converts a UTC instant to the calendar key it falls in under the
// given zone and frequency. The zone's offset and DST rules are applied as of
// the instant itself, not as of call time.
func NewKey(instant time.Time, loc *time.Location, freq models.Frequency) Key {
	y, m, d := instant.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if freq == models.FrequencyWeekly {
		day = mondayOf(day)
	}
	return Key{freq: freq, day: day}
}

// DayKey builds the daily key for a calendar date.
func DayKey(year int, month time.Month, day int) Key {
	return Key{
		freq: models.FrequencyDaily,
		day:  time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}
}

// WeekKey builds the weekly key for an ISO year and week number. January 4th
// always falls in ISO week 1, which anchors week arithmetic to the stdlib
// calendar instead of manual 52/53-week handling.
func WeekKey(isoYear, isoWeek int) Key {
	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	return Key{
		freq: models.FrequencyWeekly,
		day:  mondayOf(jan4).AddDate(0, 0, (isoWeek-1)*7),
	}
}

// mondayOf returns the Monday of the ISO week containing the given day.
func mondayOf(day time.Time) time.Time {
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7 // time.Sunday is 0, ISO weeks end on Sunday
	}
	return day.AddDate(0, 0, 1-wd)
}

// Frequency returns the cadence the key was built under.
func (k Key) Frequency() models.Frequency {
	return k.freq
}

// Next returns the successor key: the next day for daily keys, the next ISO
// week for weekly keys.
func (k Key) Next() Key {
	return Key{freq: k.freq, day: k.day.AddDate(0, 0, k.stepDays())}
}

// Prev returns the predecessor key.
func (k Key) Prev() Key {
	return Key{freq: k.freq, day: k.day.AddDate(0, 0, -k.stepDays())}
}

func (k Key) stepDays() int {
	if k.freq == models.FrequencyWeekly {
		return 7
	}
	return 1
}

// Before reports whether k orders strictly before other.
func (k Key) Before(other Key) bool {
	return k.day.Before(other.day)
}

// Equal reports whether two keys identify the same calendar period.
func (k Key) Equal(other Key) bool {
	return k.freq == other.freq && k.day.Equal(other.day)
}

// Date returns the calendar date the key stands for. For weekly keys this is
// the Monday of the week.
func (k Key) Date() (year int, month time.Month, day int) {
	return k.day.Date()
}

// ISOWeek returns the ISO year and week number of the key.
func (k Key) ISOWeek() (year, week int) {
	return k.day.ISOWeek()
}

// IsZero reports whether the key is the uninitialized zero value.
func (k Key) IsZero() bool {
	return k.freq == "" && k.day.IsZero()
}

// String renders the key for display: "2021-10-15" for daily keys,
// "2021-W41" for weekly keys.
func (k Key) String() string {
	if k.freq == models.FrequencyWeekly {
		y, w := k.ISOWeek()
		return fmt.Sprintf(constants.WeekFormat, y, w)
	}
	return k.day.Format(constants.DateFormat)
}
