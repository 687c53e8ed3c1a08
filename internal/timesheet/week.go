package timesheet

import "time"

// DayKey is the locale abbreviation a weekday column is keyed by.
type DayKey string

const (
	DayDom DayKey = "dom"
	DaySeg DayKey = "seg"
	DayTer DayKey = "ter"
	DayQua DayKey = "qua"
	DayQui DayKey = "qui"
	DaySex DayKey = "sex"
	DaySab DayKey = "sab"
)

// dayKeys maps time.Weekday (Sunday = 0, matching the upstream contract)
// to the column key. This seven-way mapping is a hard contract: a Monday
// date must land in seg, a Sunday date in dom.
var dayKeys = [7]DayKey{DayDom, DaySeg, DayTer, DayQua, DayQui, DaySex, DaySab}

// WeekDayKeys returns the seven column keys in display order, Monday first.
func WeekDayKeys() []DayKey {
	return []DayKey{DaySeg, DayTer, DayQua, DayQui, DaySex, DaySab, DayDom}
}

// DayKeyFor buckets a calendar date into its weekday column.
func DayKeyFor(date time.Time) DayKey {
	return dayKeys[int(date.Weekday())]
}

// StartOfWeek returns the Monday that opens the 7-day window containing date.
func StartOfWeek(date time.Time) time.Time {
	offset := int(date.Weekday())
	if offset == 0 {
		offset = 7
	}
	monday := date.AddDate(0, 0, -offset+1)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, date.Location())
}

// EndOfWeek returns the Sunday that closes the window opened by StartOfWeek.
func EndOfWeek(date time.Time) time.Time {
	return StartOfWeek(date).AddDate(0, 0, 6)
}

// ParseDate parses a YYYY-MM-DD string as a plain calendar date. Dates are
// never treated as instants so bucketing cannot shift a day across timezones.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}
