package attendance

import "time"

// DateLayout is the canonical date-only form used for holiday comparison.
const DateLayout = "2006-01-02"

// HolidaySet holds canonical YYYY-MM-DD dates on which no class is held.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from canonical date strings.
func NewHolidaySet(dates ...string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

// Contains reports whether the calendar day of t, read in t's own location,
// is a holiday.
func (s HolidaySet) Contains(t time.Time) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[t.Format(DateLayout)]
	return ok
}

// CountHeldTerms counts the days between start and end (both inclusive, whole
// days) that fall on weekday and are not holidays. Weekends are counted like
// any other day when asked for.
func CountHeldTerms(weekday WeekdayLabel, start, end time.Time, holidays HolidaySet) int {
	target, ok := weekday.Weekday()
	if !ok {
		return 0
	}

	current := startOfDay(start)
	last := endOfDay(end)
	if current.After(last) {
		return 0
	}

	count := 0
	for !current.After(last) {
		if current.Weekday() == target && !holidays.Contains(current) {
			count++
		}
		current = current.AddDate(0, 0, 1)
	}
	return count
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
