package attendance

import (
	"strings"
	"time"
)

// WeekdayLabel is the day name stored on weekly terms.
type WeekdayLabel string

const (
	Monday    WeekdayLabel = "PONEDELJAK"
	Tuesday   WeekdayLabel = "UTORAK"
	Wednesday WeekdayLabel = "SREDA"
	Thursday  WeekdayLabel = "CETVRTAK"
	Friday    WeekdayLabel = "PETAK"
	Saturday  WeekdayLabel = "SUBOTA"
	Sunday    WeekdayLabel = "NEDELJA"
)

var labelWeekdays = map[WeekdayLabel]time.Weekday{
	Sunday:    time.Sunday,
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
}

// weekdayLabels is indexed by time.Weekday.
var weekdayLabels = [7]WeekdayLabel{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Weekday resolves the label. The second result is false for labels that do
// not name a day; such labels never match any date.
func (l WeekdayLabel) Weekday() (time.Weekday, bool) {
	wd, ok := labelWeekdays[WeekdayLabel(strings.ToUpper(strings.TrimSpace(string(l))))]
	return wd, ok
}

// Valid reports whether the label resolves to a day.
func (l WeekdayLabel) Valid() bool {
	_, ok := l.Weekday()
	return ok
}

// LabelOf returns the label for a weekday.
func LabelOf(wd time.Weekday) WeekdayLabel {
	if wd < time.Sunday || wd > time.Saturday {
		return ""
	}
	return weekdayLabels[wd]
}
