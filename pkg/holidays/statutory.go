package holidays

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
)

// Serbian statutory non-working days. Two-day holidays falling on Sunday move
// to the next working day.
var (
	NewYear = &cal.Holiday{
		Name: "Nova godina", Type: cal.ObservancePublic, Month: time.January, Day: 1,
		Observed: []cal.AltDay{{Day: time.Sunday, Offset: 2}}, Func: cal.CalcDayOfMonth,
	}
	NewYearSecond = &cal.Holiday{
		Name: "Nova godina", Type: cal.ObservancePublic, Month: time.January, Day: 2,
		Observed: []cal.AltDay{{Day: time.Sunday, Offset: 1}}, Func: cal.CalcDayOfMonth,
	}
	OrthodoxChristmas = &cal.Holiday{
		Name: "Božić", Type: cal.ObservancePublic, Month: time.January, Day: 7, Func: cal.CalcDayOfMonth,
	}
	StatehoodDay = &cal.Holiday{
		Name: "Dan državnosti Srbije", Type: cal.ObservancePublic, Month: time.February, Day: 15,
		Observed: []cal.AltDay{{Day: time.Sunday, Offset: 2}}, Func: cal.CalcDayOfMonth,
	}
	StatehoodDaySecond = &cal.Holiday{
		Name: "Dan državnosti Srbije", Type: cal.ObservancePublic, Month: time.February, Day: 16,
		Observed: []cal.AltDay{{Day: time.Sunday, Offset: 1}}, Func: cal.CalcDayOfMonth,
	}
	GoodFriday = &cal.Holiday{
		Name: "Veliki petak", Type: cal.ObservancePublic, Julian: true, Offset: -2, Func: cal.CalcEasterOffset,
	}
	HolySaturday = &cal.Holiday{
		Name: "Velika subota", Type: cal.ObservancePublic, Julian: true, Offset: -1, Func: cal.CalcEasterOffset,
	}
	Easter = &cal.Holiday{
		Name: "Vaskrs", Type: cal.ObservancePublic, Julian: true, Func: cal.CalcEasterOffset,
	}
	EasterMonday = &cal.Holiday{
		Name: "Vaskršnji ponedeljak", Type: cal.ObservancePublic, Julian: true, Offset: 1, Func: cal.CalcEasterOffset,
	}
	LabourDay = &cal.Holiday{
		Name: "Praznik rada", Type: cal.ObservancePublic, Month: time.May, Day: 1,
		Observed: []cal.AltDay{{Day: time.Sunday, Offset: 2}}, Func: cal.CalcDayOfMonth,
	}
	LabourDaySecond = &cal.Holiday{
		Name: "Praznik rada", Type: cal.ObservancePublic, Month: time.May, Day: 2,
		Observed: []cal.AltDay{{Day: time.Sunday, Offset: 1}}, Func: cal.CalcDayOfMonth,
	}
	ArmisticeDay = &cal.Holiday{
		Name: "Dan primirja u Prvom svetskom ratu", Type: cal.ObservancePublic, Month: time.November, Day: 11,
		Observed: []cal.AltDay{{Day: time.Sunday, Offset: 1}}, Func: cal.CalcDayOfMonth,
	}

	serbianHolidays = []*cal.Holiday{
		NewYear, NewYearSecond, OrthodoxChristmas, StatehoodDay, StatehoodDaySecond,
		GoodFriday, HolySaturday, Easter, EasterMonday, LabourDay, LabourDaySecond, ArmisticeDay,
	}
)

// StatutoryCalendar computes Serbian public holidays offline.
type StatutoryCalendar struct {
	calendar *cal.BusinessCalendar
	location *time.Location
}

// NewStatutoryCalendar builds the offline calendar; dates are computed in loc.
func NewStatutoryCalendar(loc *time.Location) *StatutoryCalendar {
	if loc == nil {
		loc = time.UTC
	}
	calendar := cal.NewBusinessCalendar()
	calendar.AddHoliday(serbianHolidays...)
	return &StatutoryCalendar{calendar: calendar, location: loc}
}

// Name identifies the source in logs and metrics.
func (s *StatutoryCalendar) Name() string { return "statutory" }

// IsHoliday reports whether the day of t is a statutory non-working day.
func (s *StatutoryCalendar) IsHoliday(t time.Time) bool {
	actual, observed, _ := s.calendar.IsHoliday(t.In(s.location))
	return actual || observed
}

// PublicHolidays lists actual and observed non-working days of a year in
// ascending order. Only RS is supported.
func (s *StatutoryCalendar) PublicHolidays(_ context.Context, year int, country string) ([]PublicHoliday, error) {
	if !strings.EqualFold(country, "RS") {
		return nil, fmt.Errorf("statutory calendar has no rules for %q", country)
	}
	seen := make(map[string]struct{})
	var result []PublicHoliday
	add := func(t time.Time, name string) {
		if t.IsZero() || t.Year() != year {
			return
		}
		date := t.Format("2006-01-02")
		if _, dup := seen[date]; dup {
			return
		}
		seen[date] = struct{}{}
		result = append(result, PublicHoliday{Date: date, LocalName: name, Name: name})
	}
	for _, h := range serbianHolidays {
		actual, observed := h.Calc(year)
		add(actual, h.Name)
		add(observed, h.Name)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}
