package models

import (
	"fmt"
	"time"
)

// HolidayType classifies days on which no regular classes are held.
type HolidayType string

const (
	HolidayColloquiumWeek HolidayType = "KOLOKVIJUMSKA_NEDELJA"
	HolidayExamPeriod     HolidayType = "ISPITNI_ROK"
	HolidayNoActivities   HolidayType = "BEZ_AKTIVNOSTI"
	HolidayNonWorkingDay  HolidayType = "NERADNI_DAN"
)

// HolidayTypes lists every accepted holiday type.
var HolidayTypes = []HolidayType{HolidayColloquiumWeek, HolidayExamPeriod, HolidayNoActivities, HolidayNonWorkingDay}

// HolidayCalendar groups holidays of one academic year, e.g. "2025/2026".
type HolidayCalendar struct {
	ID           string    `db:"id" json:"id"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Holiday is a calendar date excluded from held-term counting. Date is the
// canonical YYYY-MM-DD string.
type Holiday struct {
	ID         string           `db:"id" json:"id"`
	Date       string           `db:"date" json:"date"`
	Type       HolidayType      `db:"type" json:"type"`
	CalendarID string           `db:"calendar_id" json:"calendar_id"`
	Calendar   *HolidayCalendar `db:"-" json:"calendar,omitempty"`
}

// AcademicYearOf returns the academic year label a date belongs to. The year
// starts in October.
func AcademicYearOf(t time.Time) string {
	year := t.Year()
	if t.Month() >= time.October {
		return formatAcademicYear(year)
	}
	return formatAcademicYear(year - 1)
}

func formatAcademicYear(first int) string {
	return fmt.Sprintf("%d/%d", first, first+1)
}
