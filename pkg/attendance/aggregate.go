package attendance

import "time"

// TermDefinition is a weekly class slot the student is enrolled in.
type TermDefinition struct {
	ID           string       `json:"id"`
	SubjectID    string       `json:"subject_id"`
	SubjectTitle string       `json:"subject_title"`
	Weekday      WeekdayLabel `json:"day_of_week"`
	StartTime    string       `json:"start_time"`
	EndTime      string       `json:"end_time"`
	Type         string       `json:"type"`
}

// AttendanceRecord marks one check-in of a student against a term.
type AttendanceRecord struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	TermID      string    `json:"term_id"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// SubjectStat summarises attendance for one subject. Absence is held minus
// presence and goes negative when check-ins outnumber held occurrences.
type SubjectStat struct {
	SubjectID            string  `json:"subject_id"`
	SubjectTitle         string  `json:"subject_title"`
	Presence             int     `json:"presence"`
	Held                 int     `json:"held"`
	Absence              int     `json:"absence"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type subjectTotals struct {
	title    string
	presence int
	held     int
}

// AggregateAttendance folds held and presence counts of every term into one
// SubjectStat per subject, in the order subjects first appear in terms.
func AggregateAttendance(terms []TermDefinition, records []AttendanceRecord, holidays HolidaySet, semesterStart, asOf time.Time) []SubjectStat {
	presenceByTerm := make(map[string]int, len(terms))
	for _, rec := range records {
		presenceByTerm[rec.TermID]++
	}

	order := make([]string, 0)
	totals := make(map[string]*subjectTotals)
	for _, term := range terms {
		acc, ok := totals[term.SubjectID]
		if !ok {
			acc = &subjectTotals{title: term.SubjectTitle}
			totals[term.SubjectID] = acc
			order = append(order, term.SubjectID)
		}
		acc.held += CountHeldTerms(term.Weekday, semesterStart, asOf, holidays)
		acc.presence += presenceByTerm[term.ID]
	}

	stats := make([]SubjectStat, 0, len(order))
	for _, subjectID := range order {
		acc := totals[subjectID]
		stats = append(stats, SubjectStat{
			SubjectID:            subjectID,
			SubjectTitle:         acc.title,
			Presence:             acc.presence,
			Held:                 acc.held,
			Absence:              acc.held - acc.presence,
			AttendancePercentage: Percentage(acc.presence, acc.held),
		})
	}
	return stats
}

// Percentage returns presence/held*100, or 0 when nothing was held.
func Percentage(presence, held int) float64 {
	if held <= 0 {
		return 0
	}
	return float64(presence) / float64(held) * 100
}
