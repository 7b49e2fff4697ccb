package models

import "github.com/fon-raspored/raspored-api/pkg/attendance"

// SessionType distinguishes lectures from exercises.
type SessionType string

const (
	SessionLecture  SessionType = "PREDAVANJE"
	SessionExercise SessionType = "VEZBE"
)

// Term is a weekly recurring class slot of a group.
type Term struct {
	ID           string      `db:"id" json:"id"`
	DayOfWeek    string      `db:"day_of_week" json:"day_of_week"`
	StartTime    string      `db:"start_time" json:"start_time"`
	EndTime      string      `db:"end_time" json:"end_time"`
	Type         SessionType `db:"type" json:"type"`
	SubjectID    string      `db:"subject_id" json:"subject_id"`
	SubjectTitle string      `db:"subject_title" json:"subject"`
	CabinetID    *string     `db:"cabinet_id" json:"cabinet_id,omitempty"`
	Cabinet      *string     `db:"cabinet_number" json:"cabinet,omitempty"`
	GroupID      string      `db:"group_id" json:"group_id"`
}

// Definition converts the row into the attendance calculator input.
func (t Term) Definition() attendance.TermDefinition {
	return attendance.TermDefinition{
		ID:           t.ID,
		SubjectID:    t.SubjectID,
		SubjectTitle: t.SubjectTitle,
		Weekday:      attendance.WeekdayLabel(t.DayOfWeek),
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		Type:         string(t.Type),
	}
}
