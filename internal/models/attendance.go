package models

import (
	"time"

	"github.com/fon-raspored/raspored-api/pkg/attendance"
)

// Attendance is a single student check-in for a term.
type Attendance struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	TermID      string    `db:"term_id" json:"term_id"`
	CheckedInAt time.Time `db:"checked_in_at" json:"checked_in_at"`
}

// Record converts the row into the attendance calculator input.
func (a Attendance) Record() attendance.AttendanceRecord {
	return attendance.AttendanceRecord{
		ID:          a.ID,
		StudentID:   a.StudentID,
		TermID:      a.TermID,
		CheckedInAt: a.CheckedInAt,
	}
}
