package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fon-raspored/raspored-api/internal/models"
)

// AttendanceRepository persists student check-ins.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListByStudent returns every check-in of a student.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error) {
	const query = "SELECT id, student_id, term_id, checked_in_at FROM attendance WHERE student_id = $1 ORDER BY checked_in_at"
	var records []models.Attendance
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ExistsBetween reports whether the student checked in to the term within [from, to).
func (r *AttendanceRepository) ExistsBetween(ctx context.Context, studentID, termID string, from, to time.Time) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM attendance WHERE student_id = $1 AND term_id = $2 AND checked_in_at >= $3 AND checked_in_at < $4)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, studentID, termID, from, to); err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return exists, nil
}

// Create inserts a check-in.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CheckedInAt.IsZero() {
		record.CheckedInAt = time.Now().UTC()
	}
	const query = `INSERT INTO attendance (id, student_id, term_id, checked_in_at) VALUES (:id, :student_id, :term_id, :checked_in_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}
