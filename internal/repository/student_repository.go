package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fon-raspored/raspored-api/internal/models"
)

const studentProfileQuery = `SELECT u.id, u.username, u.email, u.first_name, u.last_name,
        s.index_number, s.study_program, s.year_of_study, s.picture_url, s.group_id, g.name AS group_name
        FROM users u
        INNER JOIN students s ON s.user_id = u.id
        LEFT JOIN student_groups g ON g.id = s.group_id
        WHERE u.id = $1 LIMIT 1`

// StudentRepository reads student profiles.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindProfile returns the student's profile joined with the user and group rows.
func (r *StudentRepository) FindProfile(ctx context.Context, userID string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, studentProfileQuery, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get student profile: %w", err)
	}
	return &profile, nil
}

// GroupID returns the group of a student, or an empty string when unassigned.
func (r *StudentRepository) GroupID(ctx context.Context, userID string) (string, error) {
	var groupID sql.NullString
	if err := r.db.GetContext(ctx, &groupID, "SELECT group_id FROM students WHERE user_id = $1", userID); err != nil {
		if err == sql.ErrNoRows {
			return "", err
		}
		return "", fmt.Errorf("get student group: %w", err)
	}
	return groupID.String, nil
}
