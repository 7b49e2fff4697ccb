package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fon-raspored/raspored-api/internal/models"
)

// StatsRepository computes admin dashboard counters.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository constructs a stats repository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Counts returns the number of terms, students and groups.
func (r *StatsRepository) Counts(ctx context.Context) (*models.AdminStats, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM terms) AS terms_count,
        (SELECT COUNT(*) FROM students) AS students_count,
        (SELECT COUNT(*) FROM student_groups) AS groups_count`
	var stats models.AdminStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("count admin stats: %w", err)
	}
	return &stats, nil
}
