package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fon-raspored/raspored-api/internal/models"
)

// GroupRepository reads student groups.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs a group repository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// ListWithCounts returns groups ordered by name with the number of assigned students.
func (r *GroupRepository) ListWithCounts(ctx context.Context) ([]models.GroupWithCount, error) {
	const query = `SELECT g.id, g.name, g.study_program, g.year_of_study, g.alphabet_half, COUNT(s.user_id) AS student_count
        FROM student_groups g
        LEFT JOIN students s ON s.group_id = g.id
        GROUP BY g.id
        ORDER BY g.name`
	var groups []models.GroupWithCount
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
