package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fon-raspored/raspored-api/internal/models"
)

const termColumns = `t.id, t.day_of_week, to_char(t.start_time, 'HH24:MI') AS start_time, to_char(t.end_time, 'HH24:MI') AS end_time,
        t.type, t.subject_id, s.title AS subject_title, t.cabinet_id, c.number AS cabinet_number, t.group_id`

const termJoins = `FROM terms t
        INNER JOIN subjects s ON s.id = t.subject_id
        LEFT JOIN cabinets c ON c.id = t.cabinet_id`

// weekdayOrder sorts Serbian day names Monday first.
const weekdayOrder = `array_position(ARRAY['PONEDELJAK','UTORAK','SREDA','CETVRTAK','PETAK','SUBOTA','NEDELJA']::text[], t.day_of_week::text)`

// TermRepository handles persistence for weekly terms.
type TermRepository struct {
	db *sqlx.DB
}

// NewTermRepository instantiates a term repository.
func NewTermRepository(db *sqlx.DB) *TermRepository {
	return &TermRepository{db: db}
}

// ListByGroup returns the weekly timetable of a group ordered by day and start time.
func (r *TermRepository) ListByGroup(ctx context.Context, groupID string) ([]models.Term, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE t.group_id = $1 ORDER BY %s, t.start_time", termColumns, termJoins, weekdayOrder)
	var terms []models.Term
	if err := r.db.SelectContext(ctx, &terms, query, groupID); err != nil {
		return nil, fmt.Errorf("list terms by group: %w", err)
	}
	return terms, nil
}

// FindByID returns a single term.
func (r *TermRepository) FindByID(ctx context.Context, id string) (*models.Term, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE t.id = $1", termColumns, termJoins)
	var term models.Term
	if err := r.db.GetContext(ctx, &term, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get term: %w", err)
	}
	return &term, nil
}
