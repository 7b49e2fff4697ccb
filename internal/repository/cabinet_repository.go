package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fon-raspored/raspored-api/internal/models"
)

// CabinetRepository reads rooms.
type CabinetRepository struct {
	db *sqlx.DB
}

// NewCabinetRepository constructs a cabinet repository.
func NewCabinetRepository(db *sqlx.DB) *CabinetRepository {
	return &CabinetRepository{db: db}
}

// List returns all cabinets ordered by number.
func (r *CabinetRepository) List(ctx context.Context) ([]models.Cabinet, error) {
	var cabinets []models.Cabinet
	if err := r.db.SelectContext(ctx, &cabinets, "SELECT id, number, capacity, type FROM cabinets ORDER BY number"); err != nil {
		return nil, fmt.Errorf("list cabinets: %w", err)
	}
	return cabinets, nil
}
