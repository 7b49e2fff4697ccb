package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fon-raspored/raspored-api/internal/models"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername fetches a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	const query = "SELECT id, username, email, first_name, last_name, role FROM users WHERE username = $1 LIMIT 1"
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

// UpdateUsername renames a user.
func (r *UserRepository) UpdateUsername(ctx context.Context, id, username string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE users SET username = $1 WHERE id = $2", username, id)
	if err != nil {
		return fmt.Errorf("update username: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update username rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
