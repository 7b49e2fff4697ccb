package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fon-raspored/raspored-api/internal/models"
)

func TestUserRepositoryFindByUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "first_name", "last_name", "role"}).
		AddRow("user-1", "jjovanovic", "jj@fon.bg.ac.rs", "Jovana", "Jovanovic", "STUDENT")
	mock.ExpectQuery("FROM users WHERE username = \\$1").WithArgs("jjovanovic").WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "jjovanovic")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET username").WithArgs("novo", "user-1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateUsername(context.Background(), "user-1", "novo"))

	mock.ExpectExec("UPDATE users SET username").WithArgs("novo", "ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateUsername(context.Background(), "ghost", "novo"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
