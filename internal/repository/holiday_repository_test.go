package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fon-raspored/raspored-api/internal/models"
)

func TestHolidayRepositoryListAttachesCalendar(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	created := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "date", "type", "calendar_id", "academic_year", "calendar_created_at"}).
		AddRow("h-1", "2026-01-07", "NERADNI_DAN", "cal-1", "2025/2026", created).
		AddRow("h-2", "2026-04-06", "KOLOKVIJUMSKA_NEDELJA", "cal-1", "2025/2026", created)
	mock.ExpectQuery("FROM holidays h\\s+INNER JOIN holiday_calendar hc").WillReturnRows(rows)

	holidays, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "2026-01-07", holidays[0].Date)
	require.NotNil(t, holidays[1].Calendar)
	assert.Equal(t, "2025/2026", holidays[1].Calendar.AcademicYear)
	assert.Equal(t, models.HolidayColloquiumWeek, holidays[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryDates(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectQuery("SELECT to_char\\(date, 'YYYY-MM-DD'\\) FROM holidays").
		WillReturnRows(sqlmock.NewRows([]string{"to_char"}).AddRow("2026-01-01").AddRow("2026-01-02"))

	dates, err := repo.Dates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-01", "2026-01-02"}, dates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectExec("INSERT INTO holidays").
		WithArgs(sqlmock.AnyArg(), "2026-05-01", models.HolidayNonWorkingDay, "cal-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	holiday := &models.Holiday{Date: "2026-05-01", Type: models.HolidayNonWorkingDay, CalendarID: "cal-1"}
	require.NoError(t, repo.Create(context.Background(), holiday))
	assert.NotEmpty(t, holiday.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectExec("DELETE FROM holidays WHERE id = \\$1").WithArgs("h-9").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "h-9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepositoryCalendarLifecycle(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewHolidayRepository(db)

	mock.ExpectQuery("FROM holiday_calendar WHERE academic_year = \\$1").WithArgs("2026/2027").WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO holiday_calendar").
		WithArgs(sqlmock.AnyArg(), "2026/2027", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := repo.FindCalendar(context.Background(), "2026/2027")
	require.ErrorIs(t, err, sql.ErrNoRows)

	calendar := &models.HolidayCalendar{AcademicYear: "2026/2027"}
	require.NoError(t, repo.CreateCalendar(context.Background(), calendar))
	assert.NotEmpty(t, calendar.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
