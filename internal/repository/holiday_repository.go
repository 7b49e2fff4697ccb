package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fon-raspored/raspored-api/internal/models"
)

const holidayListQuery = `SELECT h.id, to_char(h.date, 'YYYY-MM-DD') AS date, h.type, h.calendar_id,
        hc.academic_year, hc.created_at AS calendar_created_at
        FROM holidays h
        INNER JOIN holiday_calendar hc ON hc.id = h.calendar_id
        ORDER BY h.date ASC`

type holidayRow struct {
	models.Holiday
	AcademicYear      string    `db:"academic_year"`
	CalendarCreatedAt time.Time `db:"calendar_created_at"`
}

// HolidayRepository persists non-teaching days and their academic calendars.
type HolidayRepository struct {
	db *sqlx.DB
}

// NewHolidayRepository constructs a holiday repository.
func NewHolidayRepository(db *sqlx.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// List returns all holidays in ascending date order with their calendar.
func (r *HolidayRepository) List(ctx context.Context) ([]models.Holiday, error) {
	var rows []holidayRow
	if err := r.db.SelectContext(ctx, &rows, holidayListQuery); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	holidays := make([]models.Holiday, len(rows))
	for i, row := range rows {
		h := row.Holiday
		h.Calendar = &models.HolidayCalendar{ID: h.CalendarID, AcademicYear: row.AcademicYear, CreatedAt: row.CalendarCreatedAt}
		holidays[i] = h
	}
	return holidays, nil
}

// Dates returns every holiday date as YYYY-MM-DD.
func (r *HolidayRepository) Dates(ctx context.Context) ([]string, error) {
	var dates []string
	if err := r.db.SelectContext(ctx, &dates, "SELECT to_char(date, 'YYYY-MM-DD') FROM holidays ORDER BY date"); err != nil {
		return nil, fmt.Errorf("list holiday dates: %w", err)
	}
	return dates, nil
}

// FindByDate returns the holiday recorded for a date.
func (r *HolidayRepository) FindByDate(ctx context.Context, date string) (*models.Holiday, error) {
	const query = "SELECT id, to_char(date, 'YYYY-MM-DD') AS date, type, calendar_id FROM holidays WHERE date = $1::date LIMIT 1"
	var holiday models.Holiday
	if err := r.db.GetContext(ctx, &holiday, query, date); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get holiday by date: %w", err)
	}
	return &holiday, nil
}

// Create inserts a holiday.
func (r *HolidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	if holiday.ID == "" {
		holiday.ID = uuid.NewString()
	}
	const query = `INSERT INTO holidays (id, date, type, calendar_id) VALUES (:id, CAST(:date AS date), :type, :calendar_id)`
	if _, err := r.db.NamedExecContext(ctx, query, holiday); err != nil {
		return fmt.Errorf("insert holiday: %w", err)
	}
	return nil
}

// Delete removes a holiday by ID.
func (r *HolidayRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete holiday rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindCalendar returns the calendar of an academic year.
func (r *HolidayRepository) FindCalendar(ctx context.Context, academicYear string) (*models.HolidayCalendar, error) {
	const query = "SELECT id, academic_year, created_at FROM holiday_calendar WHERE academic_year = $1 LIMIT 1"
	var calendar models.HolidayCalendar
	if err := r.db.GetContext(ctx, &calendar, query, academicYear); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get holiday calendar: %w", err)
	}
	return &calendar, nil
}

// CreateCalendar inserts a calendar for an academic year.
func (r *HolidayRepository) CreateCalendar(ctx context.Context, calendar *models.HolidayCalendar) error {
	if calendar.ID == "" {
		calendar.ID = uuid.NewString()
	}
	if calendar.CreatedAt.IsZero() {
		calendar.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO holiday_calendar (id, academic_year, created_at) VALUES (:id, :academic_year, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, calendar); err != nil {
		return fmt.Errorf("insert holiday calendar: %w", err)
	}
	return nil
}
