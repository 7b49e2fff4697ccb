package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fon-raspored/raspored-api/internal/dto"
	"github.com/fon-raspored/raspored-api/internal/models"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
	"github.com/fon-raspored/raspored-api/pkg/holidays"
	"github.com/fon-raspored/raspored-api/pkg/jobs"
)

// HolidaySyncJobType identifies queued public holiday imports.
const HolidaySyncJobType = "holiday_sync"

type holidayStore interface {
	List(ctx context.Context) ([]models.Holiday, error)
	FindByDate(ctx context.Context, date string) (*models.Holiday, error)
	Create(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id string) error
	FindCalendar(ctx context.Context, academicYear string) (*models.HolidayCalendar, error)
	CreateCalendar(ctx context.Context, calendar *models.HolidayCalendar) error
}

// HolidayServiceParams groups constructor dependencies.
type HolidayServiceParams struct {
	Repo      holidayStore
	Primary   holidays.Source
	Fallback  holidays.Source
	Country   string
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	Location  *time.Location
}

// HolidayService manages non-teaching days.
type HolidayService struct {
	repo      holidayStore
	primary   holidays.Source
	fallback  holidays.Source
	country   string
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

// NewHolidayService constructs a HolidayService. Fallback may be nil.
func NewHolidayService(params HolidayServiceParams) *HolidayService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	country := params.Country
	if country == "" {
		country = "RS"
	}
	return &HolidayService{
		repo:      params.Repo,
		primary:   params.Primary,
		fallback:  params.Fallback,
		country:   country,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		location:  loc,
		now:       time.Now,
	}
}

// List returns all holidays in ascending date order.
func (s *HolidayService) List(ctx context.Context) ([]models.Holiday, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list holidays")
	}
	if list == nil {
		list = []models.Holiday{}
	}
	return list, nil
}

// Create records a holiday under the academic calendar of its date.
func (s *HolidayService) Create(ctx context.Context, req dto.CreateHolidayRequest) (*models.Holiday, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date (YYYY-MM-DD) and a valid type are required")
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, s.location)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}

	if _, err := s.repo.FindByDate(ctx, req.Date); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a holiday is already recorded for this date")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check holiday")
	}

	calendar, err := s.ensureCalendar(ctx, models.AcademicYearOf(date), nil)
	if err != nil {
		return nil, err
	}
	holiday := &models.Holiday{Date: req.Date, Type: req.Type, CalendarID: calendar.ID}
	if err := s.repo.Create(ctx, holiday); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create holiday")
	}
	holiday.Calendar = calendar
	s.invalidateStats(ctx)
	return holiday, nil
}

// Delete removes a holiday.
func (s *HolidayService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "holiday not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete holiday")
	}
	s.invalidateStats(ctx)
	return nil
}

// Sync imports the public holidays of year, zero meaning the current year.
// Dates already recorded are left untouched; new ones become NERADNI_DAN.
func (s *HolidayService) Sync(ctx context.Context, year int) (*dto.SyncHolidaysResponse, error) {
	if year == 0 {
		year = s.now().In(s.location).Year()
	}
	source, fetched, err := s.fetch(ctx, year)
	if err != nil {
		return nil, err
	}

	calendars := make(map[string]*models.HolidayCalendar)
	added := 0
	for _, ph := range fetched {
		if _, err := s.repo.FindByDate(ctx, ph.Date); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check holiday")
		}
		date, err := time.ParseInLocation("2006-01-02", ph.Date, s.location)
		if err != nil {
			s.logger.Warn("skipping holiday with invalid date", zap.String("date", ph.Date))
			continue
		}
		calendar, err := s.ensureCalendar(ctx, models.AcademicYearOf(date), calendars)
		if err != nil {
			return nil, err
		}
		holiday := &models.Holiday{Date: ph.Date, Type: models.HolidayNonWorkingDay, CalendarID: calendar.ID}
		if err := s.repo.Create(ctx, holiday); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create holiday")
		}
		added++
	}

	if added > 0 {
		s.invalidateStats(ctx)
	}
	s.metrics.RecordHolidaySync(source, "ok", added)
	s.logger.Info("holiday sync complete", zap.Int("year", year), zap.String("source", source), zap.Int("fetched", len(fetched)), zap.Int("added", added))
	return &dto.SyncHolidaysResponse{Year: year, Source: source, Fetched: len(fetched), Added: added}, nil
}

// SyncJob is the queue handler for HolidaySyncJobType. The payload is an
// optional int year.
func (s *HolidayService) SyncJob(ctx context.Context, job jobs.Job) error {
	year, _ := job.Payload.(int)
	_, err := s.Sync(ctx, year)
	return err
}

func (s *HolidayService) fetch(ctx context.Context, year int) (string, []holidays.PublicHoliday, error) {
	fetched, err := s.primary.PublicHolidays(ctx, year, s.country)
	if err == nil {
		return s.primary.Name(), fetched, nil
	}
	s.metrics.RecordHolidaySync(s.primary.Name(), "error", 0)
	s.logger.Warn("holiday source failed", zap.String("source", s.primary.Name()), zap.Int("year", year), zap.Error(err))

	if s.fallback == nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrBadGateway.Code, appErrors.ErrBadGateway.Status, "failed to reach the public holiday service")
	}
	fetched, fbErr := s.fallback.PublicHolidays(ctx, year, s.country)
	if fbErr != nil {
		s.metrics.RecordHolidaySync(s.fallback.Name(), "error", 0)
		return "", nil, appErrors.Wrap(fmt.Errorf("%v; fallback: %w", err, fbErr), appErrors.ErrBadGateway.Code, appErrors.ErrBadGateway.Status, "failed to reach the public holiday service")
	}
	return s.fallback.Name(), fetched, nil
}

func (s *HolidayService) ensureCalendar(ctx context.Context, academicYear string, seen map[string]*models.HolidayCalendar) (*models.HolidayCalendar, error) {
	if calendar, ok := seen[academicYear]; ok {
		return calendar, nil
	}
	calendar, err := s.repo.FindCalendar(ctx, academicYear)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holiday calendar")
		}
		calendar = &models.HolidayCalendar{AcademicYear: academicYear}
		if err := s.repo.CreateCalendar(ctx, calendar); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create holiday calendar")
		}
	}
	if seen != nil {
		seen[academicYear] = calendar
	}
	return calendar, nil
}

func (s *HolidayService) invalidateStats(ctx context.Context) {
	s.cache.Invalidate(ctx, statsCachePrefix+"*")
}
