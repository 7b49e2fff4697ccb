package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fon-raspored/raspored-api/internal/dto"
	"github.com/fon-raspored/raspored-api/internal/models"
	"github.com/fon-raspored/raspored-api/pkg/attendance"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
)

type studentGroupReader interface {
	GroupID(ctx context.Context, userID string) (string, error)
}

type termReader interface {
	ListByGroup(ctx context.Context, groupID string) ([]models.Term, error)
	FindByID(ctx context.Context, id string) (*models.Term, error)
}

type checkInStore interface {
	ExistsBetween(ctx context.Context, studentID, termID string, from, to time.Time) (bool, error)
	Create(ctx context.Context, record *models.Attendance) error
}

type holidayFinder interface {
	FindByDate(ctx context.Context, date string) (*models.Holiday, error)
}

type statsInvalidator interface {
	InvalidateStats(ctx context.Context, userID string)
}

// AttendanceServiceParams groups constructor dependencies.
type AttendanceServiceParams struct {
	Students   studentGroupReader
	Terms      termReader
	Attendance checkInStore
	Holidays   holidayFinder
	Stats      statsInvalidator
	Metrics    *MetricsService
	Logger     *zap.Logger
	Location   *time.Location
}

// AttendanceService handles the student check-in flow.
type AttendanceService struct {
	students   studentGroupReader
	terms      termReader
	attendance checkInStore
	holidays   holidayFinder
	stats      statsInvalidator
	metrics    *MetricsService
	logger     *zap.Logger
	location   *time.Location
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(params AttendanceServiceParams) *AttendanceService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{
		students:   params.Students,
		terms:      params.Terms,
		attendance: params.Attendance,
		holidays:   params.Holidays,
		stats:      params.Stats,
		metrics:    params.Metrics,
		logger:     logger,
		location:   loc,
	}
}

// CurrentTerm returns the group's term in progress at now, whether the student
// already checked in today and whether today is a holiday.
func (s *AttendanceService) CurrentTerm(ctx context.Context, userID string, now time.Time) (*dto.CurrentTermResponse, error) {
	groupID, err := s.groupOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	local := now.In(s.location)
	resp := &dto.CurrentTermResponse{}

	holiday, err := s.holidayOn(ctx, local)
	if err != nil {
		return nil, err
	}
	if holiday != nil {
		resp.IsHoliday = true
		resp.HolidayType = &holiday.Type
	}
	if groupID == "" {
		return resp, nil
	}

	terms, err := s.terms.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	for i := range terms {
		if inProgress(terms[i], local) {
			resp.Exists = true
			resp.Term = &terms[i]
			break
		}
	}
	if !resp.Exists {
		return resp, nil
	}

	from, to := dayBounds(local)
	checked, err := s.attendance.ExistsBetween(ctx, userID, resp.Term.ID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check attendance")
	}
	resp.IsCheckedIn = checked
	return resp, nil
}

// CheckIn records the student's presence at a term that is in progress now.
func (s *AttendanceService) CheckIn(ctx context.Context, userID, termID string, now time.Time) (*models.Attendance, error) {
	record, err := s.checkIn(ctx, userID, strings.TrimSpace(termID), now)
	if err != nil {
		s.metrics.RecordCheckIn(appErrors.FromError(err).Code)
		return nil, err
	}
	s.metrics.RecordCheckIn("ok")
	if s.stats != nil {
		s.stats.InvalidateStats(ctx, userID)
	}
	s.logger.Info("attendance recorded", zap.String("user_id", userID), zap.String("term_id", termID))
	return record, nil
}

func (s *AttendanceService) checkIn(ctx context.Context, userID, termID string, now time.Time) (*models.Attendance, error) {
	if termID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term_id is required")
	}
	groupID, err := s.groupOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	term, err := s.terms.FindByID(ctx, termID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}
	if groupID == "" || term.GroupID != groupID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "term does not belong to your group")
	}

	local := now.In(s.location)
	if !inProgress(*term, local) {
		return nil, appErrors.ErrNoActiveTerm
	}
	holiday, err := s.holidayOn(ctx, local)
	if err != nil {
		return nil, err
	}
	if holiday != nil {
		return nil, appErrors.ErrHoliday
	}

	from, to := dayBounds(local)
	exists, err := s.attendance.ExistsBetween(ctx, userID, term.ID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check attendance")
	}
	if exists {
		return nil, appErrors.ErrAlreadyCheckedIn
	}

	record := &models.Attendance{StudentID: userID, TermID: term.ID, CheckedInAt: now.UTC()}
	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	return record, nil
}

// Schedule returns the weekly timetable of the student's group.
func (s *AttendanceService) Schedule(ctx context.Context, userID string) ([]models.Term, error) {
	groupID, err := s.groupOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if groupID == "" {
		return []models.Term{}, nil
	}
	terms, err := s.terms.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	if terms == nil {
		terms = []models.Term{}
	}
	return terms, nil
}

func (s *AttendanceService) groupOf(ctx context.Context, userID string) (string, error) {
	groupID, err := s.students.GroupID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return groupID, nil
}

func (s *AttendanceService) holidayOn(ctx context.Context, local time.Time) (*models.Holiday, error) {
	holiday, err := s.holidays.FindByDate(ctx, local.Format(attendance.DateLayout))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holidays")
	}
	return holiday, nil
}

// inProgress reports whether local falls on the term's weekday within [start, end).
func inProgress(term models.Term, local time.Time) bool {
	weekday, ok := attendance.WeekdayLabel(term.DayOfWeek).Weekday()
	if !ok || weekday != local.Weekday() {
		return false
	}
	start, okStart := clockMinutes(term.StartTime)
	end, okEnd := clockMinutes(term.EndTime)
	if !okStart || !okEnd {
		return false
	}
	now := local.Hour()*60 + local.Minute()
	return now >= start && now < end
}

// clockMinutes parses "HH:MM" or "HH:MM:SS" into minutes after midnight.
func clockMinutes(raw string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 24 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

func dayBounds(local time.Time) (time.Time, time.Time) {
	y, m, d := local.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, local.Location())
	return from, from.AddDate(0, 0, 1)
}
