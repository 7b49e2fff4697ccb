package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fon-raspored/raspored-api/internal/dto"
	"github.com/fon-raspored/raspored-api/internal/models"
	"github.com/fon-raspored/raspored-api/pkg/attendance"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
)

const statsCachePrefix = "attendance:stats:"

// statsCacheKey scopes cached stats to a student and a local calendar day so
// held counts roll over at midnight.
func statsCacheKey(userID string, day time.Time) string {
	return statsCachePrefix + userID + ":" + day.Format(attendance.DateLayout)
}

func studentStatsPattern(userID string) string {
	return statsCachePrefix + userID + ":*"
}

type profileStudentReader interface {
	FindProfile(ctx context.Context, userID string) (*models.StudentProfile, error)
}

type groupTermLister interface {
	ListByGroup(ctx context.Context, groupID string) ([]models.Term, error)
}

type studentAttendanceLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Attendance, error)
}

type holidayDateLister interface {
	Dates(ctx context.Context) ([]string, error)
}

type usernameStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUsername(ctx context.Context, id, username string) error
}

// ProfileServiceConfig fixes the counting window.
type ProfileServiceConfig struct {
	SemesterStart time.Time
	Location      *time.Location
	CacheTTL      time.Duration
}

// ProfileServiceParams groups constructor dependencies.
type ProfileServiceParams struct {
	Students   profileStudentReader
	Terms      groupTermLister
	Attendance studentAttendanceLister
	Holidays   holidayDateLister
	Users      usernameStore
	Cache      *CacheService
	Metrics    *MetricsService
	Validator  *validator.Validate
	Logger     *zap.Logger
	Config     ProfileServiceConfig
}

// ProfileService assembles the student profile and attendance statistics.
type ProfileService struct {
	students   profileStudentReader
	terms      groupTermLister
	attendance studentAttendanceLister
	holidays   holidayDateLister
	users      usernameStore
	cache      *CacheService
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
	cfg        ProfileServiceConfig
}

// NewProfileService constructs a ProfileService.
func NewProfileService(params ProfileServiceParams) *ProfileService {
	cfg := params.Config
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	cfg.SemesterStart = cfg.SemesterStart.In(cfg.Location)
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	return &ProfileService{
		students:   params.Students,
		terms:      params.Terms,
		attendance: params.Attendance,
		holidays:   params.Holidays,
		users:      params.Users,
		cache:      params.Cache,
		metrics:    params.Metrics,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
		cfg:        cfg,
	}
}

// Get returns the student's profile. Subject statistics are computed over the
// group's terms from semester start to today; the bool reports a cache hit.
func (s *ProfileService) Get(ctx context.Context, userID string) (*dto.StudentProfileResponse, bool, error) {
	profile, err := s.students.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student profile")
	}

	resp := &dto.StudentProfileResponse{StudentProfile: *profile, SubjectStats: []attendance.SubjectStat{}}
	if !profile.HasGroup() {
		return resp, false, nil
	}

	stats, hit, err := s.SubjectStats(ctx, userID, *profile.GroupID)
	if err != nil {
		return nil, false, err
	}
	resp.SubjectStats = stats
	return resp, hit, nil
}

// SubjectStats aggregates attendance per subject for a student of a group.
func (s *ProfileService) SubjectStats(ctx context.Context, userID, groupID string) ([]attendance.SubjectStat, bool, error) {
	today := s.now().In(s.cfg.Location)
	key := statsCacheKey(userID, today)

	var cached []attendance.SubjectStat
	if s.cache.Get(ctx, key, &cached) {
		if cached == nil {
			cached = []attendance.SubjectStat{}
		}
		return cached, true, nil
	}

	var (
		terms   []models.Term
		records []models.Attendance
		dates   []string
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		terms, err = s.terms.ListByGroup(gCtx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.attendance.ListByStudent(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		dates, err = s.holidays.Dates(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance data")
	}

	started := time.Now()
	definitions := make([]attendance.TermDefinition, len(terms))
	for i, term := range terms {
		definitions[i] = term.Definition()
	}
	checkIns := make([]attendance.AttendanceRecord, len(records))
	for i, record := range records {
		checkIns[i] = record.Record()
	}
	stats := attendance.AggregateAttendance(definitions, checkIns, attendance.NewHolidaySet(dates...), s.cfg.SemesterStart, today)
	s.metrics.ObserveStatsComputation(time.Since(started))

	for _, def := range definitions {
		if !def.Weekday.Valid() {
			s.logger.Warn("term has unrecognized weekday", zap.String("term_id", def.ID), zap.String("day_of_week", string(def.Weekday)))
		}
	}

	s.cache.Set(ctx, key, stats, s.cfg.CacheTTL)
	return stats, false, nil
}

// InvalidateStats drops cached statistics of one student.
func (s *ProfileService) InvalidateStats(ctx context.Context, userID string) {
	s.cache.Invalidate(ctx, studentStatsPattern(userID))
}

// UpdateUsername renames the student after checking the name is free.
func (s *ProfileService) UpdateUsername(ctx context.Context, userID string, req dto.UpdateUsernameRequest) (*dto.UpdateUsernameResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username must have at least 3 characters")
	}

	existing, err := s.users.FindByUsername(ctx, req.Username)
	switch {
	case err == nil && existing.ID != userID:
		return nil, appErrors.Clone(appErrors.ErrConflict, "username is already taken")
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username")
	}

	if err := s.users.UpdateUsername(ctx, userID, req.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update username")
	}
	s.logger.Info("username updated", zap.String("user_id", userID))

	return &dto.UpdateUsernameResponse{Username: req.Username, Message: fmt.Sprintf("username changed to %s", req.Username)}, nil
}
