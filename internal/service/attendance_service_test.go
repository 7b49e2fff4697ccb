package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fon-raspored/raspored-api/internal/models"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
)

type fakeGroupReader struct {
	groups map[string]string
}

func (f *fakeGroupReader) GroupID(_ context.Context, userID string) (string, error) {
	group, ok := f.groups[userID]
	if !ok {
		return "", sql.ErrNoRows
	}
	return group, nil
}

type fakeTermReader struct {
	terms []models.Term
}

func (f *fakeTermReader) ListByGroup(_ context.Context, groupID string) ([]models.Term, error) {
	var out []models.Term
	for _, term := range f.terms {
		if term.GroupID == groupID {
			out = append(out, term)
		}
	}
	return out, nil
}

func (f *fakeTermReader) FindByID(_ context.Context, id string) (*models.Term, error) {
	for i := range f.terms {
		if f.terms[i].ID == id {
			term := f.terms[i]
			return &term, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakeCheckInStore struct {
	records []models.Attendance
	from    time.Time
	to      time.Time
}

func (f *fakeCheckInStore) ExistsBetween(_ context.Context, studentID, termID string, from, to time.Time) (bool, error) {
	f.from, f.to = from, to
	for _, r := range f.records {
		if r.StudentID == studentID && r.TermID == termID && !r.CheckedInAt.Before(from) && r.CheckedInAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCheckInStore) Create(_ context.Context, record *models.Attendance) error {
	record.ID = "att-1"
	f.records = append(f.records, *record)
	return nil
}

type fakeHolidayFinder struct {
	byDate map[string]models.Holiday
}

func (f *fakeHolidayFinder) FindByDate(_ context.Context, date string) (*models.Holiday, error) {
	holiday, ok := f.byDate[date]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &holiday, nil
}

type recordingInvalidator struct {
	users []string
}

func (r *recordingInvalidator) InvalidateStats(_ context.Context, userID string) {
	r.users = append(r.users, userID)
}

// Monday 2026-04-20, 10:30 local time.
var mondayMorning = time.Date(2026, 4, 20, 10, 30, 0, 0, belgrade)

type attendanceFixture struct {
	svc      *AttendanceService
	store    *fakeCheckInStore
	holidays *fakeHolidayFinder
	stats    *recordingInvalidator
	metrics  *MetricsService
}

func newAttendanceFixture() *attendanceFixture {
	f := &attendanceFixture{
		store:    &fakeCheckInStore{},
		holidays: &fakeHolidayFinder{byDate: map[string]models.Holiday{}},
		stats:    &recordingInvalidator{},
		metrics:  NewMetricsService(),
	}
	f.svc = NewAttendanceService(AttendanceServiceParams{
		Students: &fakeGroupReader{groups: map[string]string{"user-1": "g-1", "loner": ""}},
		Terms: &fakeTermReader{terms: []models.Term{
			{ID: "t-mon", DayOfWeek: "PONEDELJAK", StartTime: "10:15", EndTime: "12:00", SubjectID: "alg", SubjectTitle: "Algoritmi", GroupID: "g-1"},
			{ID: "t-tue", DayOfWeek: "UTORAK", StartTime: "08:15", EndTime: "10:00", SubjectID: "eco", SubjectTitle: "Ekonomija", GroupID: "g-1"},
			{ID: "t-other", DayOfWeek: "PONEDELJAK", StartTime: "10:15", EndTime: "12:00", SubjectID: "alg", GroupID: "g-2"},
		}},
		Attendance: f.store,
		Holidays:   f.holidays,
		Stats:      f.stats,
		Metrics:    f.metrics,
		Location:   belgrade,
	})
	return f
}

func TestAttendanceServiceCurrentTerm(t *testing.T) {
	f := newAttendanceFixture()

	resp, err := f.svc.CurrentTerm(context.Background(), "user-1", mondayMorning)
	require.NoError(t, err)
	require.True(t, resp.Exists)
	assert.Equal(t, "t-mon", resp.Term.ID)
	assert.False(t, resp.IsCheckedIn)
	assert.False(t, resp.IsHoliday)
	assert.Equal(t, time.Date(2026, 4, 20, 0, 0, 0, 0, belgrade), f.store.from)
	assert.Equal(t, time.Date(2026, 4, 21, 0, 0, 0, 0, belgrade), f.store.to)

	resp, err = f.svc.CurrentTerm(context.Background(), "user-1", mondayMorning.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, resp.Exists)
	assert.Nil(t, resp.Term)
}

func TestAttendanceServiceCurrentTermReportsHoliday(t *testing.T) {
	f := newAttendanceFixture()
	f.holidays.byDate["2026-04-20"] = models.Holiday{Date: "2026-04-20", Type: models.HolidayNonWorkingDay}

	resp, err := f.svc.CurrentTerm(context.Background(), "user-1", mondayMorning)
	require.NoError(t, err)
	assert.True(t, resp.IsHoliday)
	require.NotNil(t, resp.HolidayType)
	assert.Equal(t, models.HolidayNonWorkingDay, *resp.HolidayType)
}

func TestAttendanceServiceCheckIn(t *testing.T) {
	f := newAttendanceFixture()

	record, err := f.svc.CheckIn(context.Background(), "user-1", " t-mon ", mondayMorning)
	require.NoError(t, err)
	assert.Equal(t, "t-mon", record.TermID)
	assert.Equal(t, mondayMorning.UTC(), record.CheckedInAt)
	assert.Equal(t, []string{"user-1"}, f.stats.users)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.checkIns.WithLabelValues("ok")))

	resp, err := f.svc.CurrentTerm(context.Background(), "user-1", mondayMorning.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, resp.IsCheckedIn)

	_, err = f.svc.CheckIn(context.Background(), "user-1", "t-mon", mondayMorning.Add(5*time.Minute))
	assert.True(t, errors.Is(err, appErrors.ErrAlreadyCheckedIn))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.checkIns.WithLabelValues(appErrors.ErrAlreadyCheckedIn.Code)))
}

func TestAttendanceServiceCheckInRejections(t *testing.T) {
	cases := []struct {
		name   string
		userID string
		termID string
		at     time.Time
		want   *appErrors.Error
	}{
		{name: "missing term id", userID: "user-1", termID: "  ", at: mondayMorning, want: appErrors.ErrValidation},
		{name: "unknown student", userID: "ghost", termID: "t-mon", at: mondayMorning, want: appErrors.ErrNotFound},
		{name: "unknown term", userID: "user-1", termID: "t-missing", at: mondayMorning, want: appErrors.ErrNotFound},
		{name: "other group", userID: "user-1", termID: "t-other", at: mondayMorning, want: appErrors.ErrForbidden},
		{name: "student without group", userID: "loner", termID: "t-mon", at: mondayMorning, want: appErrors.ErrForbidden},
		{name: "wrong weekday", userID: "user-1", termID: "t-tue", at: mondayMorning, want: appErrors.ErrNoActiveTerm},
		{name: "before start", userID: "user-1", termID: "t-mon", at: mondayMorning.Add(-20 * time.Minute), want: appErrors.ErrNoActiveTerm},
		{name: "at end", userID: "user-1", termID: "t-mon", at: mondayMorning.Add(90 * time.Minute), want: appErrors.ErrNoActiveTerm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAttendanceFixture()
			_, err := f.svc.CheckIn(context.Background(), tc.userID, tc.termID, tc.at)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), err.Error())
			assert.Empty(t, f.store.records)
			assert.Empty(t, f.stats.users)
		})
	}
}

func TestAttendanceServiceCheckInOnHoliday(t *testing.T) {
	f := newAttendanceFixture()
	f.holidays.byDate["2026-04-20"] = models.Holiday{Date: "2026-04-20", Type: models.HolidayNoActivities}

	_, err := f.svc.CheckIn(context.Background(), "user-1", "t-mon", mondayMorning)
	assert.True(t, errors.Is(err, appErrors.ErrHoliday))
}

func TestAttendanceServiceSchedule(t *testing.T) {
	f := newAttendanceFixture()

	terms, err := f.svc.Schedule(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, terms, 2)

	terms, err = f.svc.Schedule(context.Background(), "loner")
	require.NoError(t, err)
	assert.NotNil(t, terms)
	assert.Empty(t, terms)

	_, err = f.svc.Schedule(context.Background(), "ghost")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestClockMinutes(t *testing.T) {
	got, ok := clockMinutes("08:15")
	require.True(t, ok)
	assert.Equal(t, 495, got)

	got, ok = clockMinutes("18:00:00")
	require.True(t, ok)
	assert.Equal(t, 1080, got)

	for _, raw := range []string{"", "8", "ab:cd", "25:00", "10:61"} {
		_, ok := clockMinutes(raw)
		assert.False(t, ok, raw)
	}
}
