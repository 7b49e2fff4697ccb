package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fon-raspored/raspored-api/internal/models"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
)

type stubStatsCounter struct {
	stats *models.AdminStats
	err   error
}

func (s stubStatsCounter) Counts(context.Context) (*models.AdminStats, error) {
	return s.stats, s.err
}

type stubGroupLister struct {
	groups []models.GroupWithCount
	err    error
}

func (s stubGroupLister) ListWithCounts(context.Context) ([]models.GroupWithCount, error) {
	return s.groups, s.err
}

type countingCabinets struct {
	cabinets []models.Cabinet
	calls    int
}

func (c *countingCabinets) List(context.Context) ([]models.Cabinet, error) {
	c.calls++
	return c.cabinets, nil
}

type failingSubjects struct{}

func (failingSubjects) List(context.Context) ([]models.Subject, error) {
	return nil, errors.New("relation \"subjects\" does not exist")
}

func TestAdminServiceStats(t *testing.T) {
	svc := NewAdminService(stubStatsCounter{stats: &models.AdminStats{TermsCount: 42, StudentsCount: 120, GroupsCount: 6}}, stubGroupLister{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, stats.TermsCount)

	groups, err := svc.Groups(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestAdminServiceWrapsRepositoryErrors(t *testing.T) {
	svc := NewAdminService(stubStatsCounter{err: errors.New("boom")}, stubGroupLister{err: errors.New("boom")})

	_, err := svc.Stats(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
	_, err = svc.Groups(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}

func TestCatalogServiceCachesCabinets(t *testing.T) {
	cabinets := &countingCabinets{cabinets: []models.Cabinet{{ID: "c-1", Number: "A1", Capacity: 30, Type: models.CabinetLaboratory}}}
	repo := newMemoryCache()
	svc := NewCatalogService(cabinets, failingSubjects{}, NewCacheService(repo, nil, time.Minute, nil, true))

	list, hit, err := svc.Cabinets(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, list, 1)

	list, hit, err = svc.Cabinets(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "A1", list[0].Number)
	assert.Equal(t, 1, cabinets.calls)
	assert.Contains(t, repo.items, cabinetsCacheKey)
}

func TestCatalogServiceWithoutCache(t *testing.T) {
	cabinets := &countingCabinets{}
	svc := NewCatalogService(cabinets, failingSubjects{}, nil)

	list, hit, err := svc.Cabinets(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotNil(t, list)

	_, _, err = svc.Subjects(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}
