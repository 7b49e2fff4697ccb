package service

import (
	"context"
	"time"

	"github.com/fon-raspored/raspored-api/internal/models"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
)

const (
	cabinetsCacheKey = "catalog:cabinets"
	subjectsCacheKey = "catalog:subjects"
	catalogCacheTTL  = time.Hour
)

type cabinetLister interface {
	List(ctx context.Context) ([]models.Cabinet, error)
}

type subjectLister interface {
	List(ctx context.Context) ([]models.Subject, error)
}

// CatalogService lists reference data shared by all users.
type CatalogService struct {
	cabinets cabinetLister
	subjects subjectLister
	cache    *CacheService
}

// NewCatalogService constructs a CatalogService. cache may be nil.
func NewCatalogService(cabinets cabinetLister, subjects subjectLister, cache *CacheService) *CatalogService {
	return &CatalogService{cabinets: cabinets, subjects: subjects, cache: cache}
}

// Cabinets returns all rooms.
func (s *CatalogService) Cabinets(ctx context.Context) ([]models.Cabinet, bool, error) {
	var cached []models.Cabinet
	if s.cache.Get(ctx, cabinetsCacheKey, &cached) {
		return cached, true, nil
	}
	cabinets, err := s.cabinets.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cabinets")
	}
	if cabinets == nil {
		cabinets = []models.Cabinet{}
	}
	s.cache.Set(ctx, cabinetsCacheKey, cabinets, catalogCacheTTL)
	return cabinets, false, nil
}

// Subjects returns all subjects.
func (s *CatalogService) Subjects(ctx context.Context) ([]models.Subject, bool, error) {
	var cached []models.Subject
	if s.cache.Get(ctx, subjectsCacheKey, &cached) {
		return cached, true, nil
	}
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	s.cache.Set(ctx, subjectsCacheKey, subjects, catalogCacheTTL)
	return subjects, false, nil
}
