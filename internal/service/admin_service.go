package service

import (
	"context"

	"github.com/fon-raspored/raspored-api/internal/models"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
)

type statsCounter interface {
	Counts(ctx context.Context) (*models.AdminStats, error)
}

type groupLister interface {
	ListWithCounts(ctx context.Context) ([]models.GroupWithCount, error)
}

// AdminService serves the admin dashboard.
type AdminService struct {
	stats  statsCounter
	groups groupLister
}

// NewAdminService constructs an AdminService.
func NewAdminService(stats statsCounter, groups groupLister) *AdminService {
	return &AdminService{stats: stats, groups: groups}
}

// Stats returns the counts of terms, students and groups.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	stats, err := s.stats.Counts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load statistics")
	}
	return stats, nil
}

// Groups returns groups ordered by name with their student counts.
func (s *AdminService) Groups(ctx context.Context) ([]models.GroupWithCount, error) {
	groups, err := s.groups.ListWithCounts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load groups")
	}
	if groups == nil {
		groups = []models.GroupWithCount{}
	}
	return groups, nil
}
