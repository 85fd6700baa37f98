package usecase

import (
	"context"
	"fmt"

	"campground-booking/internal/availability"
	"campground-booking/internal/data/repository"
	"campground-booking/internal/dto/response"
	"campground-booking/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	SiteReservedDates(ctx context.Context, siteID string) (*response.ReservedDatesResponse, error)
	CampgroundReservedDates(ctx context.Context, campgroundID string) (*response.ReservedDatesResponse, error)
}

type availabilityService struct {
	repo  *repository.Repository
	index availability.Index
	log   *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, index availability.Index, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:  repo,
		index: index,
		log:   log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) SiteReservedDates(ctx context.Context, rawID string) (*response.ReservedDatesResponse, error) {
	siteID, err := parseID("site", rawID)
	if err != nil {
		return nil, err
	}

	site, err := s.repo.Site.FindByID(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("load site %s: %w", siteID, err)
	}
	if site == nil {
		return nil, apperror.NotFound("site %s not found", siteID)
	}

	return s.reserved(ctx, []uuid.UUID{site.ID})
}

func (s *availabilityService) CampgroundReservedDates(ctx context.Context, rawID string) (*response.ReservedDatesResponse, error) {
	campgroundID, err := parseID("campground", rawID)
	if err != nil {
		return nil, err
	}

	campground, err := s.repo.Campground.FindByID(ctx, campgroundID)
	if err != nil {
		return nil, fmt.Errorf("load campground %s: %w", campgroundID, err)
	}
	if campground == nil {
		return nil, apperror.NotFound("campground %s not found", campgroundID)
	}

	sites, err := s.repo.Site.FindByCampground(ctx, campgroundID)
	if err != nil {
		return nil, fmt.Errorf("load sites of campground %s: %w", campgroundID, err)
	}
	ids := make([]uuid.UUID, 0, len(sites))
	for _, site := range sites {
		ids = append(ids, site.ID)
	}

	return s.reserved(ctx, ids)
}

func (s *availabilityService) reserved(ctx context.Context, siteIDs []uuid.UUID) (*response.ReservedDatesResponse, error) {
	ranges, err := s.index.ReservedRanges(ctx, siteIDs)
	if err != nil {
		s.log.Error("Failed to read reserved dates", zap.Error(err), zap.Int("site_count", len(siteIDs)))
		return nil, fmt.Errorf("read reserved dates: %w", err)
	}

	resp := response.ReservedDatesToResponse(ranges)
	return &resp, nil
}
