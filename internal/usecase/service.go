package usecase

import (
	"campground-booking/internal/availability"
	"campground-booking/internal/data/repository"
	"campground-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Pricing      PricingService
	Availability AvailabilityService
	Admission    AdmissionService
}

// NewService builds the services on top of index, the authoritative availability record.
func NewService(repo *repository.Repository, index availability.Index, config *utils.Config, clock utils.Clock, log *zap.Logger) *Service {
	return &Service{
		Pricing:      NewPricingService(repo, config.Booking, clock, log),
		Availability: NewAvailabilityService(repo, index, log),
		Admission:    NewAdmissionService(repo, index, config.Booking, clock, log),
	}
}
