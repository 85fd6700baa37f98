package usecase

import (
	"context"
	"errors"

	"campground-booking/internal/data/entity"
	"campground-booking/internal/data/repository"
	"campground-booking/internal/dto/request"
	"campground-booking/internal/dto/response"
	"campground-booking/internal/pricing"
	"campground-booking/pkg/apperror"
	"campground-booking/pkg/utils"

	"go.uber.org/zap"
)

type PricingService interface {
	// Quote prices a stay without creating or touching any reservation.
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)
}

type pricingService struct {
	quoter    quoter
	policy    bookingPolicy
	integrity integrityReporter
	clock     utils.Clock
	log       *zap.Logger
}

func NewPricingService(repo *repository.Repository, cfg utils.BookingConfig, clock utils.Clock, log *zap.Logger) PricingService {
	return &pricingService{
		quoter:    quoter{repo: repo, calc: pricing.NewCalculator()},
		policy:    bookingPolicy{cfg: cfg, clock: clock},
		integrity: newIntegrityReporter(repo.IntegrityEvent, log, clock),
		clock:     clock,
		log:       log.With(zap.String("service", "pricing")),
	}
}

func (s *pricingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if err := validationError(req); err != nil {
		s.log.Warn("Quote validation failed", zap.Error(err))
		return nil, err
	}

	stay, err := s.policy.parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	site, err := s.quoter.loadSite(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.checkGuests(site, req.Guests); err != nil {
		return nil, err
	}

	breakdown, err := s.quoter.price(ctx, site, stay, req.Guests, s.clock.Now())
	if err != nil {
		if errors.Is(err, apperror.ErrConfiguration) {
			s.integrity.report(ctx, err, integrityDetail{siteID: site.ID})
		}
		return nil, err
	}

	s.log.Debug("Quote computed",
		zap.String("site_id", site.ID.String()),
		zap.String("stay", stay.String()),
		zap.Int("guests", req.Guests),
		zap.Int64("total_amount", breakdown.TotalAmount),
	)

	return &response.QuoteResponse{
		SiteID:    site.ID.String(),
		CheckIn:   stay.Start.Format(entity.DateLayout),
		CheckOut:  stay.End.Format(entity.DateLayout),
		Nights:    stay.NightCount(),
		Guests:    req.Guests,
		Breakdown: response.PriceBreakdownToResponse(breakdown),
	}, nil
}
