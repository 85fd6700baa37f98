package usecase

import (
	"context"
	"errors"
	"fmt"

	"campground-booking/internal/availability"
	"campground-booking/internal/data/entity"
	"campground-booking/internal/data/repository"
	"campground-booking/internal/dto/request"
	"campground-booking/internal/dto/response"
	"campground-booking/internal/pricing"
	"campground-booking/pkg/apperror"
	"campground-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const paymentTimeoutReason = "payment timeout"

// AdmissionService decides whether a booking request becomes a reservation.
//
//	REQUESTED -> REJECTED_INVALID_RANGE
//	REQUESTED -> REJECTED_CONFLICT
//	REQUESTED -> PRICED -> REJECTED_PRICE_MISMATCH
//	REQUESTED -> PRICED -> ADMITTED (reservation PENDING)
//	REQUESTED -> REJECTED_INVALID_STATE (idempotency key of a cancelled reservation)
//
// A pending reservation becomes CONFIRMED on payment, or CANCELLED on cancellation or
// payment timeout. Cancelled dates are free again immediately.
type AdmissionService interface {
	Admit(ctx context.Context, req *request.CreateReservationRequest) (*response.AdmissionResponse, error)
	ConfirmPayment(ctx context.Context, reservationID string, req *request.ConfirmPaymentRequest) (*response.ReservationResponse, error)
	Cancel(ctx context.Context, reservationID string, req *request.CancelReservationRequest) (*response.ReservationResponse, error)
	GetReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error)

	// ExpireStale cancels pending reservations whose payment window has passed.
	ExpireStale(ctx context.Context) (int, error)
}

type admissionService struct {
	repo      *repository.Repository
	index     availability.Index
	quoter    quoter
	policy    bookingPolicy
	integrity integrityReporter
	tolerance int64
	cfg       utils.BookingConfig
	clock     utils.Clock
	log       *zap.Logger
}

func NewAdmissionService(repo *repository.Repository, index availability.Index, cfg utils.BookingConfig, clock utils.Clock, log *zap.Logger) AdmissionService {
	return &admissionService{
		repo:      repo,
		index:     index,
		quoter:    quoter{repo: repo, calc: pricing.NewCalculator()},
		policy:    bookingPolicy{cfg: cfg, clock: clock},
		integrity: newIntegrityReporter(repo.IntegrityEvent, log, clock),
		tolerance: cfg.PriceTolerance,
		cfg:       cfg,
		clock:     clock,
		log:       log.With(zap.String("service", "admission")),
	}
}

func (s *admissionService) Admit(ctx context.Context, req *request.CreateReservationRequest) (*response.AdmissionResponse, error) {
	if err := validationError(req); err != nil {
		s.log.Warn("Admission validation failed", zap.Error(err))
		return nil, err
	}

	stay, err := s.policy.parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		s.reject(entity.OutcomeRejectedInvalidRange, req, err)
		return nil, err
	}

	site, err := s.quoter.loadSite(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.checkGuests(site, req.Guests); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		existing, err := s.findByKey(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.replay(existing, site, stay, req)
		}
	}

	conflict, err := s.index.CheckConflict(ctx, site.ID, stay)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if conflict {
		err := apperror.Conflict("site %s is not available for %s, choose different dates", site.Name, stay)
		s.reject(entity.OutcomeRejectedConflict, req, err)
		return nil, err
	}

	now := s.clock.Now()
	breakdown, err := s.quoter.price(ctx, site, stay, req.Guests, now)
	if err != nil {
		if errors.Is(err, apperror.ErrConfiguration) {
			s.integrity.report(ctx, err, integrityDetail{siteID: site.ID})
		}
		return nil, err
	}

	if req.ExpectedAmount != nil && !s.withinTolerance(*req.ExpectedAmount, breakdown.TotalAmount) {
		err := apperror.PriceMismatch("expected amount %d differs from authoritative total %d by more than %d",
			*req.ExpectedAmount, breakdown.TotalAmount, s.tolerance)
		expected, actual := breakdown.TotalAmount, *req.ExpectedAmount
		s.integrity.report(ctx, err, integrityDetail{siteID: site.ID, expected: &expected, actual: &actual})
		s.reject(entity.OutcomeRejectedPriceMismatch, req, err)
		return nil, err
	}

	id := uuid.New()
	reservation := &entity.Reservation{
		BaseNoDelete: entity.NewRecord(id, now),
		Code:         utils.GenerateReservationCode(now, id),
		SiteID:       site.ID,
		CampgroundID: site.CampgroundID,
		Stay:         stay,
		GuestCount:   req.Guests,
		Status:       entity.ReservationStatusPending,
		TotalAmount:  breakdown.TotalAmount,
		Breakdown:    breakdown,
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		reservation.IdempotencyKey = &key
	}

	if err := s.index.Insert(ctx, reservation); err != nil {
		if apperror.CodeOf(err) == apperror.CodeConflict && req.IdempotencyKey != "" {
			// A concurrent request with the same key may have won the insert.
			existing, lookupErr := s.findByKey(ctx, req.IdempotencyKey)
			if lookupErr == nil && existing != nil {
				return s.replay(existing, site, stay, req)
			}
		}
		if apperror.CodeOf(err) == apperror.CodeConflict {
			s.reject(entity.OutcomeRejectedConflict, req, err)
			return nil, err
		}
		s.log.Error("Failed to record reservation",
			zap.Error(err),
			zap.String("site_id", site.ID.String()),
			zap.String("stay", stay.String()),
		)
		return nil, fmt.Errorf("record reservation: %w", err)
	}

	if req.IdempotencyKey != "" {
		if err := s.repo.Idempotency.Remember(ctx, req.IdempotencyKey, reservation.ID); err != nil {
			s.log.Warn("Failed to cache idempotency key", zap.Error(err), zap.String("reservation_id", reservation.ID.String()))
		}
	}

	s.log.Info("Reservation admitted",
		zap.String("outcome", string(entity.OutcomeAdmitted)),
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.String("site_id", site.ID.String()),
		zap.String("stay", stay.String()),
		zap.Int("guests", req.Guests),
		zap.Int64("total_amount", reservation.TotalAmount),
	)

	return &response.AdmissionResponse{
		Outcome:     entity.OutcomeAdmitted,
		Reservation: response.ReservationToResponse(reservation),
	}, nil
}

func (s *admissionService) withinTolerance(expected, actual int64) bool {
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	return diff <= s.tolerance
}

func (s *admissionService) reject(outcome entity.AdmissionOutcome, req *request.CreateReservationRequest, err error) {
	s.log.Info("Reservation rejected",
		zap.String("outcome", string(outcome)),
		zap.String("site_id", req.SiteID),
		zap.String("check_in", req.CheckIn),
		zap.String("check_out", req.CheckOut),
		zap.Error(err),
	)
}

// findByKey checks the idempotency cache first and falls back to the reservations store.
func (s *admissionService) findByKey(ctx context.Context, key string) (*entity.Reservation, error) {
	id, ok, err := s.repo.Idempotency.Lookup(ctx, key)
	if err != nil {
		s.log.Warn("Idempotency cache unavailable, using store", zap.Error(err))
	}
	if err == nil && ok {
		res, err := s.index.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load reservation %s: %w", id, err)
		}
		if res != nil {
			return res, nil
		}
	}

	res, err := s.index.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("find reservation by idempotency key: %w", err)
	}
	return res, nil
}

// replay answers a repeated request with the reservation its key already produced.
func (s *admissionService) replay(existing *entity.Reservation, site *entity.Site, stay entity.DateRange, req *request.CreateReservationRequest) (*response.AdmissionResponse, error) {
	if existing.SiteID != site.ID || !existing.Stay.Start.Equal(stay.Start) || !existing.Stay.End.Equal(stay.End) || existing.GuestCount != req.Guests {
		return nil, apperror.Validation("idempotency key %q was already used for a different request", req.IdempotencyKey)
	}
	if !existing.Status.Occupies() {
		err := apperror.InvalidState("reservation %s for idempotency key %q was %s, submit a new request",
			existing.Code, req.IdempotencyKey, existing.Status)
		s.reject(entity.OutcomeRejectedInvalidState, req, err)
		return nil, err
	}

	s.log.Info("Admission replayed",
		zap.String("reservation_id", existing.ID.String()),
		zap.String("status", string(existing.Status)),
	)
	return &response.AdmissionResponse{
		Outcome:     entity.OutcomeAdmitted,
		Replayed:    true,
		Reservation: response.ReservationToResponse(existing),
	}, nil
}

func (s *admissionService) ConfirmPayment(ctx context.Context, rawID string, req *request.ConfirmPaymentRequest) (*response.ReservationResponse, error) {
	if err := validationError(req); err != nil {
		return nil, err
	}
	id, err := parseID("reservation", rawID)
	if err != nil {
		return nil, err
	}

	existing, err := s.index.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load reservation %s: %w", id, err)
	}
	if existing == nil {
		return nil, apperror.NotFound("reservation %s not found", id)
	}
	if existing.Status != entity.ReservationStatusPending {
		return nil, apperror.InvalidState("reservation %s is %s, only pending reservations accept payment", id, existing.Status)
	}

	if *req.PaidAmount != existing.TotalAmount {
		err := apperror.PriceMismatch("paid amount %d does not match reservation total %d", *req.PaidAmount, existing.TotalAmount)
		expected, actual := existing.TotalAmount, *req.PaidAmount
		s.integrity.report(ctx, err, integrityDetail{
			siteID:        existing.SiteID,
			reservationID: &existing.ID,
			expected:      &expected,
			actual:        &actual,
		})
		return nil, err
	}

	confirmed, err := s.index.Confirm(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation confirmed",
		zap.String("reservation_id", id.String()),
		zap.Int64("total_amount", confirmed.TotalAmount),
	)

	resp := response.ReservationToResponse(confirmed)
	return &resp, nil
}

func (s *admissionService) Cancel(ctx context.Context, rawID string, req *request.CancelReservationRequest) (*response.ReservationResponse, error) {
	if err := validationError(req); err != nil {
		return nil, err
	}
	id, err := parseID("reservation", rawID)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.index.Cancel(ctx, id, req.Reason)
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", id.String()),
		zap.String("site_id", cancelled.SiteID.String()),
		zap.String("stay", cancelled.Stay.String()),
		zap.String("reason", req.Reason),
	)

	resp := response.ReservationToResponse(cancelled)
	return &resp, nil
}

func (s *admissionService) GetReservation(ctx context.Context, rawID string) (*response.ReservationResponse, error) {
	id, err := parseID("reservation", rawID)
	if err != nil {
		return nil, err
	}

	res, err := s.index.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load reservation %s: %w", id, err)
	}
	if res == nil {
		return nil, apperror.NotFound("reservation %s not found", id)
	}

	resp := response.ReservationToResponse(res)
	return &resp, nil
}

func (s *admissionService) ExpireStale(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().Add(-s.cfg.PaymentTimeout)

	expired, err := s.index.ExpirePending(ctx, cutoff, paymentTimeoutReason)
	if err != nil {
		s.log.Error("Failed to expire pending reservations", zap.Error(err), zap.Time("cutoff", cutoff))
		return 0, fmt.Errorf("expire pending reservations: %w", err)
	}

	for _, r := range expired {
		s.log.Info("Reservation expired",
			zap.String("reservation_id", r.ID.String()),
			zap.String("site_id", r.SiteID.String()),
			zap.String("stay", r.Stay.String()),
			zap.Time("created_at", r.CreatedAt),
		)
	}
	return len(expired), nil
}
