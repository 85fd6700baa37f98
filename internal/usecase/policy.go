package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campground-booking/internal/data/entity"
	"campground-booking/internal/data/repository"
	"campground-booking/internal/pricing"
	"campground-booking/pkg/apperror"
	"campground-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bookingPolicy holds the request checks shared by quoting and admission.
type bookingPolicy struct {
	cfg   utils.BookingConfig
	clock utils.Clock
}

// today is the current UTC calendar date; stay dates are UTC dates as well.
func (p bookingPolicy) today() time.Time {
	return entity.TruncateDate(p.clock.Now().UTC())
}

// parseStay parses the dates and applies the booking window.
func (p bookingPolicy) parseStay(checkIn, checkOut string) (entity.DateRange, error) {
	stay, err := entity.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return entity.DateRange{}, err
	}

	today := p.today()
	if stay.Start.Before(today) {
		return entity.DateRange{}, apperror.InvalidRange("check-in %s is in the past", checkIn)
	}
	if p.cfg.MaxAdvanceDays > 0 && stay.Start.After(today.AddDate(0, 0, p.cfg.MaxAdvanceDays)) {
		return entity.DateRange{}, apperror.InvalidRange("check-in %s is more than %d days ahead", checkIn, p.cfg.MaxAdvanceDays)
	}
	if p.cfg.MaxStayNights > 0 && stay.NightCount() > p.cfg.MaxStayNights {
		return entity.DateRange{}, apperror.InvalidRange("stay of %d nights exceeds the %d night limit", stay.NightCount(), p.cfg.MaxStayNights)
	}
	return stay, nil
}

func (p bookingPolicy) checkGuests(site *entity.Site, guests int) error {
	if guests < 1 {
		return apperror.Validation("guest count must be at least 1")
	}
	if site.MaxGuests > 0 && guests > site.MaxGuests {
		return apperror.Validation("site %s allows at most %d guests, got %d", site.Name, site.MaxGuests, guests)
	}
	return nil
}

func validationError(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	return nil
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.New(apperror.CodeValidation, fmt.Sprintf("invalid %s ID %q", kind, raw), err)
	}
	return id, nil
}

// quoter loads a site's rules and runs the calculator. It never writes anything.
type quoter struct {
	repo *repository.Repository
	calc *pricing.Calculator
}

func (q quoter) loadSite(ctx context.Context, raw string) (*entity.Site, error) {
	siteID, err := parseID("site", raw)
	if err != nil {
		return nil, err
	}
	site, err := q.repo.Site.FindByID(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("load site %s: %w", siteID, err)
	}
	if site == nil || site.IsDeleted() {
		return nil, apperror.NotFound("site %s not found", siteID)
	}
	return site, nil
}

func (q quoter) price(ctx context.Context, site *entity.Site, stay entity.DateRange, guests int, bookedOn time.Time) (*entity.PriceBreakdown, error) {
	rules, err := q.repo.PricingRule.FindBySite(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("load pricing rules: %w", err)
	}
	discounts, err := q.repo.PricingRule.FindDiscounts(ctx, site.CampgroundID, site.ID)
	if err != nil {
		return nil, fmt.Errorf("load discount rules: %w", err)
	}

	return q.calc.Compute(pricing.Request{
		Site:      site,
		Stay:      stay,
		Guests:    guests,
		Rules:     pricing.NewRuleSet(site, rules),
		Discounts: discounts,
		BookedOn:  bookedOn,
	})
}

// integrityReporter flags pricing failures for operator review: a distinct log entry
// plus a stored integrity event.
type integrityReporter struct {
	events repository.IntegrityEventRepository
	log    *zap.Logger
	clock  utils.Clock
}

func newIntegrityReporter(events repository.IntegrityEventRepository, log *zap.Logger, clock utils.Clock) integrityReporter {
	return integrityReporter{
		events: events,
		log:    utils.IntegrityLogger(log),
		clock:  clock,
	}
}

type integrityDetail struct {
	siteID        uuid.UUID
	reservationID *uuid.UUID
	expected      *int64
	actual        *int64
}

func (r integrityReporter) report(ctx context.Context, cause error, d integrityDetail) {
	kind := entity.IntegrityConfiguration
	if errors.Is(cause, apperror.ErrPriceMismatch) {
		kind = entity.IntegrityPriceMismatch
	}

	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("site_id", d.siteID.String()),
		zap.Error(cause),
	}
	if d.reservationID != nil {
		fields = append(fields, zap.String("reservation_id", d.reservationID.String()))
	}
	if d.expected != nil {
		fields = append(fields, zap.Int64("expected_amount", *d.expected))
	}
	if d.actual != nil {
		fields = append(fields, zap.Int64("actual_amount", *d.actual))
	}
	r.log.Error("Pricing integrity failure", fields...)

	now := r.clock.Now()
	siteID := d.siteID
	event := &entity.IntegrityEvent{
		BaseNoDelete:  entity.NewRecord(uuid.New(), now),
		Kind:          kind,
		SiteID:        &siteID,
		ReservationID: d.reservationID,
		Expected:      d.expected,
		Actual:        d.actual,
		Detail:        cause.Error(),
	}
	// The request is already rejected; a failed insert only loses the audit row.
	if err := r.events.Create(context.WithoutCancel(ctx), event); err != nil {
		r.log.Error("Failed to record integrity event", zap.Error(err), zap.String("kind", string(kind)))
	}
}
