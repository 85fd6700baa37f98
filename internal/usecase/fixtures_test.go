package usecase

import (
	"sync"
	"testing"
	"time"

	"campground-booking/internal/availability"
	"campground-booking/internal/data/entity"
	"campground-booking/internal/data/repository"
	"campground-booking/internal/data/repository/mocks"
	"campground-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	site       *entity.Site
	rules      []*entity.PricingRule
	discounts  []*entity.DiscountRule
	campground *entity.Campground

	sites       *mocks.MockSiteRepository
	campgrounds *mocks.MockCampgroundRepository
	pricing     *mocks.MockPricingRuleRepository
	events      *mocks.MockIntegrityEventRepository
	idempotency *mocks.MockIdempotencyRepository

	repo  *repository.Repository
	index *availability.MemoryIndex
	clock *testClock
	cfg   utils.BookingConfig
	log   *zap.Logger
	logs  *observer.ObservedLogs
}

// newFixture prices a site at 50,000 on weekdays and 70,000 on Friday/Saturday nights,
// 4 included guests, 10,000 per extra guest per night, and a 10% discount from 7 nights.
// The clock starts on 2025-11-01.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	campground := &entity.Campground{Base: entity.Base{ID: uuid.New()}, Name: "Pine Lake"}
	site := &entity.Site{
		Base:          entity.Base{ID: uuid.New()},
		CampgroundID:  campground.ID,
		Name:          "A-1",
		BaseRate:      50000,
		Capacity:      4,
		MaxGuests:     8,
		ExtraGuestFee: 10000,
	}

	f := &fixture{
		site:       site,
		campground: campground,
		rules: []*entity.PricingRule{
			{SiteID: site.ID, DayType: entity.DayTypeWeekend, NightlyRate: 70000},
		},
		discounts: []*entity.DiscountRule{
			{CampgroundID: campground.ID, Description: "Long stay 10%", Percentage: 10, Kind: entity.DiscountMinNights, Threshold: 7, Position: 1},
		},
		sites:       new(mocks.MockSiteRepository),
		campgrounds: new(mocks.MockCampgroundRepository),
		pricing:     new(mocks.MockPricingRuleRepository),
		events:      new(mocks.MockIntegrityEventRepository),
		idempotency: new(mocks.MockIdempotencyRepository),
		clock:       &testClock{now: time.Date(2025, time.November, 1, 8, 0, 0, 0, time.UTC)},
		cfg: utils.BookingConfig{
			PriceTolerance: 100,
			PaymentTimeout: 30 * time.Minute,
			MaxAdvanceDays: 365,
			MaxStayNights:  30,
		},
	}

	f.index = availability.NewMemoryIndex(f.clock)

	core, logs := observer.New(zapcore.DebugLevel)
	f.log = zap.New(core)
	f.logs = logs

	f.repo = &repository.Repository{
		Campground:     f.campgrounds,
		Site:           f.sites,
		PricingRule:    f.pricing,
		Reservation:    nil,
		IntegrityEvent: f.events,
		Idempotency:    f.idempotency,
	}

	f.sites.On("FindByID", mock.Anything, site.ID).Return(site, nil).Maybe()
	f.sites.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.campgrounds.On("FindByID", mock.Anything, campground.ID).Return(campground, nil).Maybe()
	f.campgrounds.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	f.pricing.On("FindBySite", mock.Anything, site.ID).Return(f.rules, nil).Maybe()
	f.pricing.On("FindDiscounts", mock.Anything, campground.ID, site.ID).Return(f.discounts, nil).Maybe()
	f.events.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.idempotency.On("Lookup", mock.Anything, mock.Anything).Return(uuid.Nil, false, nil).Maybe()
	f.idempotency.On("Remember", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return f
}

func (f *fixture) admission() AdmissionService {
	return NewAdmissionService(f.repo, f.index, f.cfg, f.clock, f.log)
}

func (f *fixture) pricingService() PricingService {
	return NewPricingService(f.repo, f.cfg, f.clock, f.log)
}

func int64Ptr(v int64) *int64 {
	return &v
}
