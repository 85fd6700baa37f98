package mocks

import (
	"context"

	"campground-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCampgroundRepository is a mock implementation of repository.CampgroundRepository
type MockCampgroundRepository struct {
	mock.Mock
}

func (m *MockCampgroundRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Campground, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campground), args.Error(1)
}

// MockSiteRepository is a mock implementation of repository.SiteRepository
type MockSiteRepository struct {
	mock.Mock
}

func (m *MockSiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Site), args.Error(1)
}

func (m *MockSiteRepository) FindByCampground(ctx context.Context, campgroundID uuid.UUID) ([]*entity.Site, error) {
	args := m.Called(ctx, campgroundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Site), args.Error(1)
}

// MockPricingRuleRepository is a mock implementation of repository.PricingRuleRepository
type MockPricingRuleRepository struct {
	mock.Mock
}

func (m *MockPricingRuleRepository) FindBySite(ctx context.Context, siteID uuid.UUID) ([]*entity.PricingRule, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PricingRule), args.Error(1)
}

func (m *MockPricingRuleRepository) FindDiscounts(ctx context.Context, campgroundID, siteID uuid.UUID) ([]*entity.DiscountRule, error) {
	args := m.Called(ctx, campgroundID, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.DiscountRule), args.Error(1)
}

// MockIntegrityEventRepository is a mock implementation of repository.IntegrityEventRepository
type MockIntegrityEventRepository struct {
	mock.Mock
}

func (m *MockIntegrityEventRepository) Create(ctx context.Context, event *entity.IntegrityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockIdempotencyRepository is a mock implementation of repository.IdempotencyRepository
type MockIdempotencyRepository struct {
	mock.Mock
}

func (m *MockIdempotencyRepository) Lookup(ctx context.Context, key string) (uuid.UUID, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyRepository) Remember(ctx context.Context, key string, reservationID uuid.UUID) error {
	args := m.Called(ctx, key, reservationID)
	return args.Error(0)
}
