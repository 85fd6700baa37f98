package mocks

import (
	"context"

	"campground-booking/internal/dto/request"
	"campground-booking/internal/dto/response"

	"github.com/stretchr/testify/mock"
)

// MockPricingService is a mock implementation of usecase.PricingService
type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.QuoteResponse), args.Error(1)
}

// MockAvailabilityService is a mock implementation of usecase.AvailabilityService
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) SiteReservedDates(ctx context.Context, siteID string) (*response.ReservedDatesResponse, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ReservedDatesResponse), args.Error(1)
}

func (m *MockAvailabilityService) CampgroundReservedDates(ctx context.Context, campgroundID string) (*response.ReservedDatesResponse, error) {
	args := m.Called(ctx, campgroundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ReservedDatesResponse), args.Error(1)
}

// MockAdmissionService is a mock implementation of usecase.AdmissionService
type MockAdmissionService struct {
	mock.Mock
}

func (m *MockAdmissionService) Admit(ctx context.Context, req *request.CreateReservationRequest) (*response.AdmissionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.AdmissionResponse), args.Error(1)
}

func (m *MockAdmissionService) ConfirmPayment(ctx context.Context, reservationID string, req *request.ConfirmPaymentRequest) (*response.ReservationResponse, error) {
	args := m.Called(ctx, reservationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ReservationResponse), args.Error(1)
}

func (m *MockAdmissionService) Cancel(ctx context.Context, reservationID string, req *request.CancelReservationRequest) (*response.ReservationResponse, error) {
	args := m.Called(ctx, reservationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ReservationResponse), args.Error(1)
}

func (m *MockAdmissionService) GetReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.ReservationResponse), args.Error(1)
}

func (m *MockAdmissionService) ExpireStale(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
