package jobs

import (
	"context"
	"errors"
	"testing"

	"campground-booking/internal/usecase/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAddExpiry_RejectsBadSpec(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	err := s.AddExpiry("every minute please", new(mocks.MockAdmissionService))

	require.Error(t, err)
}

func TestRunExpiry(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := NewScheduler(zap.New(core))

	ok := new(mocks.MockAdmissionService)
	ok.On("ExpireStale", mock.Anything).Return(3, nil).Once()
	s.runExpiry(ok)
	ok.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("Expired unpaid reservations").Len())

	failing := new(mocks.MockAdmissionService)
	failing.On("ExpireStale", mock.Anything).Return(0, errors.New("db down")).Once()
	s.runExpiry(failing)
	failing.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("Reservation expiry failed").Len())
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	require.NoError(t, s.AddExpiry("@every 1h", new(mocks.MockAdmissionService)))

	s.Start()
	s.Stop(context.Background())
}
