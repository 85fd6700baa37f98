// Package jobs runs scheduled maintenance against the reservation store.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Expirer cancels reservations whose payment window has passed.
type Expirer interface {
	ExpireStale(ctx context.Context) (int, error)
}

// Scheduler wraps a cron runner. Overlapping runs are skipped, not queued.
type Scheduler struct {
	cron    *cron.Cron
	log     *zap.Logger
	timeout time.Duration
}

func NewScheduler(log *zap.Logger) *Scheduler {
	log = log.With(zap.String("component", "scheduler"))
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{log}),
			cron.SkipIfStillRunning(cronLogger{log}),
		)),
		log:     log,
		timeout: 30 * time.Second,
	}
}

// AddExpiry registers the payment-timeout job on spec, e.g. "@every 1m".
func (s *Scheduler) AddExpiry(spec string, expirer Expirer) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.runExpiry(expirer)
	})
	if err != nil {
		return fmt.Errorf("schedule reservation expiry %q: %w", spec, err)
	}
	s.log.Info("Reservation expiry scheduled", zap.String("spec", spec))
	return nil
}

func (s *Scheduler) runExpiry(expirer Expirer) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := expirer.ExpireStale(ctx)
	if err != nil {
		s.log.Error("Reservation expiry failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("Expired unpaid reservations", zap.Int("count", n))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out")
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, zap.Any("details", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, zap.Error(err), zap.Any("details", keysAndValues))
}
