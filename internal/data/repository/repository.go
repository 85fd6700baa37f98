package repository

import (
	"time"

	"campground-booking/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	Campground     CampgroundRepository
	Site           SiteRepository
	PricingRule    PricingRuleRepository
	Reservation    ReservationRepository
	IntegrityEvent IntegrityEventRepository
	Idempotency    IdempotencyRepository
}

func NewRepository(db database.PgxIface, rdb *redis.Client, idempotencyTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		Campground:     NewCampgroundRepository(db, log),
		Site:           NewSiteRepository(db, log),
		PricingRule:    NewPricingRuleRepository(db, log),
		Reservation:    NewReservationRepository(db, log),
		IntegrityEvent: NewIntegrityEventRepository(db, log),
		Idempotency:    NewIdempotencyRepository(rdb, idempotencyTTL, log),
	}
}
