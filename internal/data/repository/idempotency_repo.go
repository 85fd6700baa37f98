package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyKeyPrefix = "campground:admission:"

// IdempotencyRepository maps an admission Idempotency-Key to the reservation it produced.
// Entries expire after the configured TTL; the reservations table keeps the key as well.
type IdempotencyRepository interface {
	Lookup(ctx context.Context, key string) (uuid.UUID, bool, error)
	Remember(ctx context.Context, key string, reservationID uuid.UUID) error
}

type idempotencyRepository struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewIdempotencyRepository returns a Redis-backed store, or a no-op store when rdb is nil.
func NewIdempotencyRepository(rdb *redis.Client, ttl time.Duration, log *zap.Logger) IdempotencyRepository {
	if rdb == nil {
		return noopIdempotency{}
	}
	return &idempotencyRepository{
		rdb: rdb,
		ttl: ttl,
		log: log.With(zap.String("repository", "idempotency")),
	}
}

func (r *idempotencyRepository) Lookup(ctx context.Context, key string) (uuid.UUID, bool, error) {
	val, err := r.rdb.Get(ctx, idempotencyKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		r.log.Error("Failed to look up idempotency key",
			zap.Error(err),
			zap.String("idempotency_key", key),
		)
		return uuid.Nil, false, fmt.Errorf("lookup idempotency key: %w", err)
	}

	id, err := uuid.Parse(val)
	if err != nil {
		r.log.Warn("Discarding malformed idempotency entry",
			zap.String("idempotency_key", key),
			zap.String("value", val),
		)
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

// Remember stores the mapping only if the key is still unused.
func (r *idempotencyRepository) Remember(ctx context.Context, key string, reservationID uuid.UUID) error {
	err := r.rdb.SetNX(ctx, idempotencyKeyPrefix+key, reservationID.String(), r.ttl).Err()
	if err != nil {
		r.log.Error("Failed to remember idempotency key",
			zap.Error(err),
			zap.String("idempotency_key", key),
			zap.String("reservation_id", reservationID.String()),
		)
		return fmt.Errorf("remember idempotency key: %w", err)
	}
	return nil
}

type noopIdempotency struct{}

func (noopIdempotency) Lookup(context.Context, string) (uuid.UUID, bool, error) {
	return uuid.Nil, false, nil
}

func (noopIdempotency) Remember(context.Context, string, uuid.UUID) error {
	return nil
}
