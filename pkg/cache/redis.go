package cache

import (
	"context"
	"fmt"
	"time"

	"campground-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis. It returns a nil client when no address is configured.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	if config.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return rdb, nil
}
