package main

import (
	"log"

	"campground-booking/cmd"
	"campground-booking/internal/data/repository"
	"campground-booking/internal/jobs"
	"campground-booking/internal/wire"
	"campground-booking/pkg/cache"
	"campground-booking/pkg/database"
	"campground-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Int64("price_tolerance", config.Booking.PriceTolerance),
		zap.Duration("payment_timeout", config.Booking.PaymentTimeout),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	rdb, err := cache.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency keys are checked against the database only")
	}

	repos := repository.NewRepository(db, rdb, config.Booking.IdempotencyTTL, logger)

	app := wire.Wiring(repos, config, utils.SystemClock(), logger)

	scheduler := jobs.NewScheduler(logger)
	if err := scheduler.AddExpiry(config.Booking.ExpirySchedule, app.Service.Admission); err != nil {
		logger.Fatal("Failed to schedule reservation expiry", zap.Error(err))
	}

	if err := cmd.APIServer(app.Router, config.App.Port, scheduler, logger); err != nil {
		logger.Error("Server exited", zap.Error(err))
	}
}
