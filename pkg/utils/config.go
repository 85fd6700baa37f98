package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// RedisConfig with an empty Addr disables the idempotency cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BookingConfig holds admission policy. PriceTolerance is in currency units.
type BookingConfig struct {
	PriceTolerance int64
	PaymentTimeout time.Duration
	MaxAdvanceDays int
	MaxStayNights  int
	ExpirySchedule string
	IdempotencyTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("APP_NAME", "campground-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PRICE_TOLERANCE", 100)
	viper.SetDefault("PAYMENT_TIMEOUT", "30m")
	viper.SetDefault("MAX_ADVANCE_DAYS", 365)
	viper.SetDefault("MAX_STAY_NIGHTS", 30)
	viper.SetDefault("EXPIRY_SCHEDULE", "@every 1m")
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")

	viper.AutomaticEnv()

	// .env is optional; plain environment variables are enough in containers.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Booking: BookingConfig{
			PriceTolerance: viper.GetInt64("PRICE_TOLERANCE"),
			PaymentTimeout: viper.GetDuration("PAYMENT_TIMEOUT"),
			MaxAdvanceDays: viper.GetInt("MAX_ADVANCE_DAYS"),
			MaxStayNights:  viper.GetInt("MAX_STAY_NIGHTS"),
			ExpirySchedule: viper.GetString("EXPIRY_SCHEDULE"),
			IdempotencyTTL: viper.GetDuration("IDEMPOTENCY_TTL"),
		},
	}

	return config, nil
}
