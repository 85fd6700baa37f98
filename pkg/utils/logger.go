package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "campground-booking.log"

// InitLogger logs to stdout and to a rotating file under cfg.LogPath. Debug mode switches
// to the console encoder and Debug level.
func InitLogger(cfg AppConfig) (*zap.Logger, error) {
	if cfg.LogPath != "" {
		if err := os.MkdirAll(cfg.LogPath, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Debug {
		level.SetLevel(zap.DebugLevel)
	}

	encoder := newEncoder(cfg.Debug)
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, rotatingFile(cfg.LogPath), level),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
	if cfg.Name != "" {
		logger = logger.With(zap.String("app", cfg.Name))
	}
	return logger, nil
}

func newEncoder(debug bool) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	if debug {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.CallerKey = "caller"
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if debug {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

func rotatingFile(dir string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    10, // MB
		MaxBackups: 7,
		MaxAge:     28, // days
		Compress:   true,
	})
}

// IntegrityLogger is where pricing-integrity failures go. Every entry is tagged for
// operator review so alerting can match on it.
func IntegrityLogger(log *zap.Logger) *zap.Logger {
	return log.Named("integrity").With(zap.Bool("operator_review", true))
}
