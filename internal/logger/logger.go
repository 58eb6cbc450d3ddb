// Package logger builds the zap logger shared by the server.
package logger

import (
	"fmt"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rise-labs/shelf-backend/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	rotationTime = 24 * time.Hour
	maxAge       = 7 * 24 * time.Hour
)

func levelFromString(l string) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New returns a development logger when cfg.Dev is set, otherwise a JSON
// logger on stdout that also writes to a daily-rotated file if cfg.File is set.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	lvl := levelFromString(cfg.Level)
	if cfg.Dev {
		c := zap.NewDevelopmentConfig()
		c.Level = zap.NewAtomicLevelAt(lvl)
		return c.Build()
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	sink := zapcore.AddSync(os.Stdout)
	if cfg.File != "" {
		rotator, err := rotatelogs.New(
			cfg.File+".%Y%m%d",
			rotatelogs.WithLinkName(cfg.File),
			rotatelogs.WithRotationTime(rotationTime),
			rotatelogs.WithMaxAge(maxAge),
		)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		sink = zapcore.NewMultiWriteSyncer(sink, zapcore.AddSync(rotator))
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, lvl)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
