package report

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level defines the severity a ZapReporter logs failures at.
type Level string

const (
	// LevelInfo is used for general informational messages.
	LevelInfo Level = "info"

	// LevelWarn is used for potentially harmful situations.
	LevelWarn Level = "warn"

	// LevelError is used for error events that still allow the batch to continue.
	LevelError Level = "error"

	// LevelDebug is used for detailed internal information.
	LevelDebug Level = "debug"
)

// ZapReporter writes each failure as one structured log entry.
type ZapReporter struct {
	logger *zap.Logger
	level  Level
}

var _ Reporter = (*ZapReporter)(nil)

// NewZapReporter logs failures on logger at level. An unknown level falls back to warn.
func NewZapReporter(logger *zap.Logger, level Level) *ZapReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapReporter{logger: logger, level: level}
}

// NewConsoleReporter logs to stdout with the development console encoder.
func NewConsoleReporter() *ZapReporter {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return NewZapReporter(zap.New(consoleCore), LevelWarn)
}

func (zr *ZapReporter) Report(_ context.Context, f Failure) {
	fields := []zap.Field{
		zap.String("item_id", f.ItemID.String()),
		zap.String("item_name", f.ItemName),
		zap.String("effect_name", f.EffectName),
		zap.String("error_message", f.Message()),
	}

	const msg = "effect failed"
	switch zr.level {
	case LevelInfo:
		zr.logger.Info(msg, fields...)
	case LevelError:
		zr.logger.Error(msg, fields...)
	case LevelDebug:
		zr.logger.Debug(msg, fields...)
	default:
		zr.logger.Warn(msg, fields...)
	}
}

// Sync flushes the underlying logger.
func (zr *ZapReporter) Sync() error {
	return zr.logger.Sync()
}
