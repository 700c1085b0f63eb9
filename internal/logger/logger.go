package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide SugaredLogger.
// It discards everything until Initialize is called.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Initialize builds the production logger at the given level and encoding
// ("json" or "console") and installs it as Log.
func Initialize(level, encoding string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding != "" {
		cfg.Encoding = encoding
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = l.Sugar()
	return nil
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = Log.Sync()
}
