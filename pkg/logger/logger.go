package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

var global = zap.NewNop()

// SetupLogger builds the process logger for the given environment and
// installs it as the package global consumed by the HTTP middleware.
func SetupLogger(env string, level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		log.Printf("unknown log level %q, falling back to info", level)
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	switch env {
	case envLocal, envDev:
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		log.Fatalf("logger build failed: %s", err)
	}

	global = l
	return l
}

// Logger returns the process logger set up by SetupLogger, or a no-op
// logger before that.
func Logger() *zap.Logger {
	return global
}
