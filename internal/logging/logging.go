// Package logging builds the zap loggers used by the launcher. Components get
// their own named child logger, e.g. "LaunchSuite" or "AEx".
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Component names
const (
	Landing     = "Landing"
	LaunchSuite = "LaunchSuite"
	AEx         = "AEx"
	SysAEx      = "SysAEx"
	News        = "News"
	Status      = "Status"
	Distro      = "Distro"
	Presence    = "Presence"
	Game        = "Game"
)

// New returns a console logger. With debug enabled it logs at debug level
// with caller information.
func New(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.Sampling = nil
	cfg.DisableStacktrace = true

	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return cfg.Build()
}

// Component returns a named child of l. A nil logger yields a no-op logger.
func Component(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(name)
}
