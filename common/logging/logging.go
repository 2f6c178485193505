// Package logging builds the structured logger shared by the solver's
// stages, in the shape of the reference API gateway's pkg/logger: a
// zap.Config selected by environment, console-encoded for local runs and
// JSON-encoded otherwise.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smuggr/arrango-ihtc/common/config"
)

// New builds a *zap.Logger honoring cfg.LogFormat and cfg.LogLevel.
func New(cfg *config.SolverConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.Encoding = "console"
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.Encoding = "json"
	}

	if cfg.LogLevel != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapCfg.Build()
}

// NewNop returns a no-op logger, used as the zero-value default so callers
// that never wire a logger don't nil-panic.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
