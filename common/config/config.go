// Package config loads the recognized solver options of spec §6 (seed,
// workers, mandatory_mult, bump_weight, max_bump_iters, strategy) via
// viper, in the shape of the reference API gateway's pkg/config: defaults
// set first, then overridden by environment variables (and, if present, a
// local .env file loaded with godotenv).
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Strategy selects which Surgery-Day Assigner implementation stage 1 uses.
type Strategy string

const (
	StrategyLPRelaxation Strategy = "LPRelaxation"
	StrategyDynamicByDay Strategy = "DynamicByDay"
)

// SolverConfig holds the tunable knobs of spec §6.
type SolverConfig struct {
	Seed          int64
	Workers       int
	MandatoryMult float64
	BumpWeight    float64
	MaxBumpIters  int
	Strategy      Strategy
	LogFormat     string
	LogLevel      string
}

// Default returns the spec-mandated defaults: workers=4, mandatory_mult=5,
// bump_weight=50, max_bump_iters=4, strategy=LPRelaxation.
func Default() SolverConfig {
	return SolverConfig{
		Seed:          0,
		Workers:       4,
		MandatoryMult: 5,
		BumpWeight:    50,
		MaxBumpIters:  4,
		Strategy:      StrategyLPRelaxation,
		LogFormat:     "console",
		LogLevel:      "info",
	}
}

// Load builds a SolverConfig from defaults, an optional .env file, and
// ARRANGO_-prefixed environment variables.
func Load() (SolverConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	d := Default()
	v.SetDefault("seed", d.Seed)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("mandatory_mult", d.MandatoryMult)
	v.SetDefault("bump_weight", d.BumpWeight)
	v.SetDefault("max_bump_iters", d.MaxBumpIters)
	v.SetDefault("strategy", string(d.Strategy))
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_level", d.LogLevel)

	v.SetEnvPrefix("arrango")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return SolverConfig{
		Seed:          v.GetInt64("seed"),
		Workers:       v.GetInt("workers"),
		MandatoryMult: v.GetFloat64("mandatory_mult"),
		BumpWeight:    v.GetFloat64("bump_weight"),
		MaxBumpIters:  v.GetInt("max_bump_iters"),
		Strategy:      Strategy(v.GetString("strategy")),
		LogFormat:     v.GetString("log_format"),
		LogLevel:      v.GetString("log_level"),
	}, nil
}
