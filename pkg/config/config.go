package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "SOCCER"

// Config holds the configuration values which are used by the analysis pipeline
type Config struct {
	Log        Log        `mapstructure:"log"`
	Speed      Speed      `mapstructure:"speed"`
	Filter     Filter     `mapstructure:"filter"`
	Processing Processing `mapstructure:"processing"`
}

type Log struct {
	Level  string `mapstructure:"level"`  // zap log level values
	Format string `mapstructure:"format"` // text vs json
	Rules  string `mapstructure:"rules"`  // zapfilter rules, empty means no filtering
}

type Speed struct {
	MaxGap         float64 `mapstructure:"max-gap"`         // seconds between two cycles
	OutlierSigma   float64 `mapstructure:"outlier-sigma"`   // samples beyond mean +/- sigma*std are dropped
	FilterOutliers bool    `mapstructure:"filter-outliers"` // enables outlier rejection
	WindowSize     int     `mapstructure:"window-size"`     // sliding window for smoothing
}

// Covariance holds the standard deviation thresholds for a covariance filter.
// Theta is ignored by the ball filter.
type Covariance struct {
	X     float64 `mapstructure:"x"`
	Y     float64 `mapstructure:"y"`
	Theta float64 `mapstructure:"theta"`
}

// Filter holds the covariance thresholds. The processor applies Ball to the
// ball history. SelfLocalization is meant for callers filtering robot frames
// themselves with filter.WithThresholds.
type Filter struct {
	SelfLocalization Covariance `mapstructure:"self-localization"`
	Ball             Covariance `mapstructure:"ball"`
}

type Processing struct {
	Debug       bool `mapstructure:"debug"`       // propagate analysis failures instead of logging them
	Concurrency int  `mapstructure:"concurrency"` // max parallel player pipelines, 0 means GOMAXPROCS
}

// DefaultConfig returns the thresholds used for humanoid kid size logs
func DefaultConfig() *Config {
	return &Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Speed: Speed{
			MaxGap:         0.064, // 4 ticks of the 16ms game controller cycle
			OutlierSigma:   3.0,
			FilterOutliers: true,
			WindowSize:     16,
		},
		Filter: Filter{
			SelfLocalization: Covariance{X: 0.5, Y: 0.5, Theta: 0.6},
			Ball:             Covariance{X: 0.5, Y: 0.5},
		},
	}
}

// Load resolves the configuration from v.
// Values not present in v keep their defaults.
func Load(v *viper.Viper) (*Config, error) {
	def := DefaultConfig()
	setDefaults(v, def)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the config file (yaml, json or toml) and resolves the configuration
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}
	return Load(v)
}

func (c *Config) Validate() error {
	if c.Speed.MaxGap <= 0 {
		return fmt.Errorf("speed.max-gap must be positive, got %v", c.Speed.MaxGap)
	}
	if c.Speed.OutlierSigma <= 0 {
		return fmt.Errorf("speed.outlier-sigma must be positive, got %v",
			c.Speed.OutlierSigma)
	}
	if c.Speed.WindowSize < 1 {
		return fmt.Errorf("speed.window-size must be at least 1, got %d",
			c.Speed.WindowSize)
	}
	if c.Processing.Concurrency < 0 {
		return fmt.Errorf("processing.concurrency must not be negative, got %d",
			c.Processing.Concurrency)
	}
	return nil
}

// viper only considers env vars for keys it knows about
func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.rules", def.Log.Rules)
	v.SetDefault("speed.max-gap", def.Speed.MaxGap)
	v.SetDefault("speed.outlier-sigma", def.Speed.OutlierSigma)
	v.SetDefault("speed.filter-outliers", def.Speed.FilterOutliers)
	v.SetDefault("speed.window-size", def.Speed.WindowSize)
	v.SetDefault("filter.self-localization.x", def.Filter.SelfLocalization.X)
	v.SetDefault("filter.self-localization.y", def.Filter.SelfLocalization.Y)
	v.SetDefault("filter.self-localization.theta", def.Filter.SelfLocalization.Theta)
	v.SetDefault("filter.ball.x", def.Filter.Ball.X)
	v.SetDefault("filter.ball.y", def.Filter.Ball.Y)
	v.SetDefault("filter.ball.theta", def.Filter.Ball.Theta)
	v.SetDefault("processing.debug", def.Processing.Debug)
	v.SetDefault("processing.concurrency", def.Processing.Concurrency)
}
