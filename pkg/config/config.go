// Package config holds the tool configuration shared by the floatpos
// binaries, loaded through viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"floatpos/pkg/geom"
)

// Config is the root configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Compute ComputeConfig `mapstructure:"compute" yaml:"compute"`
	Render  RenderConfig  `mapstructure:"render" yaml:"render"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// ComputeConfig supplies defaults for scene fields left unset.
type ComputeConfig struct {
	Placement       string `mapstructure:"placement" yaml:"placement"`
	Strategy        string `mapstructure:"strategy" yaml:"strategy"`
	MiddlewareOrder string `mapstructure:"middleware_order" yaml:"middleware_order"`
	AutoPlacement   bool   `mapstructure:"auto_placement" yaml:"auto_placement"`
}

// RenderConfig sizes the debug image. Zero width or height means the
// scene's window size.
type RenderConfig struct {
	Width  int    `mapstructure:"width" yaml:"width"`
	Height int    `mapstructure:"height" yaml:"height"`
	Output string `mapstructure:"output" yaml:"output"`
	Labels bool   `mapstructure:"labels" yaml:"labels"`
}

// NewDefaultConfig returns the configuration with every default applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "floatpos")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	// -- Compute --
	v.SetDefault("compute.placement", string(geom.Bottom))
	v.SetDefault("compute.strategy", string(geom.StrategyAbsolute))
	v.SetDefault("compute.middleware_order", "afterAutoPlacement")
	v.SetDefault("compute.auto_placement", false)

	// -- Render --
	v.SetDefault("render.width", 0)
	v.SetDefault("render.height", 0)
	v.SetDefault("render.output", "floatpos.png")
	v.SetDefault("render.labels", true)
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values the engine will parse later, so a bad config
// fails at startup.
func (c *Config) Validate() error {
	if _, err := geom.ParsePlacement(c.Compute.Placement); err != nil {
		return fmt.Errorf("compute.placement: %w", err)
	}
	if _, err := geom.ParseStrategy(c.Compute.Strategy); err != nil {
		return fmt.Errorf("compute.strategy: %w", err)
	}
	switch c.Compute.MiddlewareOrder {
	case "", "afterAutoPlacement", "beforeAutoPlacement":
	default:
		return fmt.Errorf("compute.middleware_order must be afterAutoPlacement or beforeAutoPlacement, got %q", c.Compute.MiddlewareOrder)
	}
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return fmt.Errorf("render.width and render.height must not be negative")
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return nil
}
