package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "floatpos", cfg.Logger.ServiceName)
	assert.Equal(t, "bottom", cfg.Compute.Placement)
	assert.Equal(t, "absolute", cfg.Compute.Strategy)
	assert.Equal(t, "afterAutoPlacement", cfg.Compute.MiddlewareOrder)
	assert.False(t, cfg.Compute.AutoPlacement)
	assert.Equal(t, "floatpos.png", cfg.Render.Output)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(`
logger:
  level: debug
  format: json
compute:
  placement: top-start
  strategy: fixed
  auto_placement: true
render:
  width: 640
`)))

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "top-start", cfg.Compute.Placement)
	assert.Equal(t, "fixed", cfg.Compute.Strategy)
	assert.True(t, cfg.Compute.AutoPlacement)
	assert.Equal(t, 640, cfg.Render.Width)
	assert.Equal(t, 0, cfg.Render.Height)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"placement", func(c *Config) { c.Compute.Placement = "middle" }, "compute.placement"},
		{"strategy", func(c *Config) { c.Compute.Strategy = "sticky" }, "compute.strategy"},
		{"order", func(c *Config) { c.Compute.MiddlewareOrder = "whenever" }, "compute.middleware_order"},
		{"render size", func(c *Config) { c.Render.Width = -1 }, "render.width"},
		{"log format", func(c *Config) { c.Logger.Format = "xml" }, "logger.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
