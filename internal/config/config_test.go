package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"VWAP_PERIODS", "VWAP_USE_TYPICAL_PRICE", "VWAP_MAX_LEN", "VWAP_BAR_MAX_LEN", "VWAP_ANCHOR", "VWAP_HEALTH_PORT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []int{14}, cfg.Indicator.Periods)
	assert.False(t, cfg.Indicator.UseTypicalPrice)
	assert.Equal(t, 0, cfg.Indicator.MaxLen)
	assert.Equal(t, "window", cfg.Indicator.Anchor)
	assert.Equal(t, 0, cfg.Indicator.HealthCheckPort)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("VWAP_PERIODS", "5, 20,,60")
	t.Setenv("VWAP_USE_TYPICAL_PRICE", "true")
	t.Setenv("VWAP_MAX_LEN", "500")
	t.Setenv("VWAP_BAR_MAX_LEN", "300")
	t.Setenv("VWAP_ANCHOR", "session")
	t.Setenv("VWAP_HEALTH_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []int{5, 20, 60}, cfg.Indicator.Periods)
	assert.True(t, cfg.Indicator.UseTypicalPrice)
	assert.Equal(t, 500, cfg.Indicator.MaxLen)
	assert.Equal(t, 300, cfg.Indicator.BarMaxLen)
	assert.Equal(t, "session", cfg.Indicator.Anchor)
	assert.Equal(t, 9100, cfg.Indicator.HealthCheckPort)
}

func TestLoad_InvalidPeriods(t *testing.T) {
	t.Setenv("VWAP_PERIODS", "5,abc")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("VWAP_PERIODS", "0")
	_, err = Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{Indicator: IndicatorConfig{Periods: []int{14}, Anchor: "window"}}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "no periods", mutate: func(c *Config) { c.Indicator.Periods = nil }, wantErr: true},
		{name: "negative period", mutate: func(c *Config) { c.Indicator.Periods = []int{-3} }, wantErr: true},
		{name: "duplicate period", mutate: func(c *Config) { c.Indicator.Periods = []int{14, 14} }, wantErr: true},
		{name: "negative max len", mutate: func(c *Config) { c.Indicator.MaxLen = -1 }, wantErr: true},
		{name: "negative bar max len", mutate: func(c *Config) { c.Indicator.BarMaxLen = -1 }, wantErr: true},
		{name: "unknown anchor", mutate: func(c *Config) { c.Indicator.Anchor = "weekly" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Indicator.HealthCheckPort = 70000 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
