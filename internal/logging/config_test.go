package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/retro/internal/config"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, zapcore.WarnLevel, cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, OutputStderr, cfg.Output)
	assert.Equal(t, "retro", cfg.Fields["service"])
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad format", func(c *Config) { c.Format = "xml" }, "format"},
		{"bad output", func(c *Config) { c.Output = "syslog" }, "output"},
		{"zero tick", func(c *Config) { c.Sampling = SamplingConfig{Enabled: true} }, "tick"},
		{"negative initial", func(c *Config) {
			c.Sampling = SamplingConfig{Enabled: true, Tick: config.Duration(time.Second), Initial: -1}
		}, "initial"},
		{"negative caller skip", func(c *Config) { c.Caller.Skip = -1 }, "caller skip"},
		{"empty field key", func(c *Config) { c.Fields = map[string]string{"": "x"} }, "key"},
		{"empty field value", func(c *Config) { c.Fields = map[string]string{"env": ""} }, "empty value"},
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

func TestFromSettings(t *testing.T) {
	cfg, err := FromSettings(config.LogConfig{Level: "debug", Format: "json", Output: "stdout", Sampling: true, Caller: true})
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, OutputStdout, cfg.Output)
	assert.True(t, cfg.Sampling.Enabled)
	assert.True(t, cfg.Caller.Enabled)

	cfg, err = FromSettings(config.LogConfig{})
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, cfg.Level)
	assert.False(t, cfg.Caller.Enabled)

	_, err = FromSettings(config.LogConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = FromSettings(config.LogConfig{Format: "xml"})
	assert.Error(t, err)
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"trace", TraceLevel, false},
		{"TRACE", TraceLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{" info ", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"nope", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := LevelFromString(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "trace", LevelName(TraceLevel))
	assert.Equal(t, "info", LevelName(zapcore.InfoLevel))
}
