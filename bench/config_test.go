package bench

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/stringwrite/errs"
	"github.com/arloliu/stringwrite/format"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 4, cfg.NumExperiments)
	require.Equal(t, 6000, cfg.NumStrings)
	require.Equal(t, 0, cfg.MinLen)
	require.Equal(t, 255, cfg.LenMask)
	require.Equal(t, format.PlatformEcho, cfg.Platform)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"aws platform", func(c *Config) { c.Platform = format.PlatformAWS }, true},
		{"zero strings", func(c *Config) { c.NumStrings = 0 }, true},
		{"zero mask", func(c *Config) { c.LenMask = 0 }, true},
		{"zero experiments", func(c *Config) { c.NumExperiments = 0 }, false},
		{"negative strings", func(c *Config) { c.NumStrings = -1 }, false},
		{"negative min length", func(c *Config) { c.MinLen = -1 }, false},
		{"negative mask", func(c *Config) { c.LenMask = -1 }, false},
		{"unknown platform", func(c *Config) { c.Platform = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errs.ErrInvalidArgument)
			}
		})
	}
}
