//nolint:thelper,funlen // ok for tests
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_overrides(t *testing.T) {
	t.Setenv("SOCCER_SPEED_MAX_GAP", "0.1")

	v := viper.New()
	v.Set("speed.window-size", 4)
	v.Set("filter.ball.x", 0.25)
	v.Set("processing.debug", true)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, cfg.Speed.MaxGap, 1e-12)
	assert.Equal(t, 4, cfg.Speed.WindowSize)
	assert.InDelta(t, 0.25, cfg.Filter.Ball.X, 1e-12)
	assert.InDelta(t, 0.5, cfg.Filter.Ball.Y, 1e-12)
	assert.True(t, cfg.Processing.Debug)
	assert.True(t, cfg.Speed.FilterOutliers)
}

func TestLoad_invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{name: "zero window", key: "speed.window-size", val: 0},
		{name: "negative gap", key: "speed.max-gap", val: -1.0},
		{name: "zero sigma", key: "speed.outlier-sigma", val: 0.0},
		{name: "negative concurrency", key: "processing.concurrency", val: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	content := `
speed:
  window-size: 8
  filter-outliers: false
filter:
  self-localization:
    theta: 0.4
log:
  level: debug
`
	path := filepath.Join(t.TempDir(), "socceranalyzer.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Speed.WindowSize)
	assert.False(t, cfg.Speed.FilterOutliers)
	assert.InDelta(t, 0.4, cfg.Filter.SelfLocalization.Theta, 1e-12)
	assert.InDelta(t, 0.5, cfg.Filter.SelfLocalization.X, 1e-12)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
