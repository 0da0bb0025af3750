package config

// go test -v github.com/arcticpaths/polarrush/config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 80.0, cfg.ThresholdLat)
	assert.Equal(t, 90.0, cfg.Bounds.North)

	box := cfg.Bounds.Box()
	assert.Equal(t, 80.0, box.SW.Lat)
	assert.Equal(t, -180.0, box.SW.Long)
	assert.Equal(t, 90.0, box.NE.Lat)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polarrush.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"threshold_lat: 75.0\nbounds:\n  south: 70.0\n"), 0644))

	cfg,err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 75.0, cfg.ThresholdLat)
	assert.Equal(t, 70.0, cfg.Bounds.South)
	// Untouched fields keep their defaults.
	assert.Equal(t, 90.0, cfg.Bounds.North)
	assert.Equal(t, 15, cfg.PollIntervalMinutes)
}

func TestLoadFileMissingIsDefaults(t *testing.T) {
	cfg,err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestAPITokenRequired(t *testing.T) {
	t.Setenv("FR24_API", "")
	_,err := APIToken()
	assert.Error(t, err)

	t.Setenv("FR24_API", "tok123")
	token,err := APIToken()
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)
}
