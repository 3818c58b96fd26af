package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesViewerContract(t *testing.T) {
	cfg := Default()

	assert.Equal(t, float32(45), cfg.Camera.FovDegrees)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, float32(1000), cfg.Camera.Far)
	assert.Equal(t, float32(0.05), cfg.Camera.DampingFactor)
	assert.Equal(t, float32(0.6), cfg.Lighting.AmbientIntensity)
	assert.Equal(t, float32(0.8), cfg.Lighting.DirectionalIntensity)
	assert.Equal(t, float32(10), cfg.Lighting.ShadowHalfExtent)
	assert.Equal(t, float32(0.001), cfg.Model.Scale)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	body := `
[window]
title = "Custom"
width = 800

[camera]
damping_factor = 0.1

[model]
scale = 0.01
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Custom", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	// untouched fields keep their defaults
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, float32(0.1), cfg.Camera.DampingFactor)
	assert.Equal(t, float32(0.01), cfg.Model.Scale)
	assert.Equal(t, float32(0.6), cfg.Lighting.AmbientIntensity)
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("window = {"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
