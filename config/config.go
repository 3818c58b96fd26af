// package config loads the viewer configuration from a TOML file and fills in
// defaults for anything the file does not set. A missing file is not an error;
// the defaults describe a complete, runnable setup.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the root configuration for the building viewer.
type Config struct {
	// Window configures the application window.
	Window WindowConfig `toml:"window"`

	// Assets configures the model and shader file locations.
	Assets AssetsConfig `toml:"assets"`

	// Camera configures the perspective camera and its orbit controller.
	Camera CameraConfig `toml:"camera"`

	// Lighting configures the ambient and directional lights.
	Lighting LightingConfig `toml:"lighting"`

	// Model configures how the loaded model is placed in the scene.
	Model ModelConfig `toml:"model"`
}

// WindowConfig holds the application window parameters.
type WindowConfig struct {
	// Title is the window title.
	Title string `toml:"title"`

	// Width is the initial client area width in pixels.
	Width int `toml:"width"`

	// Height is the initial client area height in pixels.
	Height int `toml:"height"`
}

// AssetsConfig holds the fixed asset file locations.
type AssetsConfig struct {
	// MaterialPath is the material-definition (.mtl) file.
	MaterialPath string `toml:"material_path"`

	// GeometryPath is the geometry (.obj) file.
	GeometryPath string `toml:"geometry_path"`

	// ShaderDir is the directory holding the WGSL shader files.
	ShaderDir string `toml:"shader_dir"`
}

// CameraConfig holds the perspective camera and orbit controller parameters.
type CameraConfig struct {
	// FovDegrees is the vertical field of view in degrees.
	FovDegrees float32 `toml:"fov_degrees"`

	// Near is the near clip plane distance.
	Near float32 `toml:"near"`

	// Far is the far clip plane distance.
	Far float32 `toml:"far"`

	// Radius is the initial orbit distance from the target.
	Radius float32 `toml:"radius"`

	// Azimuth is the initial horizontal orbit angle in radians.
	Azimuth float32 `toml:"azimuth"`

	// Elevation is the initial vertical orbit angle in radians.
	Elevation float32 `toml:"elevation"`

	// DampingFactor is the per-frame velocity decay of the orbit navigator.
	DampingFactor float32 `toml:"damping_factor"`

	// DragSensitivity converts drag pixels to orbit velocity in radians.
	DragSensitivity float32 `toml:"drag_sensitivity"`

	// ZoomSensitivity converts scroll ticks to zoom velocity.
	ZoomSensitivity float32 `toml:"zoom_sensitivity"`
}

// LightingConfig holds the light and shadow parameters.
type LightingConfig struct {
	// AmbientIntensity is the uniform fill light intensity.
	AmbientIntensity float32 `toml:"ambient_intensity"`

	// DirectionalIntensity is the shadow-casting directional light intensity.
	DirectionalIntensity float32 `toml:"directional_intensity"`

	// DirectionalPosition is the directional light position (above/beside the scene).
	DirectionalPosition [3]float32 `toml:"directional_position"`

	// ShadowHalfExtent is the half-size of the orthographic shadow frustum,
	// so the frustum spans ±ShadowHalfExtent on each side.
	ShadowHalfExtent float32 `toml:"shadow_half_extent"`

	// ShadowNear and ShadowFar bound the shadow depth range.
	ShadowNear float32 `toml:"shadow_near"`
	ShadowFar  float32 `toml:"shadow_far"`
}

// ModelConfig holds model placement parameters.
type ModelConfig struct {
	// Scale is the uniform scale applied to the source geometry. The source
	// asset is authored in millimeters, so the default brings it to meters.
	Scale float32 `toml:"scale"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: a complete configuration with all defaults applied
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Building 3D Memory",
			Width:  1280,
			Height: 720,
		},
		Assets: AssetsConfig{
			MaterialPath: "assets/models/building.mtl",
			GeometryPath: "assets/models/building.obj",
			ShaderDir:    "assets/shaders",
		},
		Camera: CameraConfig{
			FovDegrees:      45,
			Near:            0.1,
			Far:             1000,
			Radius:          8,
			Azimuth:         0.5,
			Elevation:       0.35,
			DampingFactor:   0.05,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.25,
		},
		Lighting: LightingConfig{
			AmbientIntensity:     0.6,
			DirectionalIntensity: 0.8,
			DirectionalPosition:  [3]float32{5, 10, 7.5},
			ShadowHalfExtent:     10,
			ShadowNear:           0.1,
			ShadowFar:            50,
		},
		Model: ModelConfig{
			Scale: 0.001,
		},
	}
}

// Load reads the configuration from a TOML file, overlaying the defaults.
// A missing file yields the defaults; a malformed file is an error.
//
// Parameters:
//   - path: the TOML file path
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file exists but cannot be parsed
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
