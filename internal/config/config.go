// Package config handles scene configuration loading and management.
package config

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/Faultbox/procscape/internal/engine/building"
	"github.com/Faultbox/procscape/internal/engine/landmarks"
	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/internal/engine/noise"
	"github.com/Faultbox/procscape/internal/engine/terrain"
)

// Config holds all generation and viewer settings.
type Config struct {
	Noise      noise.Params     `yaml:"noise"`
	Terrain    terrain.Config   `yaml:"terrain"`
	Landmarks  landmarks.Config `yaml:"landmarks"`
	Buildings  BuildingsConfig  `yaml:"buildings"`
	Generation GenerationConfig `yaml:"generation"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// BuildingsConfig holds the shared extrusion settings and the buildings to place.
type BuildingsConfig struct {
	building.Config `yaml:",inline"`
	Items           []BuildingSpec `yaml:"items"`
}

// BuildingSpec places one building. Footprint points are relative to Origin; their
// elevation is looked up at the resulting world position.
type BuildingSpec struct {
	Name      string       `yaml:"name"`
	Origin    [2]float64   `yaml:"origin"`
	Footprint [][2]float64 `yaml:"footprint"`
	Levels    int          `yaml:"levels"`
}

// GenerationConfig holds per-run generation settings.
type GenerationConfig struct {
	Seed int64 `yaml:"seed"` // 0 picks a time-based seed
}

// ResolveSeed returns the configured seed, or a time-based one if it is zero.
func (g GenerationConfig) ResolveSeed() int64 {
	if g.Seed != 0 {
		return g.Seed
	}
	return time.Now().UnixNano()
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"`         // vertical field of view in degrees
	OrbitSpeed float32 `yaml:"orbit_speed"` // radians per second, 0 disables the orbit

	ShowBounds    bool   `yaml:"show_bounds"` // draw the scene bounding box
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"` // console or json
}

// DefaultTower is the 105-level tower of the default scene.
func DefaultTower() BuildingSpec {
	return BuildingSpec{
		Name:      "tower",
		Footprint: [][2]float64{{0, 0}, {0, 55}, {30, 60}, {30, 0}},
		Levels:    105,
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Noise:     noise.DefaultParams(),
		Terrain:   terrain.DefaultConfig(),
		Landmarks: landmarks.DefaultConfig(),
		Buildings: BuildingsConfig{
			Config: building.DefaultConfig(),
			Items:  []BuildingSpec{DefaultTower()},
		},
		Generation: GenerationConfig{
			Seed: 0,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        60,
			OrbitSpeed: 0.05,

			ShowBounds:    false,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  "console",
		},
	}
}

// Validate checks every section and combines the failures. Individual building footprints
// are checked when the scene is built so one bad item does not block the rest.
func (c *Config) Validate() error {
	var errs error
	check := func(section string, err error) {
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", section, err))
		}
	}

	check("noise", c.Noise.Validate())
	check("terrain", c.Terrain.Validate())
	check("landmarks", c.Landmarks.Validate())
	check("buildings", c.Buildings.Config.Validate())

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		check("graphics", fmt.Errorf("%w: window size %dx%d", mesh.ErrInvalidParameter, c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		check("graphics", fmt.Errorf("%w: fov must be in (0, 180), got %g", mesh.ErrInvalidParameter, c.Graphics.FOV))
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		check("logging", fmt.Errorf("%w: unknown log format %q", mesh.ErrInvalidParameter, c.Logging.Format))
	}

	return errs
}
