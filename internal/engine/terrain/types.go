// Package terrain builds heightfield meshes from an elevation field.
package terrain

import (
	"fmt"

	"github.com/Faultbox/procscape/internal/engine/mesh"
)

// Config holds heightfield parameters.
type Config struct {
	Diameter   float64 `yaml:"diameter"`   // side length of the square grid, centered at the origin
	Resolution float64 `yaml:"resolution"` // grid spacing
}

// DefaultConfig returns a 10km terrain sampled every 100 units.
func DefaultConfig() Config {
	return Config{
		Diameter:   10000,
		Resolution: 100,
	}
}

// Validate checks heightfield parameters.
func (c Config) Validate() error {
	if c.Diameter <= 0 {
		return fmt.Errorf("%w: terrain diameter must be positive, got %g", mesh.ErrInvalidParameter, c.Diameter)
	}
	if c.Resolution <= 0 {
		return fmt.Errorf("%w: terrain resolution must be positive, got %g", mesh.ErrInvalidParameter, c.Resolution)
	}
	return nil
}

// GridSize returns the number of samples per side: floor(diameter/resolution)+1.
func (c Config) GridSize() int {
	// The epsilon keeps exact ratios such as 0.3/0.1 from rounding down.
	return int(c.Diameter/c.Resolution+1e-9) + 1
}
