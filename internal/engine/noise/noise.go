// Package noise provides the deterministic octave-noise elevation field and its coloring.
package noise

import (
	"fmt"
	gomath "math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/Faultbox/procscape/internal/engine/mesh"
)

// Basis selects the base 2D noise function.
type Basis string

const (
	BasisPerlin  Basis = "perlin"
	BasisSimplex Basis = "simplex"
)

// Params configures an octave noise field.
type Params struct {
	Basis       Basis   `yaml:"basis"`
	Seed        int64   `yaml:"seed"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"` // amplitude multiplier per octave
	Lacunarity  float64 `yaml:"lacunarity"`  // frequency multiplier per octave
	Frequency   float64 `yaml:"frequency"`
	Low         float64 `yaml:"low"`
	High        float64 `yaml:"high"`
	Amplitude   float64 `yaml:"amplitude"` // also the maximum elevation used for coloring
	Offset      float64 `yaml:"offset"`    // added to both axes before sampling
}

// DefaultParams returns the land-only field: elevations in [0, 100].
func DefaultParams() Params {
	return Params{
		Basis:       BasisPerlin,
		Seed:        1,
		Octaves:     1,
		Persistence: 0.5,
		Lacunarity:  2,
		Frequency:   0.0002,
		Low:         0,
		High:        1,
		Amplitude:   100,
		Offset:      10000,
	}
}

// UnderwaterParams returns the variant with rare negative elevations: [-62.5, 250].
func UnderwaterParams() Params {
	p := DefaultParams()
	p.Low = -0.25
	p.Amplitude = 250
	return p
}

// Validate reports parameters that cannot produce a field.
func (p Params) Validate() error {
	switch {
	case p.Basis != BasisPerlin && p.Basis != BasisSimplex:
		return fmt.Errorf("%w: unknown noise basis %q", mesh.ErrInvalidParameter, p.Basis)
	case p.Octaves < 1:
		return fmt.Errorf("%w: octaves must be at least 1, got %d", mesh.ErrInvalidParameter, p.Octaves)
	case p.Persistence <= 0:
		return fmt.Errorf("%w: persistence must be positive, got %g", mesh.ErrInvalidParameter, p.Persistence)
	case p.Lacunarity <= 0:
		return fmt.Errorf("%w: lacunarity must be positive, got %g", mesh.ErrInvalidParameter, p.Lacunarity)
	case p.Frequency <= 0:
		return fmt.Errorf("%w: frequency must be positive, got %g", mesh.ErrInvalidParameter, p.Frequency)
	case p.High <= p.Low:
		return fmt.Errorf("%w: noise range [%g, %g] is empty", mesh.ErrInvalidParameter, p.Low, p.High)
	case p.Amplitude <= 0:
		return fmt.Errorf("%w: amplitude must be positive, got %g", mesh.ErrInvalidParameter, p.Amplitude)
	}
	return nil
}

// Field is a pure elevation function over the ground plane.
type Field interface {
	Elevation(x, y float64) float64
}

// source sums all octaves of a basis without normalising.
type source interface {
	Noise2D(x, y float64) float64
}

// Octave is a fractal noise Field. It is immutable and safe for concurrent use.
type Octave struct {
	params Params
	src    source
	scale  float64 // maps the raw octave sum into [-1, 1]
}

// New creates an octave noise field.
func New(p Params) (*Octave, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// Sum of octave weights: 1 + p + p^2 + ...
	weight := 0.0
	amp := 1.0
	for i := 0; i < p.Octaves; i++ {
		weight += amp
		amp *= p.Persistence
	}

	o := &Octave{params: p, scale: 1 / weight}
	switch p.Basis {
	case BasisPerlin:
		o.src = perlin.NewPerlin(1/p.Persistence, p.Lacunarity, int32(p.Octaves), p.Seed)
		// 2D gradient noise peaks at about ±√½.
		o.scale *= gomath.Sqrt2
	case BasisSimplex:
		o.src = &simplexOctaves{
			noise:       opensimplex.New(p.Seed),
			octaves:     p.Octaves,
			persistence: p.Persistence,
			lacunarity:  p.Lacunarity,
		}
	}
	return o, nil
}

// Elevation returns the height at (x, y), in [Low*Amplitude, High*Amplitude].
func (o *Octave) Elevation(x, y float64) float64 {
	p := o.params
	sx := (x + p.Offset) * p.Frequency
	sy := (y + p.Offset) * p.Frequency

	v := clamp(o.src.Noise2D(sx, sy)*o.scale, -1, 1)
	t := (v + 1) / 2
	return p.Amplitude * (p.Low + t*(p.High-p.Low))
}

// MaxElevation is the amplitude, the reference height for coloring.
func (o *Octave) MaxElevation() float64 {
	return o.params.Amplitude
}

// Params returns the parameters the field was built with.
func (o *Octave) Params() Params {
	return o.params
}

type simplexOctaves struct {
	noise       opensimplex.Noise
	octaves     int
	persistence float64
	lacunarity  float64
}

func (s *simplexOctaves) Noise2D(x, y float64) float64 {
	sum := 0.0
	amp := 1.0
	for i := 0; i < s.octaves; i++ {
		sum += s.noise.Eval2(x, y) * amp
		amp *= s.persistence
		x *= s.lacunarity
		y *= s.lacunarity
	}
	return sum
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
