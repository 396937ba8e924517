package noise

import (
	"math/rand"

	"github.com/Faultbox/procscape/internal/engine/mesh"
)

// DefaultJitter is the half-width of the random gray offset per vertex.
const DefaultJitter = 0.05

// Colorizer maps elevation to a gray vertex color with per-call random jitter.
// It owns its random source and is not safe for concurrent use.
type Colorizer struct {
	maxElevation float64
	jitter       float64
	rng          *rand.Rand
}

// NewColorizer creates a colorizer. maxElevation must be positive.
func NewColorizer(maxElevation, jitter float64, rng *rand.Rand) *Colorizer {
	return &Colorizer{
		maxElevation: maxElevation,
		jitter:       jitter,
		rng:          rng,
	}
}

// Color returns the color for height h. Heights at or below zero are white.
// Every call draws a fresh jitter value.
func (c *Colorizer) Color(h float64) mesh.Color {
	if h <= 0 {
		return mesh.Color{1, 1, 1, 1}
	}
	g := h/c.maxElevation*0.8 + 0.1
	if c.jitter > 0 {
		g += (c.rng.Float64()*2 - 1) * c.jitter
	}
	g = clamp(g, 0, 1)
	return mesh.Color{float32(g), float32(g), float32(g), 1}
}
