package landmarks

import (
	gomath "math"
	"math/rand"

	"github.com/Faultbox/procscape/pkg/math"
)

// PointCount returns round(density * area) for a disk of the given diameter.
func PointCount(diameter, density float64) int {
	r := diameter / 2
	return int(gomath.Round(density * gomath.Pi * r * r))
}

// RandomInCircle draws a point uniformly by area inside a disk of radius r.
// The radial coordinate is the sum of two uniforms folded at 1, whose triangular
// density compensates for the ring area growing with radius.
func RandomInCircle(rng *rand.Rand, r float64) math.Vec2 {
	t := 2 * gomath.Pi * rng.Float64()
	u := rng.Float64() + rng.Float64()
	if u > 1 {
		u = 2 - u
	}
	return math.Vec2{
		X: float32(r * u * gomath.Cos(t)),
		Y: float32(r * u * gomath.Sin(t)),
	}
}

// Scatter draws n points inside a disk of radius r.
func Scatter(rng *rand.Rand, n int, r float64) []math.Vec2 {
	points := make([]math.Vec2, n)
	for i := range points {
		points[i] = RandomInCircle(rng, r)
	}
	return points
}
