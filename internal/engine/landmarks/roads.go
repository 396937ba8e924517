package landmarks

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/internal/engine/noise"
	"github.com/Faultbox/procscape/pkg/math"
)

// RoadConfig controls road ribbons.
type RoadConfig struct {
	Width        float64 `yaml:"width"`
	Clearance    float64 `yaml:"clearance"`     // lift above the sampled elevation
	ProbeSpacing float64 `yaml:"probe_spacing"` // target distance between elevation probes
	SteepGrade   float64 `yaml:"steep_grade"`   // |dz|/length above which a road is steep
	LongEdge     float64 `yaml:"long_edge"`     // length above which a road is long-haul
}

// DefaultRoadConfig returns the standard road settings.
func DefaultRoadConfig() RoadConfig {
	return RoadConfig{
		Width:        10,
		Clearance:    0.3,
		ProbeSpacing: 25,
		SteepGrade:   0.1,
		LongEdge:     1000,
	}
}

// Validate checks road parameters.
func (c RoadConfig) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: road width must be positive, got %g", mesh.ErrInvalidParameter, c.Width)
	}
	if c.ProbeSpacing <= 0 {
		return fmt.Errorf("%w: probe spacing must be positive, got %g", mesh.ErrInvalidParameter, c.ProbeSpacing)
	}
	return nil
}

// RoadClass is the color category of a road.
type RoadClass int

const (
	RoadLocal RoadClass = iota
	RoadSteep
	RoadLong
)

func (c RoadClass) String() string {
	switch c {
	case RoadSteep:
		return "steep"
	case RoadLong:
		return "long"
	default:
		return "local"
	}
}

// Color returns the ribbon color of the class.
func (c RoadClass) Color() mesh.Color {
	switch c {
	case RoadSteep:
		return mesh.Color{0.4, 0, 0, 1}
	case RoadLong:
		return mesh.Color{0, 0, 0.4, 1}
	default:
		return mesh.Color{0.2, 0.2, 0.2, 1}
	}
}

// Classify picks the class of a road; steepness wins over length.
func (c RoadConfig) Classify(grade, length float64) RoadClass {
	switch {
	case grade > c.SteepGrade:
		return RoadSteep
	case length > c.LongEdge:
		return RoadLong
	default:
		return RoadLocal
	}
}

// Segments returns the number of probe intervals along a road of the given length.
func (c RoadConfig) Segments(length float64) int {
	return max(2, int(gomath.Round(length/c.ProbeSpacing)))
}

// roads builds one ribbon strip per entry of the raw edge list.
func (l *Landmarks) roads(field noise.Field) (*mesh.Buffer, error) {
	b := mesh.NewBuilder("roads")
	for _, e := range l.graph.Edges() {
		if err := addRibbon(b, field, l.points[e.A], l.points[e.B], l.cfg.Road); err != nil {
			return nil, fmt.Errorf("road %d-%d: %w", e.A, e.B, err)
		}
	}
	return b.Build(), nil
}

// addRibbon appends the vertices and strip of a road from a to c. Lengths and grades are
// measured horizontally; both rails sit half a width to either side of the centerline.
func addRibbon(b *mesh.Builder, field noise.Field, a, c math.Vec3, rc RoadConfig) error {
	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(c.X)-ax, float64(c.Y)-ay
	length := gomath.Hypot(dx, dy)
	if length == 0 {
		return fmt.Errorf("%w: zero-length road at (%g, %g)", mesh.ErrInvalidGeometry, ax, ay)
	}

	grade := gomath.Abs(float64(c.Z-a.Z)) / length
	color := rc.Classify(grade, length).Color()

	// up x dir, scaled to half the road width.
	half := rc.Width / 2
	sx, sy := -dy/length*half, dx/length*half

	segments := rc.Segments(length)
	first := uint32(b.Len())
	b.Grow(2 * (segments + 1))
	for k := 0; k <= segments; k++ {
		t := float64(k) / float64(segments)
		px, py := ax+dx*t, ay+dy*t
		z := float32(field.Elevation(px, py) + rc.Clearance)
		b.AddVertex(math.Vec3{X: float32(px + sx), Y: float32(py + sy), Z: z}, color)
		b.AddVertex(math.Vec3{X: float32(px - sx), Y: float32(py - sy), Z: z}, color)
	}

	strip := make([]uint32, 2*(segments+1))
	for i := range strip {
		strip[i] = first + uint32(i)
	}
	b.AddPrimitive(mesh.TriangleStrip, strip...)
	return nil
}
